package snapshot

import (
	"errors"

	"github.com/foxplot/foxplot/internal/collision"
)

var (
	// ErrInvalidHeaderSize is returned for input shorter than a header.
	ErrInvalidHeaderSize = errors.New("snapshot: invalid header size")
	// ErrInvalidMagic is returned when the input is not a foxplot snapshot.
	ErrInvalidMagic = errors.New("snapshot: invalid magic number")
	// ErrCorrupted is returned when sizes, hashes or columns do not match the header.
	ErrCorrupted = errors.New("snapshot: corrupted data")
	// ErrInconsistentSeries is returned by Write for series of different
	// lengths or different time indices.
	ErrInconsistentSeries = errors.New("snapshot: inconsistent series")
	// ErrDuplicateLabel is returned by Write when two series share a label.
	ErrDuplicateLabel = collision.ErrDuplicateLabel
	// ErrEmptyLabel is returned by Write for a series without a label.
	ErrEmptyLabel = collision.ErrEmptyLabel
	// ErrHashCollision is returned by Write when two labels share an ID, which
	// would make Lookup ambiguous.
	ErrHashCollision = collision.ErrHashCollision
)

package foxplot

import (
	"errors"

	"github.com/foxplot/foxplot/tree"
)

var (
	// ErrMissingTime is returned by Unpack when a record has no value at the
	// designated time label. The record is not ingested. Freeze returns it for
	// records unpacked before the time label was set.
	ErrMissingTime = errors.New("missing time value")
	// ErrFrozen is returned when records are unpacked after Freeze.
	ErrFrozen = tree.ErrFrozen
	// ErrNotFrozen is returned when series are requested before Freeze.
	ErrNotFrozen = tree.ErrNotFrozen
)

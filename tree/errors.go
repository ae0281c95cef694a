package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaConflict is matched by every *SchemaConflictError.
	ErrSchemaConflict = errors.New("schema conflict")
	// ErrNotFound is returned when a label does not resolve to a node.
	ErrNotFound = errors.New("no such node")
	// ErrNotSeries is returned when a label resolves to a branch where a series was expected.
	ErrNotSeries = errors.New("not a time series")
	// ErrNotBranch is returned when a label resolves to a series or leaf where a branch was expected.
	ErrNotBranch = errors.New("not a branch")
	// ErrNotFrozen is returned when a series is requested from a leaf that has not been frozen yet.
	ErrNotFrozen = errors.New("not frozen")
	// ErrFrozen is returned when writing into a path that has already been frozen.
	ErrFrozen = errors.New("already frozen")
	// ErrFrozenLength is returned when freezing again with a different stream length.
	ErrFrozenLength = errors.New("frozen with a different length")
)

// SchemaConflictError reports a path whose kind disagrees with an incoming value.
type SchemaConflictError struct {
	// Label is the path of the existing node.
	Label string
	// Existing is the kind of the node already in the tree.
	Existing Kind
	// Incoming is KindBranch for a mapping or sequence, KindLeaf for a scalar.
	Incoming Kind
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("schema conflict at %s: existing %s cannot receive a %s value", e.Label, e.Existing, e.Incoming.valueName())
}

func (e *SchemaConflictError) Unwrap() error {
	return ErrSchemaConflict
}

// PathError records a failed addressing operation.
type PathError struct {
	Op    string
	Label string
	Err   error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Label + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

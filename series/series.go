package series

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"
)

var (
	// ErrLengthMismatch is returned when two series or a series and its time
	// index do not have the same number of samples.
	ErrLengthMismatch = errors.New("series length mismatch")
)

// Series is an immutable labeled sequence of float64 samples with optional times.
type Series struct {
	label  string
	values []float64
	times  []float64
}

// New creates a series without a time index.
//
// Parameters:
//   - label: Series label, usually the slash-delimited path of its source field
//   - values: Sample values (ownership is transferred to the series)
//
// Returns:
//   - *Series: The new series
func New(label string, values []float64) *Series {
	if values == nil {
		values = []float64{}
	}

	return &Series{label: label, values: values}
}

// NewWithTimes creates a series with a time index.
//
// Parameters:
//   - label: Series label
//   - values: Sample values (ownership is transferred to the series)
//   - times: Sample times in seconds, same length as values (ownership is
//     transferred; the slice may be shared with other series)
//
// Returns:
//   - *Series: The new series
//   - error: ErrLengthMismatch if len(times) != len(values)
func NewWithTimes(label string, values, times []float64) (*Series, error) {
	s := New(label, values)
	if times == nil {
		return s, nil
	}
	if len(times) != len(s.values) {
		return nil, fmt.Errorf("%w: %d values, %d times", ErrLengthMismatch, len(s.values), len(times))
	}
	s.times = times

	return s, nil
}

// Label returns the series label.
func (s *Series) Label() string {
	return s.label
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.values)
}

// HasTimes reports whether a time index is attached.
func (s *Series) HasTimes() bool {
	return s.times != nil
}

// At returns the value at index i. It panics if i is out of range.
func (s *Series) At(i int) float64 {
	return s.values[i]
}

// TimeAt returns the time at index i. It panics if the series has no times or
// if i is out of range.
func (s *Series) TimeAt(i int) float64 {
	return s.times[i]
}

// Values returns a copy of the sample values.
func (s *Series) Values() []float64 {
	return slices.Clone(s.values)
}

// Times returns a copy of the time index, or nil when none is attached.
func (s *Series) Times() []float64 {
	if s.times == nil {
		return nil
	}

	return slices.Clone(s.times)
}

// All iterates over (index, value) pairs.
func (s *Series) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i, v := range s.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// WithTimes returns a series with the same label and values and a new time index.
// The receiver is left untouched.
func (s *Series) WithTimes(times []float64) (*Series, error) {
	if times != nil && len(times) != len(s.values) {
		return nil, fmt.Errorf("%w: %s has %d values, %d times", ErrLengthMismatch, s.label, len(s.values), len(times))
	}

	return &Series{label: s.label, values: s.values, times: times}, nil
}

// WithLabel returns a series sharing values and times under another label.
func (s *Series) WithLabel(label string) *Series {
	return &Series{label: label, values: s.values, times: s.times}
}

// FirstValid returns the index of the first non-NaN sample, or -1.
func (s *Series) FirstValid() int {
	for i, v := range s.values {
		if !math.IsNaN(v) {
			return i
		}
	}

	return -1
}

// String implements fmt.Stringer.
func (s *Series) String() string {
	var b strings.Builder
	b.WriteString("Time series with values: [")
	for i, v := range s.values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatFloat(v))
	}
	b.WriteByte(']')

	return b.String()
}

// raw exposes the backing arrays to sibling operators without copying.
func (s *Series) raw() ([]float64, []float64) {
	return s.values, s.times
}

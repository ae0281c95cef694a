package tree

import (
	"math"
	"slices"

	"github.com/foxplot/foxplot/series"
)

// Leaf accumulates the raw values written to one scalar path, keyed by the
// step at which they were observed. Steps without a write are filled when the
// leaf is materialized.
type Leaf struct {
	label string
	steps []int
	raw   []any
}

// NewLeaf returns an empty leaf with the given label.
func NewLeaf(label string) *Leaf {
	return &Leaf{label: label}
}

// Label returns the full path of the leaf.
func (l *Leaf) Label() string {
	return l.label
}

// Count returns the number of recorded writes.
func (l *Leaf) Count() int {
	return len(l.steps)
}

// Missing returns the first step in [0, length) without a non-null write, or
// -1 if every step was written.
func (l *Leaf) Missing(length int) int {
	next := 0
	for i, step := range l.steps {
		if step >= length || step > next {
			break
		}
		if l.raw[i] == nil {
			return step
		}
		next = step + 1
	}
	if next < length {
		return next
	}

	return -1
}

// Write records value at step. Writes normally arrive in non-decreasing step
// order; an out-of-order write is inserted in place, and a second write at the
// same step replaces the first.
func (l *Leaf) Write(step int, value any) {
	n := len(l.steps)
	if n == 0 || l.steps[n-1] < step {
		l.steps = append(l.steps, step)
		l.raw = append(l.raw, value)

		return
	}

	i, found := slices.BinarySearch(l.steps, step)
	if found {
		l.raw[i] = value
		return
	}
	l.steps = slices.Insert(l.steps, i, step)
	l.raw = slices.Insert(l.raw, i, value)
}

// Materialize produces the dense series of the leaf over steps [0, length).
//
// The value at step i is the last value written at or before i, coerced with
// ToFloat. Steps before the first write are NaN, and a null write resets the
// fill to NaN. Writes at steps >= length are ignored.
//
// Parameters:
//   - length: Number of steps in the ingested stream
//   - times: Optional time values, nil or of size length
//
// Returns:
//   - *series.Series: Dense series labeled like the leaf
//   - error: series.ErrLengthMismatch if times has the wrong size
func (l *Leaf) Materialize(length int, times []float64) (*series.Series, error) {
	values := make([]float64, length)
	last := math.NaN()
	j := 0
	for i := range length {
		for j < len(l.steps) && l.steps[j] < i {
			j++
		}
		if j < len(l.steps) && l.steps[j] == i {
			last = ToFloat(l.raw[j])
			j++
		}
		values[i] = last
	}

	if times == nil {
		return series.New(l.label, values), nil
	}

	return series.NewWithTimes(l.label, values, times)
}

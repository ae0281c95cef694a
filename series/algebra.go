package series

import (
	"fmt"
	"math"
)

// Add returns the element-wise sum s + other.
//
// The result keeps the time index of s. Its label is the common prefix of
// both labels followed by "(suffix1 + suffix2)".
//
// Returns:
//   - *Series: The sum
//   - error: ErrLengthMismatch if the series have different lengths
func (s *Series) Add(other *Series) (*Series, error) {
	return s.combine("+", other, func(a, b float64) float64 { return a + b })
}

// Mul returns the element-wise product s * other. See Add for labeling.
func (s *Series) Mul(other *Series) (*Series, error) {
	return s.combine("*", other, func(a, b float64) float64 { return a * b })
}

// Div returns the element-wise quotient s / other. Division by zero follows
// IEEE 754 (±Inf or NaN). See Add for labeling.
func (s *Series) Div(other *Series) (*Series, error) {
	return s.combine("/", other, func(a, b float64) float64 { return a / b })
}

// MulScalar returns s multiplied by a scalar, labeled "(label * scalar)".
func (s *Series) MulScalar(scalar float64) *Series {
	return s.mapValues(ScalarLabel("*", s.label, scalar), func(v float64) float64 { return v * scalar })
}

// DivScalar returns s divided by a scalar, labeled "(label / scalar)".
func (s *Series) DivScalar(scalar float64) *Series {
	return s.mapValues(ScalarLabel("/", s.label, scalar), func(v float64) float64 { return v / scalar })
}

// Neg returns the negated series, labeled "-label".
func (s *Series) Neg() *Series {
	return s.mapValues("-"+s.label, func(v float64) float64 { return -v })
}

// Abs returns the element-wise absolute value, labeled "abs(label)".
func (s *Series) Abs() *Series {
	return s.mapValues("abs("+s.label+")", math.Abs)
}

func (s *Series) combine(op string, other *Series, fn func(a, b float64) float64) (*Series, error) {
	otherValues, _ := other.raw()
	if len(otherValues) != len(s.values) {
		return nil, fmt.Errorf("%w: %s has %d samples, %s has %d",
			ErrLengthMismatch, s.label, len(s.values), other.label, len(otherValues))
	}

	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = fn(v, otherValues[i])
	}

	return &Series{label: OperatorLabel(op, s.label, other.label), values: out, times: s.times}, nil
}

func (s *Series) mapValues(label string, fn func(float64) float64) *Series {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = fn(v)
	}

	return &Series{label: label, values: out, times: s.times}
}

package estimate

import (
	"fmt"
	"math"

	"github.com/foxplot/foxplot/series"
)

// welford accumulates a running mean and sum of squared deviations.
type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) add(x float64) {
	w.n++
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

// std returns the population standard deviation.
func (w *welford) std() float64 {
	if w.n == 0 {
		return math.NaN()
	}

	return math.Sqrt(w.m2 / float64(w.n))
}

// Std computes the population standard deviation of every window of size
// consecutive samples. The output has s.Len()-size+1 samples; sample j covers
// inputs [j, j+size) and carries the time of the window's last input.
// A NaN inside a window makes that window NaN.
//
// Parameters:
//   - s: Input series, with or without times
//   - size: Window size, between 1 and s.Len()
//
// Returns:
//   - *series.Series: Rolling standard deviations
//   - error: ErrInvalidWindow
func Std(s *series.Series, size int) (*series.Series, error) {
	if size < 1 || size > s.Len() {
		return nil, fmt.Errorf("std(%s, %d): %w for %d samples", s.Label(), size, ErrInvalidWindow, s.Len())
	}

	label := fmt.Sprintf("std(%s, %d)", s.Label(), size)
	values := s.Values()
	out := make([]float64, len(values)-size+1)
	for j := range out {
		var acc welford
		for _, v := range values[j : j+size] {
			acc.add(v)
		}
		out[j] = acc.std()
	}

	if !s.HasTimes() {
		return series.New(label, out), nil
	}

	return series.NewWithTimes(label, out, s.Times()[size-1:])
}

package estimate

import (
	"fmt"
	"math"

	"github.com/foxplot/foxplot/series"
)

// Unit is a time unit for derivatives.
type Unit string

const (
	Second Unit = "s"
	Minute Unit = "M"
	Hour   Unit = "H"
	Day    Unit = "d"
	Month  Unit = "m"
	Year   Unit = "y"
)

var unitSeconds = map[Unit]float64{
	Second: 1,
	Minute: 60,
	Hour:   3600,
	Day:    86400,
	Month:  2592000,
	Year:   31536000,
}

// ParseUnit validates a unit string.
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := unitSeconds[u]; !ok {
		return "", fmt.Errorf("%w: %q (expected one of s, M, H, d, m, y)", ErrInvalidUnit, s)
	}

	return u, nil
}

// Seconds returns the duration of one unit in seconds, or 0 for an unknown unit.
func (u Unit) Seconds() float64 {
	return unitSeconds[u]
}

// Deriv computes the time derivative of s, in value units per unit.
//
// Sample i holds the forward difference (v[i+1]-v[i])/dt. The last sample
// repeats the one before it, and a single-sample series yields [NaN].
// Non-positive time steps produce NaN and a warning.
//
// With WithCutoff, the differences are smoothed by the same exponential filter
// as LowPassFilter wherever the sampling interval resolves the cutoff; raw
// differences are passed through elsewhere.
//
// Parameters:
//   - s: Input series with a time index in seconds
//   - unit: Output time unit
//   - opts: WithLogger, WithCutoff
//
// Returns:
//   - *series.Series: Derivative, same length and times as s
//   - error: ErrUnsetTimes or ErrInvalidUnit
func Deriv(s *series.Series, unit Unit, opts ...Option) (*series.Series, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	scale := unit.Seconds()
	if scale == 0 {
		return nil, fmt.Errorf("deriv(%s): %w: %q", s.Label(), ErrInvalidUnit, string(unit))
	}
	if !s.HasTimes() {
		return nil, fmt.Errorf("deriv(%s): %w", s.Label(), ErrUnsetTimes)
	}

	label := fmt.Sprintf("deriv(%s, unit=%s)", s.Label(), unit)
	cutoff := cfg.cutoff * scale
	if cutoff > 0 {
		label = fmt.Sprintf("deriv(%s, unit=%s, cutoff=%s %s)", s.Label(), unit, series.FormatFloat(cfg.cutoff), unit)
	}

	values, times := s.Values(), s.Times()
	n := len(values)
	out := make([]float64, n)
	switch n {
	case 0:
		return series.NewWithTimes(label, out, times)
	case 1:
		out[0] = math.NaN()
		return series.NewWithTimes(label, out, times)
	}

	state := math.NaN()
	for i := 0; i+1 < n; i++ {
		dt := times[i+1] - times[i]
		if !(dt > 0) {
			cfg.logger.Warn("non-increasing time step",
				"estimator", "deriv", "index", i, "time", times[i], "dt", dt)
			out[i] = math.NaN()

			continue
		}

		d := (values[i+1] - values[i]) / dt * scale
		if cutoff > 0 && nyquist(cutoff, dt) && !math.IsNaN(state) && !math.IsNaN(d) {
			ff := math.Exp(-dt / cutoff)
			state += (1 - ff) * (d - state)
		} else {
			state = d
		}
		out[i] = state
	}
	out[n-1] = out[n-2]

	return series.NewWithTimes(label, out, times)
}

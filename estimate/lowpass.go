package estimate

import (
	"fmt"
	"math"

	"github.com/foxplot/foxplot/series"
)

// nyquist reports whether a step of dt seconds can resolve period. A NaN step
// is not a violation; callers deal with it separately.
func nyquist(period, dt float64) bool {
	return !(period < 2*dt)
}

// LowPassFilter applies a first-order exponential filter with the given cutoff
// period (in seconds) to s.
//
// The first output sample is s.At(0). For every following step the forgetting
// factor exp(-dt/period) is recomputed from the local sampling interval. Steps
// where the period is shorter than twice the interval are emitted as NaN
// without touching the filter state. Once a NaN input reaches the state, every
// later output is NaN.
//
// Parameters:
//   - s: Input series with a time index
//   - period: Cutoff period in seconds
//   - opts: WithLogger
//
// Returns:
//   - *series.Series: Filtered series, same length and times as s
//   - error: ErrUnsetTimes or ErrInvalidPeriod
func LowPassFilter(s *series.Series, period float64, opts ...Option) (*series.Series, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if !s.HasTimes() {
		return nil, fmt.Errorf("low_pass_filter(%s): %w", s.Label(), ErrUnsetTimes)
	}
	if !(period > 0) {
		return nil, fmt.Errorf("low_pass_filter(%s): %w: %v", s.Label(), ErrInvalidPeriod, period)
	}

	label := fmt.Sprintf("low_pass_filter(%s, cutoff_period=%s)", s.Label(), series.FormatFloat(period))
	values, times := s.Values(), s.Times()
	out := make([]float64, len(values))
	if len(values) == 0 {
		return series.NewWithTimes(label, out, times)
	}

	output := values[0]
	out[0] = output
	for i := 0; i+1 < len(values); i++ {
		dt := times[i+1] - times[i]
		if !nyquist(period, dt) {
			cfg.logger.Warn("Nyquist-Shannon sampling theorem violated",
				"estimator", "low_pass_filter", "index", i, "time", times[i], "dt", dt, "cutoff", period)
			out[i+1] = math.NaN()

			continue
		}
		ff := math.Exp(-dt / period)
		output += (1 - ff) * (values[i] - output)
		out[i+1] = output
	}

	return series.NewWithTimes(label, out, times)
}

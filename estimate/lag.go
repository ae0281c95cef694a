package estimate

import (
	"fmt"
	"math"

	"github.com/foxplot/foxplot/series"
	"github.com/foxplot/foxplot/tree"
)

const (
	singularThreshold = 1e-10
	minSlope          = 1e-10
)

// regression is an exponentially decayed accumulator of the cross products
// of x and y.
type regression struct {
	xx, xy, yy float64
}

func (r *regression) decay(ff float64) {
	r.xx *= ff
	r.xy *= ff
	r.yy *= ff
}

func (r *regression) add(x, y float64) {
	r.xx += x * x
	r.xy += x * y
	r.yy += y * y
}

func (r *regression) reset() {
	*r = regression{}
}

// residual returns the weighted sum of squared errors of y ~ slope*x.
func (r *regression) residual(slope float64) float64 {
	return slope*slope*r.xx - 2*slope*r.xy + r.yy
}

// Lag estimates, at every step, the time constant of the first-order system
// that would turn input into output.
//
// The model output[i+1]-output[i] = slope*(input[i]-output[i]) is fit by
// exponentially weighted least squares with forgetting factor
// exp(-dt/timeConstant), and the lag follows from slope = 1-exp(-dt/lag).
// A sample is NaN when the sampling interval does not resolve timeConstant,
// when dt, x or y is NaN, when the regression is singular, or when the fitted
// slope is outside (1e-10, 1). An out-of-range slope also clears the
// accumulator. The first sample is always NaN.
//
// Parameters:
//   - input: Input series with a time index
//   - output: Output series, same length as input
//   - timeConstant: Forgetting time constant in seconds
//   - opts: WithLogger
//
// Returns:
//   - *tree.Branch: Branch labeled "lag(input=..., output=...)" holding the
//     slope, lag and fitting_error series
//   - error: ErrUnsetTimes, ErrInvalidPeriod or series.ErrLengthMismatch
func Lag(input, output *series.Series, timeConstant float64, opts ...Option) (*tree.Branch, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	label := fmt.Sprintf("lag(input=%s, output=%s)", input.Label(), output.Label())
	if !input.HasTimes() {
		return nil, fmt.Errorf("%s: %w", label, ErrUnsetTimes)
	}
	if input.Len() != output.Len() {
		return nil, fmt.Errorf("%s: %w: %d inputs, %d outputs", label, series.ErrLengthMismatch, input.Len(), output.Len())
	}
	if !(timeConstant > 0) {
		return nil, fmt.Errorf("%s: %w: %v", label, ErrInvalidPeriod, timeConstant)
	}

	times, u, y := input.Times(), input.Values(), output.Values()
	n := len(times)
	slopes := nanSlice(n)
	lags := nanSlice(n)
	fittingErrors := nanSlice(n)

	var acc regression
	for i := 0; i+1 < n; i++ {
		dt := times[i+1] - times[i]
		if !nyquist(timeConstant, dt) {
			cfg.logger.Warn("Nyquist-Shannon sampling theorem violated",
				"estimator", "lag", "index", i, "time", times[i], "dt", dt, "cutoff", timeConstant)

			continue
		}

		dx := u[i] - y[i]
		dy := y[i+1] - y[i]
		if math.IsNaN(dt) || math.IsNaN(dx) || math.IsNaN(dy) {
			continue
		}

		ff := math.Exp(-dt / timeConstant)
		acc.decay(ff)
		acc.add(dx, dy)
		if acc.xx < singularThreshold {
			continue
		}

		slope := acc.xy / acc.xx
		if slope <= minSlope || slope >= 1 {
			cfg.logger.Debug("slope out of range, resetting regression",
				"estimator", "lag", "index", i, "time", times[i], "slope", slope)
			acc.reset()

			continue
		}

		slopes[i+1] = slope
		lags[i+1] = -dt / math.Log(1-slope)
		fittingErrors[i+1] = (1 - ff) * acc.residual(slope)
	}

	branch := tree.NewBranch(label)
	for _, child := range []struct {
		name   string
		values []float64
	}{
		{"slope", slopes},
		{"lag", lags},
		{"fitting_error", fittingErrors},
	} {
		s, err := series.NewWithTimes(label+"/"+child.name, child.values, times)
		if err != nil {
			return nil, err
		}
		if err := branch.Set(tree.Name(child.name), s); err != nil {
			return nil, err
		}
	}

	return branch, nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

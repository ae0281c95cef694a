package estimate

import (
	"errors"
	"log/slog"
	"math"

	"github.com/foxplot/foxplot/internal/options"
)

var (
	// ErrUnsetTimes is returned when the input series has no time index.
	ErrUnsetTimes = errors.New("Unset time values")
	// ErrInvalidWindow is returned by Std for a window outside [1, len].
	ErrInvalidWindow = errors.New("invalid window size")
	// ErrInvalidUnit is returned by ParseUnit and Deriv for an unknown unit.
	ErrInvalidUnit = errors.New("invalid time unit")
	// ErrInvalidPeriod is returned for a non-positive or NaN cutoff period or time constant.
	ErrInvalidPeriod = errors.New("invalid period")
)

type config struct {
	logger *slog.Logger
	cutoff float64
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return cfg, nil
}

// Option configures an estimator call.
type Option = options.Option[*config]

// WithLogger sets the logger receiving per-sample diagnostics.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = logger
	})
}

// WithCutoff smooths the output of Deriv with a first-order low-pass filter.
// The period is expressed in the unit passed to Deriv. Zero disables smoothing.
func WithCutoff(period float64) Option {
	return options.New(func(c *config) error {
		if period < 0 || math.IsNaN(period) {
			return ErrInvalidPeriod
		}
		c.cutoff = period

		return nil
	})
}

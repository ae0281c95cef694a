package foxplot

import (
	"errors"
	"log/slog"

	"github.com/foxplot/foxplot/internal/options"
)

type config struct {
	timeLabel string
	logger    *slog.Logger
}

// Option configures a Fox.
type Option = options.Option[*config]

// WithTime designates the leaf holding the time of each record. Every record
// must then carry a non-null value at that label, and Freeze attaches its
// values as the times of every series.
func WithTime(label string) Option {
	return options.New(func(c *config) error {
		if label == "" {
			return errors.New("time label must not be empty")
		}
		c.timeLabel = label

		return nil
	})
}

// WithLogger sets the logger used for ingestion diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

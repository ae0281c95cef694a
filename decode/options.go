package decode

import (
	"errors"
	"io"

	"github.com/foxplot/foxplot/internal/options"
)

// DefaultChunkSize is the read buffer size of decoders.
const DefaultChunkSize = 100_000

type config struct {
	chunkSize int
	stdin     io.Reader
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{chunkSize: DefaultChunkSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Option configures a decoder.
type Option = options.Option[*config]

// WithChunkSize sets the number of bytes read from the source at a time.
func WithChunkSize(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return errors.New("chunk size must be positive")
		}
		c.chunkSize = n

		return nil
	})
}

// WithStdin replaces os.Stdin as the source of the "stdin" and "-" paths.
func WithStdin(r io.Reader) Option {
	return options.NoError(func(c *config) {
		c.stdin = r
	})
}

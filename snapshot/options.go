package snapshot

import (
	"fmt"

	"github.com/foxplot/foxplot/format"
	"github.com/foxplot/foxplot/internal/options"
)

type config struct {
	compression format.CompressionType
	encoding    format.EncodingType
	bigEndian   bool
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		compression: format.CompressionZstd,
		encoding:    format.TypeGorilla,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Option configures Write.
type Option = options.Option[*config]

// WithCompression sets the payload codec. The default is Zstd.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		switch c {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = c
			return nil
		default:
			return fmt.Errorf("invalid snapshot compression: %s", c)
		}
	})
}

// WithEncoding sets the value column layout. The default is Gorilla.
func WithEncoding(e format.EncodingType) Option {
	return options.New(func(cfg *config) error {
		switch e {
		case format.TypeRaw, format.TypeGorilla:
			cfg.encoding = e
			return nil
		default:
			return fmt.Errorf("invalid snapshot encoding: %s", e)
		}
	})
}

// WithBigEndian writes numbers most significant byte first.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.bigEndian = true
	})
}

// WithLittleEndian writes numbers least significant byte first. It is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.bigEndian = false
	})
}

package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/foxplot/foxplot/format"
)

// ZstdCodec implements Zstandard. Snapshots default to it since forward-filled
// columns are long runs of identical words.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec returns the Zstandard codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (c ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}

// NewReader reads a stream of zstd frames. Streams always go through the pure
// Go decoder.
func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd stream: %w", err)
	}

	return dec.IOReadCloser(), nil
}

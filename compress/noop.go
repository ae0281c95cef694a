package compress

import (
	"io"

	"github.com/foxplot/foxplot/format"
)

// NoOpCodec stores payloads uncompressed. Use it when a snapshot must stay
// readable with a hex dump, or when the payload is already small.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec returns the pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Type returns format.CompressionNone.
func (c NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress returns data itself. The result aliases the input.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself. The result aliases the input.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// NewReader returns r with a no-op Close.
func (c NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/foxplot/foxplot/format"
)

// S2Codec implements S2, the Snappy-compatible format of klauspost/compress.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec returns the S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns format.CompressionS2.
func (c S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress encodes data as one S2 block.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes one S2 block.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

// NewReader reads the S2 (or Snappy) framed stream format.
func (c S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

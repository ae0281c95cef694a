package compress

import (
	"fmt"
	"io"

	"github.com/foxplot/foxplot/format"
)

// Compressor compresses one self-contained block.
//
// The returned slice is owned by the caller and the input is not modified,
// except for the None codec which returns its input as is.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor for blocks of the same algorithm.
// Corrupted or foreign input is reported as an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// StreamReader opens a decompressing reader over a framed stream.
type StreamReader interface {
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Codec is implemented by every built-in algorithm.
type Codec interface {
	Compressor
	Decompressor
	StreamReader

	// Type returns the algorithm identifier stored in snapshot headers.
	Type() format.CompressionType
}

// CreateCodec returns a fresh codec for compressionType.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of what is being compressed, used in error messages
//
// Returns:
//   - Codec: Codec for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the shared built-in codec for compressionType.
// Built-in codecs are safe for concurrent use.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// NewReader wraps r with the stream decompressor of compressionType.
// CompressionNone returns r with a no-op Close.
func NewReader(r io.Reader, compressionType format.CompressionType) (io.ReadCloser, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.NewReader(r)
}

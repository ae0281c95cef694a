package encoding

import (
	"errors"
	"fmt"
	"iter"

	"github.com/foxplot/foxplot/endian"
	"github.com/foxplot/foxplot/format"
)

// ErrTruncated is returned when a column or string ends before the expected
// number of items has been decoded.
var ErrTruncated = errors.New("truncated data")

// ColumnarEncoder accumulates a column of values.
type ColumnarEncoder[T comparable] interface {
	// Write appends a single value.
	Write(value T)
	// WriteSlice appends values in order.
	WriteSlice(values []T)
	// Bytes returns the encoded column. The slice is owned by the encoder and
	// valid until the next Write or Reset.
	Bytes() []byte
	// Len returns the number of values written.
	Len() int
	// Reset discards everything written so far.
	Reset()
}

// ColumnarDecoder decodes a column produced by the matching encoder.
type ColumnarDecoder[T comparable] interface {
	// All yields at most count values. Malformed data stops the iteration early.
	All(data []byte, count int) iter.Seq[T]
}

// NewFloatEncoder returns the encoder of a float64 column layout.
func NewFloatEncoder(enc format.EncodingType, engine endian.EndianEngine) (ColumnarEncoder[float64], error) {
	switch enc {
	case format.TypeRaw:
		return NewNumericRawEncoder(engine), nil
	case format.TypeGorilla:
		return NewNumericGorillaEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported value encoding: %s", enc)
	}
}

// NewFloatDecoder returns the decoder of a float64 column layout.
func NewFloatDecoder(enc format.EncodingType, engine endian.EndianEngine) (ColumnarDecoder[float64], error) {
	switch enc {
	case format.TypeRaw:
		return NewNumericRawDecoder(engine), nil
	case format.TypeGorilla:
		return NewNumericGorillaDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported value encoding: %s", enc)
	}
}

// DecodeFloats decodes exactly count values or fails with ErrTruncated.
func DecodeFloats(dec ColumnarDecoder[float64], data []byte, count int) ([]float64, error) {
	values := make([]float64, 0, count)
	for v := range dec.All(data, count) {
		values = append(values, v)
	}
	if len(values) != count {
		return nil, fmt.Errorf("%w: decoded %d of %d values", ErrTruncated, len(values), count)
	}

	return values, nil
}

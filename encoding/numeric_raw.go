package encoding

import (
	"iter"
	"math"

	"github.com/foxplot/foxplot/endian"
)

// NumericRawEncoder stores float64 values as their IEEE 754 bits.
type NumericRawEncoder struct {
	engine endian.EndianEngine
	buf    []byte
	count  int
}

var _ ColumnarEncoder[float64] = (*NumericRawEncoder)(nil)

// NewNumericRawEncoder creates a raw encoder writing in the byte order of engine.
func NewNumericRawEncoder(engine endian.EndianEngine) *NumericRawEncoder {
	return &NumericRawEncoder{engine: engine}
}

func (e *NumericRawEncoder) Write(value float64) {
	e.buf = e.engine.AppendUint64(e.buf, math.Float64bits(value))
	e.count++
}

func (e *NumericRawEncoder) WriteSlice(values []float64) {
	e.buf = growCap(e.buf, 8*len(values))
	for _, v := range values {
		e.buf = e.engine.AppendUint64(e.buf, math.Float64bits(v))
	}
	e.count += len(values)
}

func (e *NumericRawEncoder) Bytes() []byte {
	return e.buf
}

func (e *NumericRawEncoder) Len() int {
	return e.count
}

func (e *NumericRawEncoder) Reset() {
	e.buf = e.buf[:0]
	e.count = 0
}

// NumericRawDecoder reads columns written by NumericRawEncoder.
type NumericRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = NumericRawDecoder{}

// NewNumericRawDecoder creates a raw decoder reading in the byte order of engine.
func NewNumericRawDecoder(engine endian.EndianEngine) NumericRawDecoder {
	return NumericRawDecoder{engine: engine}
}

func (d NumericRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := 0; i < count && 8*(i+1) <= len(data); i++ {
			if !yield(math.Float64frombits(d.engine.Uint64(data[8*i:]))) {
				return
			}
		}
	}
}

// growCap makes room for n more bytes without changing len(buf).
func growCap(buf []byte, n int) []byte {
	if cap(buf)-len(buf) >= n {
		return buf
	}
	grown := make([]byte, len(buf), len(buf)+n)
	copy(grown, buf)

	return grown
}

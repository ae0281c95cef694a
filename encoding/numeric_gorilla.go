package encoding

import (
	"encoding/binary"
	"iter"
	"math"
	"math/bits"
)

// NumericGorillaEncoder compresses float64 values with the Gorilla XOR scheme:
//  1. The first value is stored as its 64 bits.
//  2. An unchanged value is a single 0 bit.
//  3. A changed value is a 1 bit followed by either 0 and the meaningful bits
//     inside the previous leading/trailing window, or 1, a 5-bit leading zero
//     count, a 6-bit length and the meaningful bits.
//
// The bit stream is big-endian regardless of the snapshot byte order.
type NumericGorillaEncoder struct {
	w             bitWriter
	prevValue     uint64
	prevLeading   int
	prevTrailing  int
	prevBlockSize int
	count         int
}

var _ ColumnarEncoder[float64] = (*NumericGorillaEncoder)(nil)

// NewNumericGorillaEncoder creates an empty Gorilla encoder.
func NewNumericGorillaEncoder() *NumericGorillaEncoder {
	return &NumericGorillaEncoder{}
}

func (e *NumericGorillaEncoder) Write(value float64) {
	valBits := math.Float64bits(value)
	e.count++
	if e.count == 1 {
		e.prevValue = valBits
		e.w.writeBits(valBits, 64)

		return
	}
	e.writeValue(valBits)
}

func (e *NumericGorillaEncoder) WriteSlice(values []float64) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *NumericGorillaEncoder) writeValue(valBits uint64) {
	xor := valBits ^ e.prevValue
	e.prevValue = valBits
	if xor == 0 {
		e.w.writeBit(0)
		return
	}
	e.w.writeBit(1)

	leading := bits.LeadingZeros64(xor)
	trailing := bits.TrailingZeros64(xor)
	// The leading count has 5 bits.
	if leading > 31 {
		leading = 31
	}

	if e.prevBlockSize > 0 && leading >= e.prevLeading && trailing >= e.prevTrailing {
		e.w.writeBit(0)
		e.w.writeBits(xor>>e.prevTrailing, e.prevBlockSize)

		return
	}

	blockSize := 64 - leading - trailing
	e.w.writeBit(1)
	e.w.writeBits(uint64(leading), 5)     //nolint:gosec
	e.w.writeBits(uint64(blockSize-1), 6) //nolint:gosec
	e.w.writeBits(xor>>trailing, blockSize)

	e.prevLeading = leading
	e.prevTrailing = trailing
	e.prevBlockSize = blockSize
}

// Bytes flushes pending bits and returns the column. The last byte is zero
// padded.
func (e *NumericGorillaEncoder) Bytes() []byte {
	return e.w.bytes()
}

func (e *NumericGorillaEncoder) Len() int {
	return e.count
}

func (e *NumericGorillaEncoder) Reset() {
	*e = NumericGorillaEncoder{w: bitWriter{buf: e.w.buf[:0]}}
}

// NumericGorillaDecoder decodes columns written by NumericGorillaEncoder.
// It is stateless and safe for concurrent use.
type NumericGorillaDecoder struct{}

var _ ColumnarDecoder[float64] = NumericGorillaDecoder{}

// NewNumericGorillaDecoder returns a Gorilla decoder.
func NewNumericGorillaDecoder() NumericGorillaDecoder {
	return NumericGorillaDecoder{}
}

func (NumericGorillaDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 {
			return
		}
		br := bitReader{data: data}

		prev, ok := br.readBits(64)
		if !ok || !yield(math.Float64frombits(prev)) {
			return
		}

		var trailing, blockSize int
		for i := 1; i < count; i++ {
			changed, ok := br.readBit()
			if !ok {
				return
			}
			if changed == 1 {
				newBlock, ok := br.readBit()
				if !ok {
					return
				}
				if newBlock == 1 {
					leading, ok1 := br.readBits(5)
					size, ok2 := br.readBits(6)
					if !ok1 || !ok2 {
						return
					}
					blockSize = int(size) + 1
					trailing = 64 - int(leading) - blockSize
					if trailing < 0 {
						return
					}
				} else if blockSize == 0 {
					return
				}

				meaningful, ok := br.readBits(blockSize)
				if !ok {
					return
				}
				prev ^= meaningful << trailing
			}
			if !yield(math.Float64frombits(prev)) {
				return
			}
		}
	}
}

// bitWriter accumulates bits most significant first.
type bitWriter struct {
	buf      []byte
	bitBuf   uint64
	bitCount int
}

func (w *bitWriter) writeBit(bit uint64) {
	w.bitBuf = w.bitBuf<<1 | bit
	w.bitCount++
	if w.bitCount == 64 {
		w.flush()
	}
}

// writeBits writes the low numBits bits of value, 0 <= numBits <= 64.
func (w *bitWriter) writeBits(value uint64, numBits int) {
	if numBits == 0 {
		return
	}
	if numBits < 64 {
		value &= 1<<numBits - 1
	}

	available := 64 - w.bitCount
	if numBits < available {
		w.bitBuf = w.bitBuf<<numBits | value
		w.bitCount += numBits

		return
	}

	rest := numBits - available
	if available == 64 {
		w.bitBuf = value
	} else {
		w.bitBuf = w.bitBuf<<available | value>>rest
	}
	w.bitCount = 64
	w.flush()
	if rest > 0 {
		w.bitBuf = value & (1<<rest - 1)
		w.bitCount = rest
	}
}

// flush appends the complete bytes of the bit buffer. A partial trailing
// byte is only written by bytes.
func (w *bitWriter) flush() {
	if w.bitCount == 64 {
		w.buf = binary.BigEndian.AppendUint64(w.buf, w.bitBuf)
		w.bitBuf = 0
		w.bitCount = 0
	}
}

func (w *bitWriter) bytes() []byte {
	out := w.buf
	if w.bitCount > 0 {
		aligned := w.bitBuf << (64 - w.bitCount)
		for i := range (w.bitCount + 7) / 8 {
			out = append(out, byte(aligned>>(56-8*i)))
		}
	}

	return out
}

// bitReader reads bits most significant first.
type bitReader struct {
	data     []byte
	bytePos  int
	bitBuf   uint64
	bitCount int
}

func (br *bitReader) fill() bool {
	if br.bytePos >= len(br.data) {
		return false
	}
	n := min(8, len(br.data)-br.bytePos)
	if n == 8 {
		br.bitBuf = binary.BigEndian.Uint64(br.data[br.bytePos:])
	} else {
		br.bitBuf = 0
		for i := range n {
			br.bitBuf |= uint64(br.data[br.bytePos+i]) << (56 - 8*i)
		}
	}
	br.bytePos += n
	br.bitCount = 8 * n

	return true
}

func (br *bitReader) readBit() (uint64, bool) {
	if br.bitCount == 0 && !br.fill() {
		return 0, false
	}
	bit := br.bitBuf >> 63
	br.bitBuf <<= 1
	br.bitCount--

	return bit, true
}

// readBits reads numBits bits, 1 <= numBits <= 64, right aligned.
func (br *bitReader) readBits(numBits int) (uint64, bool) {
	var result uint64
	for numBits > 0 {
		if br.bitCount == 0 && !br.fill() {
			return 0, false
		}
		n := min(numBits, br.bitCount)
		chunk := br.bitBuf >> (64 - n)
		if n == 64 {
			result = chunk
			br.bitBuf = 0
		} else {
			result = result<<n | chunk
			br.bitBuf <<= n
		}
		br.bitCount -= n
		numBits -= n
	}

	return result, true
}

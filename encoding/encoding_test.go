package encoding

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/foxplot/foxplot/endian"
	"github.com/foxplot/foxplot/format"
)

var columns = map[string][]float64{
	"single":         {42.5},
	"forward_filled": {math.NaN(), math.NaN(), 12, 12, 12, 22, 22, 22, 22},
	"ramp":           {0, 0.1, 0.2, 0.30000000000000004, 0.4, 0.5},
	"mixed": {
		1, -1, 0, math.Inf(1), math.Inf(-1), math.SmallestNonzeroFloat64,
		math.MaxFloat64, 1e-300, 3.141592653589793, 12345, 12345.000001,
	},
	"sensor": func() []float64 {
		out := make([]float64, 500)
		for i := range out {
			out[i] = math.Sin(float64(i)*0.01) * 9.81
		}
		return out
	}(),
}

func roundTrip(t *testing.T, enc format.EncodingType, engine endian.EndianEngine, values []float64) []float64 {
	t.Helper()
	encoder, err := NewFloatEncoder(enc, engine)
	require.NoError(t, err)
	encoder.WriteSlice(values)
	require.Equal(t, len(values), encoder.Len())

	decoder, err := NewFloatDecoder(enc, engine)
	require.NoError(t, err)
	decoded, err := DecodeFloats(decoder, encoder.Bytes(), len(values))
	require.NoError(t, err)

	return decoded
}

func TestFloatColumns_RoundTrip(t *testing.T) {
	engines := map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}

	for _, enc := range []format.EncodingType{format.TypeRaw, format.TypeGorilla} {
		for engineName, engine := range engines {
			for name, values := range columns {
				t.Run(enc.String()+"/"+engineName+"/"+name, func(t *testing.T) {
					decoded := roundTrip(t, enc, engine, values)
					if diff := cmp.Diff(values, decoded, cmpopts.EquateNaNs()); diff != "" {
						t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
					}
				})
			}
		}
	}
}

func TestGorilla_RepeatedValuesCostOneBit(t *testing.T) {
	enc := NewNumericGorillaEncoder()
	enc.Write(12345)
	for range 800 {
		enc.Write(12345)
	}

	// 64 bits for the first value and 800 zero bits.
	require.Len(t, enc.Bytes(), 8+100)
}

func TestGorilla_NaNBitsPreserved(t *testing.T) {
	payload := math.Float64frombits(0x7ff8000000000001)
	decoded := roundTrip(t, format.TypeGorilla, endian.GetLittleEndianEngine(), []float64{payload, 1, payload})
	require.Equal(t, uint64(0x7ff8000000000001), math.Float64bits(decoded[0]))
	require.Equal(t, uint64(0x7ff8000000000001), math.Float64bits(decoded[2]))
}

func TestGorilla_Reset(t *testing.T) {
	enc := NewNumericGorillaEncoder()
	enc.WriteSlice([]float64{1, 2, 3})
	enc.Reset()
	require.Zero(t, enc.Len())
	require.Empty(t, enc.Bytes())

	enc.WriteSlice([]float64{4, 5})
	decoded, err := DecodeFloats(NewNumericGorillaDecoder(), enc.Bytes(), 2)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5}, decoded)
}

func TestDecodeFloats_Truncated(t *testing.T) {
	for _, enc := range []format.EncodingType{format.TypeRaw, format.TypeGorilla} {
		t.Run(enc.String(), func(t *testing.T) {
			engine := endian.GetLittleEndianEngine()
			encoder, err := NewFloatEncoder(enc, engine)
			require.NoError(t, err)
			encoder.WriteSlice(columns["mixed"])
			data := encoder.Bytes()

			decoder, err := NewFloatDecoder(enc, engine)
			require.NoError(t, err)
			_, err = DecodeFloats(decoder, data[:len(data)/2], len(columns["mixed"]))
			require.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestUnsupportedEncoding(t *testing.T) {
	_, err := NewFloatEncoder(format.EncodingType(0x2), endian.GetLittleEndianEngine())
	require.Error(t, err)
	_, err = NewFloatDecoder(format.EncodingType(0), endian.GetLittleEndianEngine())
	require.Error(t, err)
}

func TestVarString(t *testing.T) {
	labels := []string{"", "/", "/observation/imu/orientation/0", "lag(input=/u, output=/y)/fitting_error", string(make([]byte, 300))}

	var buf []byte
	for _, l := range labels {
		buf = AppendVarString(buf, l)
	}

	for _, want := range labels {
		got, n, err := ReadVarString(buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
		buf = buf[n:]
	}
	require.Empty(t, buf)

	_, _, err := ReadVarString([]byte{0x05, 'a', 'b'})
	require.ErrorIs(t, err, ErrTruncated)

	_, _, err = ReadVarString(nil)
	require.ErrorIs(t, err, ErrTruncated)
}

package compress

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	"github.com/foxplot/foxplot/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCodec(),
		"LZ4":  NewLZ4Codec(),
		"S2":   NewS2Codec(),
		"Zstd": NewZstdCodec(),
	}
}

// repeatedColumn mimics a forward-filled float64 column: long runs of the
// same 8-byte word.
func repeatedColumn(n int) []byte {
	word := []byte{0x40, 0x28, 0x1c, 0x00, 0x00, 0x00, 0x00, 0x00}
	return bytes.Repeat(word, n)
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "payload")
			require.NoError(t, err)
			require.Equal(t, ct, codec.Type())

			shared, err := GetCodec(ct)
			require.NoError(t, err)
			require.Equal(t, ct, shared.Type())
		})
	}

	_, err := CreateCodec(format.CompressionType(0x7f), "payload")
	require.ErrorContains(t, err, "invalid payload compression")

	_, err = GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)

			compressed, err = codec.Compress([]byte{})
			require.NoError(t, err)
			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "small_text", data: []byte("/observation/imu/orientation/0")},
		{name: "single_byte", data: []byte{0x42}},
		{name: "forward_filled_column", data: repeatedColumn(4096)},
		{
			name: "varying_column",
			data: func() []byte {
				data := make([]byte, 8192)
				for i := range data {
					data[i] = byte((i*7 + i*i) % 251)
				}
				return data
			}(),
		},
		{name: "zeros", data: make([]byte, 1<<20)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_ForwardFilledColumnShrinks(t *testing.T) {
	data := repeatedColumn(4096)
	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data)/10)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := [][]byte{
		{0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("this is not compressed data"),
	}

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			for _, input := range invalidInputs {
				_, err := codec.Decompress(input)
				require.Error(t, err)
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const goroutines = 16
	data := repeatedColumn(512)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errs := make(chan error, goroutines)
			for range goroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()
					compressed, err := codec.Compress(data)
					if err != nil {
						errs <- err
						return
					}
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						errs <- err
						return
					}
					if !bytes.Equal(data, decompressed) {
						errs <- io.ErrUnexpectedEOF
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}
		})
	}
}

func compressStream(t *testing.T, ct format.CompressionType, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer

	var w io.WriteCloser
	switch ct {
	case format.CompressionZstd:
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = enc
	case format.CompressionS2:
		w = s2.NewWriter(&buf)
	case format.CompressionLZ4:
		w = lz4.NewWriter(&buf)
	default:
		return data
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestNewReader(t *testing.T) {
	data := []byte(`{"time": 0, "x": 1}` + "\n" + `{"time": 1, "x": 2}` + "\n")

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			stream := compressStream(t, ct, data)

			rc, err := NewReader(bytes.NewReader(stream), ct)
			require.NoError(t, err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}

	_, err := NewReader(bytes.NewReader(nil), format.CompressionType(0))
	require.Error(t, err)
}

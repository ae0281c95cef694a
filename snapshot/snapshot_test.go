package snapshot

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/foxplot/foxplot/format"
	"github.com/foxplot/foxplot/series"
)

func frozenSeries(t *testing.T) []*series.Series {
	t.Helper()
	times := []float64{0, 1, 2}
	a, err := series.NewWithTimes("/config_a", []float64{12345, 12345, 12345}, times)
	require.NoError(t, err)
	x, err := series.NewWithTimes("/x", []float64{math.NaN(), 12, 22}, times)
	require.NoError(t, err)
	j, err := series.NewWithTimes("/joints/0", []float64{0.5, -0.25, 1e-9}, times)
	require.NoError(t, err)

	return []*series.Series{a, x, j}
}

func requireSameSeries(t *testing.T, want, got []*series.Series) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Label(), got[i].Label())
		if diff := cmp.Diff(want[i].Values(), got[i].Values(), cmpopts.EquateNaNs()); diff != "" {
			t.Fatalf("%s values mismatch (-want +got):\n%s", want[i].Label(), diff)
		}
		require.Equal(t, want[i].Times(), got[i].Times())
	}
}

func TestRoundTrip(t *testing.T) {
	optionSets := map[string][]Option{
		"default":     nil,
		"none_raw":    {WithCompression(format.CompressionNone), WithEncoding(format.TypeRaw)},
		"s2":          {WithCompression(format.CompressionS2)},
		"lz4_big":     {WithCompression(format.CompressionLZ4), WithBigEndian()},
		"zstd_little": {WithBigEndian(), WithLittleEndian()},
	}

	for name, opts := range optionSets {
		t.Run(name, func(t *testing.T) {
			items := frozenSeries(t)

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, items, opts...))

			snap, err := Read(&buf)
			require.NoError(t, err)
			require.Equal(t, 3, snap.Len())
			require.Equal(t, []float64{0, 1, 2}, snap.Times())
			require.Equal(t, []string{"/config_a", "/x", "/joints/0"}, snap.Labels())
			requireSameSeries(t, items, snap.Series())

			x, ok := snap.Lookup("/x")
			require.True(t, ok)
			require.Equal(t, 22.0, x.At(2))

			_, ok = snap.Lookup("/y")
			require.False(t, ok)
		})
	}
}

func TestRoundTrip_WithoutTimes(t *testing.T) {
	items := []*series.Series{series.New("/a", []float64{1, 2}), series.New("/b", []float64{3, 4})}

	data, err := Encode(items)
	require.NoError(t, err)

	snap, err := Decode(data)
	require.NoError(t, err)
	require.False(t, snap.Header().HasTimes())
	require.Nil(t, snap.Times())
	requireSameSeries(t, items, snap.Series())
}

func TestRoundTrip_Empty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	require.Len(t, data, HeaderSize)

	snap, err := Decode(data)
	require.NoError(t, err)
	require.Zero(t, snap.Len())
	require.Empty(t, snap.Series())
}

func TestHeader(t *testing.T) {
	data, err := Encode(frozenSeries(t), WithCompression(format.CompressionS2), WithBigEndian())
	require.NoError(t, err)

	h, err := ParseHeader(data)
	require.NoError(t, err)
	require.True(t, h.BigEndian())
	require.True(t, h.HasTimes())
	require.Equal(t, format.CompressionS2, h.Compression)
	require.Equal(t, format.TypeGorilla, h.Encoding)
	require.Equal(t, uint32(3), h.SeriesCount)
	require.Equal(t, uint64(3), h.Length)
	require.Equal(t, uint64(len(data)-HeaderSize), h.PayloadSize)
	require.Equal(t, h.Bytes(), data[:HeaderSize])
}

func TestForwardFilledSeriesCompress(t *testing.T) {
	values := make([]float64, 10000)
	for i := range values {
		values[i] = float64(i / 1000)
	}

	data, err := Encode([]*series.Series{series.New("/step", values)})
	require.NoError(t, err)
	require.Less(t, len(data), 8*len(values)/20)
}

func TestEncode_Errors(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := Encode([]*series.Series{series.New("/a", []float64{1}), series.New("/b", []float64{1, 2})})
		require.ErrorIs(t, err, ErrInconsistentSeries)
	})

	t.Run("times mismatch", func(t *testing.T) {
		a, err := series.NewWithTimes("/a", []float64{1, 2}, []float64{0, 1})
		require.NoError(t, err)
		_, err = Encode([]*series.Series{a, series.New("/b", []float64{1, 2})})
		require.ErrorIs(t, err, ErrInconsistentSeries)
	})

	t.Run("duplicate label", func(t *testing.T) {
		_, err := Encode([]*series.Series{series.New("/a", []float64{1}), series.New("/a", []float64{2})})
		require.ErrorIs(t, err, ErrDuplicateLabel)
	})

	t.Run("empty label", func(t *testing.T) {
		_, err := Encode([]*series.Series{series.New("", []float64{1})})
		require.ErrorIs(t, err, ErrEmptyLabel)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := Encode(nil, WithCompression(format.CompressionType(9)))
		require.Error(t, err)
		_, err = Encode(nil, WithEncoding(format.EncodingType(9)))
		require.Error(t, err)
	})
}

func TestDecode_Errors(t *testing.T) {
	valid, err := Encode(frozenSeries(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	t.Run("short", func(t *testing.T) {
		_, err := Decode(valid[:10])
		require.ErrorIs(t, err, ErrInvalidHeaderSize)
	})

	t.Run("magic", func(t *testing.T) {
		data := bytes.Clone(valid)
		data[1] = 0x00
		_, err := Decode(data)
		require.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := Decode(valid[:len(valid)-3])
		require.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("label hash", func(t *testing.T) {
		data := bytes.Clone(valid)
		i := bytes.Index(data, []byte("/config_a"))
		require.Positive(t, i)
		data[i+1] = 'C'
		_, err := Decode(data)
		require.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("unknown compression", func(t *testing.T) {
		data := bytes.Clone(valid)
		data[3] = 0x7f
		_, err := Decode(data)
		require.ErrorIs(t, err, ErrCorrupted)
	})
}

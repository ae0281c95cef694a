package decode

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func collect(t *testing.T, seq func(func(map[string]any, error) bool)) ([]map[string]any, error) {
	t.Helper()
	var records []map[string]any
	for record, err := range seq {
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}

	return records, nil
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "newline delimited", input: "{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n", want: 3},
		{name: "concatenated", input: `{"a":1}{"a":2}`, want: 2},
		{name: "whitespace", input: " {\"a\":1}\r\n\t {\"b\":{\"c\":[1,2]}} ", want: 2},
		{name: "null records skipped", input: "{\"a\":1}\nnull\n{\"a\":2}", want: 2},
		{name: "empty", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := collect(t, JSON(strings.NewReader(tt.input)))
			require.NoError(t, err)
			require.Len(t, records, tt.want)
		})
	}
}

func TestJSON_Values(t *testing.T) {
	records, err := collect(t, JSON(strings.NewReader(`{"time":0.5,"obs":{"imu":[1,2]},"ok":true,"mode":"idle"}`), WithChunkSize(4)))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	require.Equal(t, 0.5, r["time"])
	require.Equal(t, map[string]any{"imu": []any{1.0, 2.0}}, r["obs"])
	require.Equal(t, true, r["ok"])
	require.Equal(t, "idle", r["mode"])
}

func TestJSON_Errors(t *testing.T) {
	t.Run("not an object", func(t *testing.T) {
		records, err := collect(t, JSON(strings.NewReader(`{"a":1} [1,2]`)))
		require.ErrorIs(t, err, ErrNotObject)
		require.Len(t, records, 1)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := collect(t, JSON(strings.NewReader(`{"a":1} {"a":`)))
		require.Error(t, err)
		require.Contains(t, err.Error(), "record 1")
	})

	t.Run("invalid chunk size", func(t *testing.T) {
		_, err := collect(t, JSON(strings.NewReader(`{}`), WithChunkSize(0)))
		require.Error(t, err)
	})
}

func TestJSON_EarlyStop(t *testing.T) {
	count := 0
	for range JSON(strings.NewReader(`{"a":1}{"a":2}{"a":3}`)) {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func appendRecord(b []byte, step int64, x float64) []byte {
	b = msgp.AppendMapHeader(b, 3)
	b = msgp.AppendString(b, "step")
	b = msgp.AppendInt64(b, step)
	b = msgp.AppendString(b, "x")
	b = msgp.AppendFloat64(b, x)
	b = msgp.AppendString(b, "action")
	b = msgp.AppendMapHeader(b, 1)
	b = msgp.AppendString(b, "ready")
	b = msgp.AppendBool(b, step > 0)

	return b
}

func TestMessagePack(t *testing.T) {
	var data []byte
	data = appendRecord(data, 0, 1.5)
	data = msgp.AppendNil(data)
	data = appendRecord(data, 1, 2.5)

	records, err := collect(t, MessagePack(bytes.NewReader(data)))
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, int64(0), records[0]["step"])
	require.Equal(t, 1.5, records[0]["x"])
	require.Equal(t, map[string]any{"ready": false}, records[0]["action"])
	require.Equal(t, map[string]any{"ready": true}, records[1]["action"])
}

func TestMessagePack_Errors(t *testing.T) {
	t.Run("not a map", func(t *testing.T) {
		data := appendRecord(nil, 0, 1)
		data = msgp.AppendFloat64(data, 3)

		records, err := collect(t, MessagePack(bytes.NewReader(data)))
		require.ErrorIs(t, err, ErrNotObject)
		require.Len(t, records, 1)
	})

	t.Run("truncated", func(t *testing.T) {
		data := appendRecord(nil, 0, 1)
		_, err := collect(t, MessagePack(bytes.NewReader(data[:len(data)-3])))
		require.Error(t, err)
	})
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path        string
		kind        Kind
		compression string
	}{
		{"stdin", KindJSON, "None"},
		{"-", KindJSON, "None"},
		{"run.json", KindJSON, "None"},
		{"run.jsonl", KindJSON, "None"},
		{"run.ndjson", KindJSON, "None"},
		{"run.mpack", KindMessagePack, "None"},
		{"logs/run.msgpack", KindMessagePack, "None"},
		{"run.jsonl.zst", KindJSON, "Zstd"},
		{"run.mpack.s2", KindMessagePack, "S2"},
		{"run.json.lz4", KindJSON, "LZ4"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, compression, err := Detect(tt.path)
			require.NoError(t, err)
			require.Equal(t, tt.kind, kind)
			require.Equal(t, tt.compression, compression.String())
		})
	}
}

func TestDetect_Unknown(t *testing.T) {
	for _, path := range []string{"run.csv", "run.zst", "run", "run.json.gz"} {
		_, _, err := Detect(path)
		require.ErrorIs(t, err, ErrUnknownFileType)
		require.EqualError(t, err, "unknown file type in '"+path+"'")
	}
}

func writeFile(t *testing.T, name string, wrap func(io.Writer) io.WriteCloser, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	var w io.WriteCloser = nopWriteCloser{f}
	if wrap != nil {
		w = wrap(f)
	}
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return path
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestOpen(t *testing.T) {
	jsonData := []byte("{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n")
	mpackData := appendRecord(appendRecord(appendRecord(nil, 0, 1), 1, 2), 2, 3)

	zstdWriter := func(w io.Writer) io.WriteCloser {
		enc, err := zstd.NewWriter(w)
		require.NoError(t, err)
		return enc
	}
	s2Writer := func(w io.Writer) io.WriteCloser { return s2.NewWriter(w) }
	lz4Writer := func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) }

	tests := []struct {
		name string
		wrap func(io.Writer) io.WriteCloser
		data []byte
		kind Kind
	}{
		{name: "run.jsonl", data: jsonData, kind: KindJSON},
		{name: "run.mpack", data: mpackData, kind: KindMessagePack},
		{name: "run.jsonl.zst", wrap: zstdWriter, data: jsonData, kind: KindJSON},
		{name: "run.msgpack.zst", wrap: zstdWriter, data: mpackData, kind: KindMessagePack},
		{name: "run.json.s2", wrap: s2Writer, data: jsonData, kind: KindJSON},
		{name: "run.mpack.lz4", wrap: lz4Writer, data: mpackData, kind: KindMessagePack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.name, tt.wrap, tt.data)

			f, err := Open(path)
			require.NoError(t, err)
			defer func() { require.NoError(t, f.Close()) }()

			require.Equal(t, tt.kind, f.Kind())
			require.Equal(t, path, f.Path())

			records, err := collect(t, f.Records())
			require.NoError(t, err)
			require.Len(t, records, 3)
		})
	}
}

func TestOpen_Stdin(t *testing.T) {
	f, err := Open("-", WithStdin(strings.NewReader(`{"a":1} {"a":2}`)))
	require.NoError(t, err)
	defer f.Close()

	records, err := collect(t, f.Records())
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open("run.txt")
	require.ErrorIs(t, err, ErrUnknownFileType)

	_, err = Open(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

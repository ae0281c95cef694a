package decode

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/foxplot/foxplot/compress"
	"github.com/foxplot/foxplot/format"
)

// ErrUnknownFileType is returned by Open for an unsupported file name.
var ErrUnknownFileType = errors.New("unknown file type")

// Kind is the record encoding of a file.
type Kind uint8

const (
	KindJSON Kind = iota + 1
	KindMessagePack
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "JSON"
	case KindMessagePack:
		return "MessagePack"
	default:
		return "unknown"
	}
}

// IsStdin reports whether path designates standard input.
func IsStdin(path string) bool {
	return path == "stdin" || path == "-"
}

// Detect returns the record encoding and stream compression implied by path.
func Detect(path string) (Kind, format.CompressionType, error) {
	if IsStdin(path) {
		return KindJSON, format.CompressionNone, nil
	}

	compression, base := format.CompressionFromExtension(path)
	switch {
	case strings.HasSuffix(base, ".json"), strings.HasSuffix(base, ".jsonl"), strings.HasSuffix(base, ".ndjson"):
		return KindJSON, compression, nil
	case strings.HasSuffix(base, ".mpack"), strings.HasSuffix(base, ".msgpack"):
		return KindMessagePack, compression, nil
	default:
		return 0, 0, fmt.Errorf("%w in '%s'", ErrUnknownFileType, path)
	}
}

// File is an opened record source.
type File struct {
	path    string
	kind    Kind
	reader  io.Reader
	closers []io.Closer
	opts    []Option
}

// Open opens path for decoding. The caller must Close the returned File.
//
// Parameters:
//   - path: File name, or "stdin" / "-" for standard input
//   - opts: WithChunkSize, WithStdin
//
// Returns:
//   - *File: Opened source
//   - error: ErrUnknownFileType, an option error or an I/O error
func Open(path string, opts ...Option) (*File, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	kind, compression, err := Detect(path)
	if err != nil {
		return nil, err
	}

	f := &File{path: path, kind: kind, opts: opts}
	if IsStdin(path) {
		f.reader = cfg.stdin
		if f.reader == nil {
			f.reader = os.Stdin
		}

		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	f.closers = append(f.closers, file)

	rc, err := compress.NewReader(file, compression)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	f.closers = append(f.closers, rc)
	f.reader = rc

	return f, nil
}

// Path returns the name the file was opened with.
func (f *File) Path() string {
	return f.path
}

// Kind returns the record encoding of the file.
func (f *File) Kind() Kind {
	return f.kind
}

// Records decodes the file lazily. It can only be consumed once.
func (f *File) Records() iter.Seq2[map[string]any, error] {
	if f.kind == KindMessagePack {
		return MessagePack(f.reader, f.opts...)
	}

	return JSON(f.reader, f.opts...)
}

// Close releases the decompressor and the file, innermost first.
func (f *File) Close() error {
	var errs []error
	for i := len(f.closers) - 1; i >= 0; i-- {
		errs = append(errs, f.closers[i].Close())
	}
	f.closers = nil

	return errors.Join(errs...)
}

package decode

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrNotObject is yielded when a top-level value is neither an object nor null.
var ErrNotObject = errors.New("record is not an object")

// JSON decodes a stream of JSON values separated by optional whitespace,
// which covers both newline-delimited files and plain concatenation. Top-level
// nulls are skipped.
func JSON(r io.Reader, opts ...Option) iter.Seq2[map[string]any, error] {
	return func(yield func(map[string]any, error) bool) {
		cfg, err := newConfig(opts)
		if err != nil {
			yield(nil, err)
			return
		}

		dec := json.NewDecoder(bufio.NewReaderSize(r, cfg.chunkSize))
		for index := 0; ; index++ {
			var value any
			if err := dec.Decode(&value); err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, fmt.Errorf("decode JSON record %d: %w", index, err))
				}
				return
			}

			switch v := value.(type) {
			case nil:
				continue
			case map[string]any:
				if !yield(v, nil) {
					return
				}
			default:
				yield(nil, fmt.Errorf("JSON record %d: %w: got %T", index, ErrNotObject, value))
				return
			}
		}
	}
}

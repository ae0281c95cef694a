package decode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/tinylib/msgp/msgp"
)

// MessagePack decodes a stream of concatenated MessagePack maps, as written by
// mpacklog and similar loggers. Top-level nils are skipped.
//
// Integers decode to int64 or uint64, binary strings to []byte; the tree
// coerces them when materializing series.
func MessagePack(r io.Reader, opts ...Option) iter.Seq2[map[string]any, error] {
	return func(yield func(map[string]any, error) bool) {
		cfg, err := newConfig(opts)
		if err != nil {
			yield(nil, err)
			return
		}

		mr := msgp.NewReader(bufio.NewReaderSize(r, cfg.chunkSize))
		for index := 0; ; index++ {
			value, err := mr.ReadIntf()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, fmt.Errorf("decode MessagePack record %d: %w", index, err))
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
				yield(nil, fmt.Errorf("MessagePack record %d: %w: got %T", index, ErrNotObject, value))
				return
			}
		}
	}
}

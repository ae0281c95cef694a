package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/foxplot/foxplot/compress"
	"github.com/foxplot/foxplot/encoding"
	"github.com/foxplot/foxplot/endian"
	"github.com/foxplot/foxplot/format"
	"github.com/foxplot/foxplot/internal/collision"
	"github.com/foxplot/foxplot/internal/pool"
	"github.com/foxplot/foxplot/series"
)

// Encode serializes a series collection.
//
// Every series must have the same length. Either none of them has a time
// index, or all share the same one, which is stored once.
//
// Parameters:
//   - items: Series to store, in the order they will be read back
//   - opts: WithCompression, WithEncoding, WithBigEndian
//
// Returns:
//   - []byte: Complete snapshot
//   - error: ErrInconsistentSeries, ErrDuplicateLabel or an option error
func Encode(items []*series.Series, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	length, times, ids, err := checkSeries(items)
	if err != nil {
		return nil, err
	}

	header := newHeader(cfg, times != nil)
	header.SeriesCount = uint32(len(items)) //nolint:gosec
	header.Length = uint64(length)          //nolint:gosec
	engine := header.Engine()

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	if times != nil {
		// Times go through the value layout too: regular sampling XORs well.
		column, err := encodeColumn(cfg.encoding, engine, times)
		if err != nil {
			return nil, err
		}
		buf.B = encoding.AppendVarBytes(buf.B, column)
	}

	for i, s := range items {
		column, err := encodeColumn(cfg.encoding, engine, s.Values())
		if err != nil {
			return nil, err
		}
		buf.Grow(8 + binary.MaxVarintLen64*2 + len(s.Label()) + len(column))
		buf.B = engine.AppendUint64(buf.B, ids[i])
		buf.B = encoding.AppendVarString(buf.B, s.Label())
		buf.B = encoding.AppendVarBytes(buf.B, column)
	}
	payload := buf.Bytes()

	codec, err := compress.CreateCodec(cfg.compression, "snapshot")
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot payload: %w", err)
	}

	header.RawSize = uint64(len(payload))        //nolint:gosec
	header.PayloadSize = uint64(len(compressed)) //nolint:gosec

	out := make([]byte, 0, HeaderSize+len(compressed))
	out = append(out, header.Bytes()...)

	return append(out, compressed...), nil
}

// Write encodes items and writes the snapshot to w.
func Write(w io.Writer, items []*series.Series, opts ...Option) error {
	data, err := Encode(items, opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

func encodeColumn(enc format.EncodingType, engine endian.EndianEngine, values []float64) ([]byte, error) {
	encoder, err := encoding.NewFloatEncoder(enc, engine)
	if err != nil {
		return nil, err
	}
	encoder.WriteSlice(values)

	return encoder.Bytes(), nil
}

// checkSeries returns the common length and time index of items, and the
// label ID of each.
func checkSeries(items []*series.Series) (int, []float64, []uint64, error) {
	if len(items) == 0 {
		return 0, nil, nil, nil
	}

	length := items[0].Len()
	times := items[0].Times()
	tracker := collision.NewTracker(len(items))
	ids := make([]uint64, len(items))
	for i, s := range items {
		id, err := tracker.Track(s.Label())
		if err != nil {
			return 0, nil, nil, fmt.Errorf("snapshot: %w: %q", err, s.Label())
		}
		ids[i] = id

		if s.Len() != length {
			return 0, nil, nil, fmt.Errorf("%w: %s has %d samples, expected %d", ErrInconsistentSeries, s.Label(), s.Len(), length)
		}
		if !sameTimes(times, s.Times()) {
			return 0, nil, nil, fmt.Errorf("%w: %s has a different time index", ErrInconsistentSeries, s.Label())
		}
	}

	return length, times, ids, nil
}

func sameTimes(a, b []float64) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}

	return true
}

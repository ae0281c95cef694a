package snapshot

import (
	"fmt"
	"io"

	"github.com/foxplot/foxplot/compress"
	"github.com/foxplot/foxplot/encoding"
	"github.com/foxplot/foxplot/internal/hash"
	"github.com/foxplot/foxplot/series"
)

// Snapshot is a decoded series collection.
type Snapshot struct {
	header Header
	times  []float64
	series []*series.Series
	index  map[uint64]int
}

// Read reads a whole snapshot from r.
func Read(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	return Decode(data)
}

// Decode parses a snapshot produced by Encode.
//
// Parameters:
//   - data: Complete snapshot bytes
//
// Returns:
//   - *Snapshot: Decoded collection
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic, ErrCorrupted or a codec error
func Decode(data []byte) (*Snapshot, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)-HeaderSize) != header.PayloadSize {
		return nil, fmt.Errorf("%w: payload has %d bytes, header says %d", ErrCorrupted, len(data)-HeaderSize, header.PayloadSize)
	}

	codec, err := compress.CreateCodec(header.Compression, "snapshot")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	if uint64(len(payload)) != header.RawSize {
		return nil, fmt.Errorf("%w: payload decompressed to %d bytes, header says %d", ErrCorrupted, len(payload), header.RawSize)
	}

	// Every sample costs at least one bit and every series at least ten bytes.
	if header.Length > 8*uint64(len(payload))+1 || uint64(header.SeriesCount)*10 > uint64(len(payload)) {
		return nil, fmt.Errorf("%w: header counts exceed payload size", ErrCorrupted)
	}

	decoder, err := encoding.NewFloatDecoder(header.Encoding, header.Engine())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	p := &payloadReader{data: payload, decoder: decoder, length: int(header.Length)} //nolint:gosec
	s := &Snapshot{
		header: header,
		series: make([]*series.Series, 0, header.SeriesCount),
		index:  make(map[uint64]int, header.SeriesCount),
	}

	if header.HasTimes() {
		if s.times, err = p.column(); err != nil {
			return nil, err
		}
	}

	engine := header.Engine()
	for i := range int(header.SeriesCount) {
		if len(p.data) < 8 {
			return nil, fmt.Errorf("%w: series %d: %w", ErrCorrupted, i, encoding.ErrTruncated)
		}
		id := engine.Uint64(p.data)
		p.data = p.data[8:]

		label, n, err := encoding.ReadVarString(p.data)
		if err != nil {
			return nil, fmt.Errorf("%w: series %d label: %w", ErrCorrupted, i, err)
		}
		p.data = p.data[n:]
		if hash.ID(label) != id {
			return nil, fmt.Errorf("%w: label hash mismatch for %q", ErrCorrupted, label)
		}

		values, err := p.column()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		item, err := series.NewWithTimes(label, values, s.times)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		s.index[id] = len(s.series)
		s.series = append(s.series, item)
	}

	if len(p.data) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupted, len(p.data))
	}

	return s, nil
}

type payloadReader struct {
	data    []byte
	decoder encoding.ColumnarDecoder[float64]
	length  int
}

func (p *payloadReader) column() ([]float64, error) {
	column, n, err := encoding.ReadVarBytes(p.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	p.data = p.data[n:]

	values, err := encoding.DecodeFloats(p.decoder, column, p.length)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	return values, nil
}

// Header returns the parsed snapshot header.
func (s *Snapshot) Header() Header {
	return s.header
}

// Len returns the number of samples per series.
func (s *Snapshot) Len() int {
	return int(s.header.Length) //nolint:gosec
}

// Times returns a copy of the shared time index, or nil.
func (s *Snapshot) Times() []float64 {
	if s.times == nil {
		return nil
	}

	return append([]float64(nil), s.times...)
}

// Series returns the stored series in write order.
func (s *Snapshot) Series() []*series.Series {
	return append([]*series.Series(nil), s.series...)
}

// Labels returns the labels of the stored series in write order.
func (s *Snapshot) Labels() []string {
	labels := make([]string, len(s.series))
	for i, item := range s.series {
		labels[i] = item.Label()
	}

	return labels
}

// Lookup returns the series stored under label.
func (s *Snapshot) Lookup(label string) (*series.Series, bool) {
	i, ok := s.index[hash.ID(label)]
	if !ok || s.series[i].Label() != label {
		return nil, false
	}

	return s.series[i], true
}

package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/foxplot/foxplot/endian"
	"github.com/foxplot/foxplot/format"
)

const (
	// HeaderSize is the fixed size of the snapshot header in bytes.
	HeaderSize = 32

	// MagicV1 occupies bits 4-15 of the flags.
	MagicV1 = 0xF0C0

	magicMask      = 0xFFF0
	flagBigEndian  = 0x0001
	flagHasTimes   = 0x0002
	flagsKnownMask = magicMask | flagBigEndian | flagHasTimes
)

// Header is the fixed-size section at the start of a snapshot.
type Header struct {
	Flags       uint16
	Encoding    format.EncodingType
	Compression format.CompressionType
	SeriesCount uint32
	Length      uint64
	PayloadSize uint64
	RawSize     uint64
}

func newHeader(cfg *config, hasTimes bool) Header {
	h := Header{
		Flags:       MagicV1,
		Encoding:    cfg.encoding,
		Compression: cfg.compression,
	}
	if cfg.bigEndian {
		h.Flags |= flagBigEndian
	}
	if hasTimes {
		h.Flags |= flagHasTimes
	}

	return h
}

// BigEndian reports whether numbers after the flags are big-endian.
func (h Header) BigEndian() bool {
	return h.Flags&flagBigEndian != 0
}

// HasTimes reports whether the payload starts with a time column.
func (h Header) HasTimes() bool {
	return h.Flags&flagHasTimes != 0
}

// Engine returns the byte order of the snapshot.
func (h Header) Engine() endian.EndianEngine {
	return endian.GetEngine(h.BigEndian())
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Engine()

	binary.LittleEndian.PutUint16(b[0:2], h.Flags)
	b[2] = uint8(h.Encoding)
	b[3] = uint8(h.Compression)
	engine.PutUint32(b[4:8], h.SeriesCount)
	engine.PutUint64(b[8:16], h.Length)
	engine.PutUint64(b[16:24], h.PayloadSize)
	engine.PutUint64(b[24:32], h.RawSize)

	return b
}

// ParseHeader parses and validates a header.
//
// Parameters:
//   - data: At least HeaderSize bytes
//
// Returns:
//   - Header: Parsed header
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic or ErrCorrupted
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrInvalidHeaderSize, len(data))
	}

	h := Header{Flags: binary.LittleEndian.Uint16(data[0:2])}
	if h.Flags&magicMask != MagicV1 {
		return Header{}, fmt.Errorf("%w: 0x%04x", ErrInvalidMagic, h.Flags&magicMask)
	}
	if h.Flags&^flagsKnownMask != 0 {
		return Header{}, fmt.Errorf("%w: unknown flags 0x%04x", ErrCorrupted, h.Flags)
	}

	h.Encoding = format.EncodingType(data[2])
	h.Compression = format.CompressionType(data[3])
	engine := h.Engine()
	h.SeriesCount = engine.Uint32(data[4:8])
	h.Length = engine.Uint64(data[8:16])
	h.PayloadSize = engine.Uint64(data[16:24])
	h.RawSize = engine.Uint64(data[24:32])

	return h, nil
}

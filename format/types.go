// Package format holds the enumerations shared by the snapshot writer, the
// snapshot reader and the compression codecs.
package format

import (
	"fmt"
	"strings"
)

type (
	// EncodingType identifies how a float64 column is laid out in a snapshot.
	EncodingType uint8
	// CompressionType identifies the block codec applied to a snapshot payload
	// or the stream codec of a compressed input file.
	CompressionType uint8
)

const (
	TypeRaw     EncodingType = 0x1 // TypeRaw stores every sample as 8 bytes.
	TypeGorilla EncodingType = 0x3 // TypeGorilla stores XOR deltas against the previous sample.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeGorilla:
		return "Gorilla"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix of a stream compressed with c,
// or "" for CompressionNone.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression parses a case-insensitive codec name: none, zstd, s2 or lz4.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (expected none, zstd, s2 or lz4)", name)
	}
}

// CompressionFromExtension splits a known compression suffix off path.
// It returns CompressionNone and path unchanged when there is none.
func CompressionFromExtension(path string) (CompressionType, string) {
	for _, c := range []CompressionType{CompressionZstd, CompressionS2, CompressionLZ4} {
		if ext := c.Extension(); strings.HasSuffix(path, ext) {
			return c, strings.TrimSuffix(path, ext)
		}
	}

	return CompressionNone, path
}

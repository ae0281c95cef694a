// Package snapshot stores a frozen series collection in a single binary file,
// so that a large recording can be decoded and forward-filled once and then
// plotted many times.
//
// # Layout
//
//	+--------------------+ 0
//	| Header (32 bytes)  |
//	+--------------------+ 32
//	| Payload            |  compressed with Header.Compression
//	+--------------------+
//
// The header is:
//
//	offset  size  field
//	0       2     flags: magic (bits 4-15), big endian (bit 0), has times (bit 1), always little-endian
//	2       1     value encoding (format.EncodingType)
//	3       1     payload compression (format.CompressionType)
//	4       4     series count
//	8       8     samples per series
//	16      8     payload size as stored
//	24      8     payload size after decompression
//
// Once decompressed, the payload holds the shared time column when the flags
// say so, followed by one entry per series:
//
//	uint64    xxHash64 of the label
//	varstring label
//	varbytes  encoded value column
//
// Columns use the value encoding of the header; every column has the same
// number of samples.
package snapshot

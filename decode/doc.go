// Package decode turns recorded files into streams of records.
//
// A record is one decoded JSON object or MessagePack map, typically the
// observation and action dictionaries of one control step. Records are
// produced lazily as iter.Seq2[map[string]any, error]: a decoding error is
// yielded once and ends the stream.
//
// Open picks the decoder from the file name:
//
//	stdin, -            JSON on standard input
//	*.json, *.jsonl     concatenated or newline-delimited JSON
//	*.ndjson            newline-delimited JSON
//	*.mpack, *.msgpack  concatenated MessagePack maps
//
// Any of these may carry an extra .zst, .s2 or .lz4 suffix, in which case the
// file is decompressed while it is read.
package decode

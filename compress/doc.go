// Package compress provides the codecs foxplot uses on both ends of its data
// path: block codecs that shrink snapshot payloads, and stream readers that
// decompress recorded inputs such as "run.mpack.zst" on the fly.
//
// Four algorithms are supported, identified by format.CompressionType:
//   - None: payload stored as is
//   - Zstd: best ratio, the default for snapshots
//   - S2: fast with a good ratio
//   - LZ4: fastest decompression
//
// Block and stream formats differ: a block produced by Compress carries no
// framing and is only readable by Decompress of the same codec, while NewReader
// expects the framed stream format written by the reference command line tools
// (zstd, s2c, lz4).
//
// Zstd blocks use the pure Go klauspost/compress implementation unless the
// binary is built with cgo and the gozstd tag, in which case the C library is
// linked through valyala/gozstd. Both produce standard zstd frames.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Compress(raw)
//
//	rc, err := compress.NewReader(file, format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
package compress

// Package encoding implements the column encodings of foxplot snapshots.
//
// A snapshot stores every frozen series as a float64 column. Two layouts are
// available, selected per snapshot with format.EncodingType:
//
//   - Raw: 8 bytes per sample in the snapshot byte order
//   - Gorilla: XOR against the previous sample, as described in
//     https://www.vldb.org/pvldb/vol8/p1816-teller.pdf
//
// Forward-filled series are dominated by repeated samples, which Gorilla stores
// in a single bit each. Raw is kept for debugging and for columns of noisy
// sensor data where Gorilla does not pay off.
//
// Labels are stored with VarString helpers: a uvarint byte length followed by
// the UTF-8 bytes.
package encoding

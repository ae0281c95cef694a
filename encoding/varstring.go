package encoding

import (
	"encoding/binary"
	"fmt"
)

// MaxStringLength bounds decoded string lengths so that a corrupted length
// prefix cannot trigger a huge allocation.
const MaxStringLength = 1 << 20

// AppendVarString appends s with a uvarint length prefix.
func AppendVarString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// AppendVarBytes appends b with a uvarint length prefix.
func AppendVarBytes(dst, b []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(b)))
	return append(dst, b...)
}

// ReadVarBytes reads a uvarint length-prefixed byte slice from data.
//
// Returns:
//   - []byte: The payload, aliasing data
//   - int: Number of bytes consumed, prefix included
//   - error: ErrTruncated if data ends early
func ReadVarBytes(data []byte) ([]byte, int, error) {
	length, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid length prefix", ErrTruncated)
	}
	if length > uint64(len(data)-n) {
		return nil, 0, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, length, len(data)-n)
	}
	end := n + int(length) //nolint:gosec

	return data[n:end], end, nil
}

// ReadVarString reads a string written by AppendVarString.
func ReadVarString(data []byte) (string, int, error) {
	b, n, err := ReadVarBytes(data)
	if err != nil {
		return "", 0, err
	}
	if len(b) > MaxStringLength {
		return "", 0, fmt.Errorf("string length %d exceeds maximum %d", len(b), MaxStringLength)
	}

	return string(b), n, nil
}

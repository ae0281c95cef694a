// Package endian selects the byte order of snapshot headers and raw columns.
//
// It combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into EndianEngine, so that encoders can both append and read with one value:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, bits)
//	bits = engine.Uint64(buf)
//
// Snapshots are little-endian unless written with snapshot.WithBigEndian. The
// order is recorded in the snapshot header, so readers never have to guess.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the big-endian engine when big is true, the little-endian
// one otherwise.
func GetEngine(big bool) EndianEngine {
	if big {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var word [2]byte
	engine.PutUint16(word[:], 0x0100)

	return word[0] == 0x01
}

// NativeEngine returns the byte order of the host.
func NativeEngine() EndianEngine {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Package endian provides the byte order engine used to read DL containers.
//
// DL files are strictly little-endian regardless of host byte order, so the
// decoder packages always use GetLittleEndianEngine. The engine interface
// combines ByteOrder and AppendByteOrder from encoding/binary so the same
// value serves both fixed-offset reads and append-style test fixtures.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary. binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine for the DL on-disk byte order.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. The DL format never uses
// it; it exists for byte-swap verification in tests.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// CheckEndianness determines the host's native byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host matches the DL byte order.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// Package endian provides byte order utilities for blob framing.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface, satisfied by
// binary.LittleEndian and binary.BigEndian, so encoders can both read fixed
// offsets and append without temporary buffers. The returned engines are
// immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines read/write and append byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native returns the host machine's byte order, probed through a fixed
// integer value.
func Native() binary.ByteOrder {
	var probe uint16 = 0x0100

	// The first byte in memory is the MSB on a big-endian host.
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return Native() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine, the default for
// visionbuf blobs.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

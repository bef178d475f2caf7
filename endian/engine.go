// Package endian provides byte order utilities for typed array element access.
//
// It combines the ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single EndianEngine interface so that element readers and writers can
// use one value for both fixed-offset access and append-style serialization.
//
// Array payloads in numcodec are always stored little-endian; Little is the
// engine used throughout the ndarray package. NativeIsLittle reports when the
// host order agrees, so serialization can degrade to a plain memory copy.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian engine used for numcodec array payloads.
func Little() EndianEngine {
	return binary.LittleEndian
}

// Big returns the big-endian engine.
func Big() EndianEngine {
	return binary.BigEndian
}

// NativeIsLittle reports whether the host is little-endian, which lets callers
// reinterpret typed slices as raw bytes without an element-wise conversion.
func NativeIsLittle() bool {
	// 0x0100 is 256. On a little-endian host the low byte (0x00) comes first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	return b[0] == 0x00
}

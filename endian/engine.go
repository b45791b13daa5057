// Package endian provides the byte order engines used to read and write
// dataset bodies.
//
// A dataset footer records whether the body is little- or big-endian. The
// container picks the matching EndianEngine once at load time and every
// typed view decodes multi-byte fields through it, so no view ever has to
// consult the footer again.
//
// # Basic Usage
//
//	engine := endian.ForBigEndian(footer.IsBigEndian())
//	lid := engine.Uint16(record[0:2])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian, so
// readers use Uint16/Uint32 while the dataset builder appends with
// AppendUint16/AppendUint32 on the same engine.
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

// ForBigEndian returns the big-endian engine when bigEndian is true and the
// little-endian engine otherwise.
func ForBigEndian(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x01
}

// IsNativeLittleEndian reports whether the host stores integers least significant byte first.
func IsNativeLittleEndian() bool {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	return b[0] == 0x00
}

// Name returns "little" or "big" for display.
func Name(engine EndianEngine) string {
	if IsBigEndian(engine) {
		return "big"
	}

	return "little"
}

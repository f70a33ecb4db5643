// Package buf contains bounds-checked, endian-explicit decoding helpers for
// the device tree blob. Every multi-byte field in a DTB is big-endian; these
// helpers never depend on the host byte order.
package buf

import "encoding/binary"

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// U32At reads the big-endian uint32 at b[off:off+4].
// ok is false when the word does not fit inside b.
func U32At(b []byte, off int) (uint32, bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(s), true
}

// CellAt reads the idx-th 32-bit cell of a property value.
func CellAt(b []byte, idx int) (uint32, bool) {
	off, ok := MulOverflowSafe(idx, 4)
	if !ok {
		return 0, false
	}
	return U32At(b, off)
}

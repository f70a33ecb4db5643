package format

import (
	"fmt"

	"github.com/joshuapare/fdtkit/internal/buf"
)

// Header mirrors struct fdt_header. The diagram below shows the layout of a
// version 17 header; every field is a big-endian uint32.
//
//	Offset  Field
//	------  -----------------------------------------------
//	 0x00   magic              0xD00DFEED
//	 0x04   totalsize          size of the whole blob
//	 0x08   off_dt_struct      structure block, from blob start
//	 0x0C   off_dt_strings     strings block, from blob start
//	 0x10   off_mem_rsvmap     memory reservation block, from blob start
//	 0x14   version            17
//	 0x18   last_comp_version  16 for version 17 blobs
//	 0x1C   boot_cpuid_phys
//	 0x20   size_dt_strings
//	 0x24   size_dt_struct
type Header struct {
	Magic           uint32
	TotalSize       uint32
	OffDtStruct     uint32
	OffDtStrings    uint32
	OffMemRsvmap    uint32
	Version         uint32
	LastCompVersion uint32
	BootCPUIDPhys   uint32
	SizeDtStrings   uint32
	SizeDtStruct    uint32
}

// ParseHeader validates and extracts the header fields from the start of b.
// The magic is checked before the version so a non-DTB input always reports
// ErrSignatureMismatch.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("fdt header: %w", ErrTruncated)
	}
	h := Header{
		Magic:           buf.U32BE(b[HeaderMagicOffset:]),
		TotalSize:       buf.U32BE(b[HeaderTotalSizeOffset:]),
		OffDtStruct:     buf.U32BE(b[HeaderOffDtStructOffset:]),
		OffDtStrings:    buf.U32BE(b[HeaderOffDtStringsOffset:]),
		OffMemRsvmap:    buf.U32BE(b[HeaderOffMemRsvmapOffset:]),
		Version:         buf.U32BE(b[HeaderVersionOffset:]),
		LastCompVersion: buf.U32BE(b[HeaderLastCompVersionOffset:]),
		BootCPUIDPhys:   buf.U32BE(b[HeaderBootCPUIDPhysOffset:]),
		SizeDtStrings:   buf.U32BE(b[HeaderSizeDtStringsOffset:]),
		SizeDtStruct:    buf.U32BE(b[HeaderSizeDtStructOffset:]),
	}
	if h.Magic != Magic {
		return Header{}, fmt.Errorf("fdt header: magic 0x%08X: %w", h.Magic, ErrSignatureMismatch)
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("fdt header: version %d: %w", h.Version, ErrUnsupportedVersion)
	}
	if int64(h.TotalSize) < HeaderSize || int64(h.TotalSize) > int64(len(b)) {
		return Header{}, fmt.Errorf("fdt header: totalsize %d with %d bytes available: %w",
			h.TotalSize, len(b), ErrTruncated)
	}
	return h, nil
}

// Blocks holds the three sub-blocks of a blob as sub-slices of the input.
// Reserve runs from off_mem_rsvmap to the end of the blob because the
// reservation map carries no size field of its own.
type Blocks struct {
	Reserve []byte
	Struct  []byte
	Strings []byte
}

// Blocks computes the absolute sub-block slices of b, checking each against
// totalsize.
func (h Header) Blocks(b []byte) (Blocks, error) {
	total := int(h.TotalSize)
	if total > len(b) {
		return Blocks{}, fmt.Errorf("fdt blocks: %w", ErrTruncated)
	}
	b = b[:total]

	structEnd, err := buf.CheckBlock(total, int(h.OffDtStruct), int(h.SizeDtStruct))
	if err != nil {
		return Blocks{}, fmt.Errorf("structure block: %v: %w", err, ErrBadOffset)
	}
	stringsEnd, err := buf.CheckBlock(total, int(h.OffDtStrings), int(h.SizeDtStrings))
	if err != nil {
		return Blocks{}, fmt.Errorf("strings block: %v: %w", err, ErrBadOffset)
	}
	if _, err := buf.CheckBlock(total, int(h.OffMemRsvmap), ReserveEntrySize); err != nil {
		return Blocks{}, fmt.Errorf("reservation block: %v: %w", err, ErrBadOffset)
	}

	return Blocks{
		Reserve: b[h.OffMemRsvmap:],
		Struct:  b[h.OffDtStruct:structEnd],
		Strings: b[h.OffDtStrings:stringsEnd],
	}, nil
}

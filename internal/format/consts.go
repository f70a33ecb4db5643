// Package format houses low-level decoders for the Flattened Device Tree
// (DTB) blob format, Devicetree Specification v0.3 chapter 5. The goal is to
// keep the parsing focused, allocation-light, and independent from the public
// API so higher-level packages can orchestrate the data in a more ergonomic
// form.
package format

const (
	// Magic is the big-endian value stored in the first header word.
	Magic = 0xD00DFEED

	// Version is the only blob version this decoder accepts.
	Version = 17
)

// Token is a structure block tag. Every token is a big-endian uint32 aligned
// on a 4-byte boundary.
type Token uint32

const (
	TokenBeginNode Token = 0x1 // followed by the NUL-terminated unit name, padded to 4
	TokenEndNode   Token = 0x2
	TokenProp      Token = 0x3 // followed by len, nameoff, value padded to 4
	TokenNop       Token = 0x4
	TokenEnd       Token = 0x9
)

// String implements fmt.Stringer.
func (t Token) String() string {
	switch t {
	case TokenBeginNode:
		return "FDT_BEGIN_NODE"
	case TokenEndNode:
		return "FDT_END_NODE"
	case TokenProp:
		return "FDT_PROP"
	case TokenNop:
		return "FDT_NOP"
	case TokenEnd:
		return "FDT_END"
	default:
		return "FDT_UNKNOWN"
	}
}

// ============================================================================
// Header Constants
// ============================================================================
// Field offsets within struct fdt_header. All fields are big-endian uint32.
const (
	HeaderMagicOffset           = 0x00
	HeaderTotalSizeOffset       = 0x04
	HeaderOffDtStructOffset     = 0x08
	HeaderOffDtStringsOffset    = 0x0C
	HeaderOffMemRsvmapOffset    = 0x10
	HeaderVersionOffset         = 0x14
	HeaderLastCompVersionOffset = 0x18
	HeaderBootCPUIDPhysOffset   = 0x1C
	HeaderSizeDtStringsOffset   = 0x20
	HeaderSizeDtStructOffset    = 0x24

	// HeaderSize is the size of a version 17 header in bytes.
	HeaderSize = 0x28
)

// ============================================================================
// Structure Block Constants
// ============================================================================.
const (
	// TokenSize is the size of a structure block tag.
	TokenSize = 4

	// PropHeaderSize is the tag-relative size of a PROP token header:
	// tag, len and nameoff.
	PropHeaderSize = 12

	// CellSize is the size of one cell (a big-endian uint32).
	CellSize = 4

	// ReserveEntrySize is the size of one memory reservation pair
	// (address uint64, size uint64).
	ReserveEntrySize = 16
)

// ============================================================================
// Cells Defaults
// ============================================================================
// Values a node reports for #address-cells, #size-cells and #interrupt-cells
// when it does not carry the property itself.
const (
	DefaultAddressCells   = 2
	DefaultSizeCells      = 2
	DefaultInterruptCells = 0
)

// ============================================================================
// Well-known Property Names
// ============================================================================.
const (
	PropAddressCells    = "#address-cells"
	PropSizeCells       = "#size-cells"
	PropInterruptCells  = "#interrupt-cells"
	PropPhandle         = "phandle"
	PropInterruptParent = "interrupt-parent"
	PropCompatible      = "compatible"
	PropReg             = "reg"
	PropRanges          = "ranges"
	PropInterrupts      = "interrupts"
)

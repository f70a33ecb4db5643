package format

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// minimalBlob lays out header, an empty reservation map, a structure block
// holding only the root node, and a one-entry strings block.
func minimalBlob() []byte {
	structBlk := []byte{
		0, 0, 0, 1, 0, 0, 0, 0, // BEGIN_NODE ""
		0, 0, 0, 2, // END_NODE
		0, 0, 0, 9, // END
	}
	stringsBlk := []byte("model\x00")

	rsvOff := HeaderSize
	structOff := rsvOff + ReserveEntrySize
	stringsOff := structOff + len(structBlk)
	total := stringsOff + len(stringsBlk)

	b := make([]byte, total)
	be := binary.BigEndian
	be.PutUint32(b[HeaderMagicOffset:], Magic)
	be.PutUint32(b[HeaderTotalSizeOffset:], uint32(total))
	be.PutUint32(b[HeaderOffDtStructOffset:], uint32(structOff))
	be.PutUint32(b[HeaderOffDtStringsOffset:], uint32(stringsOff))
	be.PutUint32(b[HeaderOffMemRsvmapOffset:], uint32(rsvOff))
	be.PutUint32(b[HeaderVersionOffset:], Version)
	be.PutUint32(b[HeaderLastCompVersionOffset:], 16)
	be.PutUint32(b[HeaderSizeDtStringsOffset:], uint32(len(stringsBlk)))
	be.PutUint32(b[HeaderSizeDtStructOffset:], uint32(len(structBlk)))
	copy(b[structOff:], structBlk)
	copy(b[stringsOff:], stringsBlk)
	return b
}

func TestParseHeaderSuccess(t *testing.T) {
	b := minimalBlob()
	hdr, err := ParseHeader(b)
	require.NoError(t, err)
	require.Equal(t, uint32(Magic), hdr.Magic)
	require.Equal(t, uint32(Version), hdr.Version)
	require.Equal(t, uint32(len(b)), hdr.TotalSize)
	require.Equal(t, uint32(HeaderSize), hdr.OffMemRsvmap)

	blocks, err := hdr.Blocks(b)
	require.NoError(t, err)
	require.Len(t, blocks.Struct, 16)
	require.Equal(t, []byte("model\x00"), blocks.Strings)
	require.Equal(t, binary.BigEndian.Uint32(blocks.Struct), uint32(TokenBeginNode))
}

func TestParseHeaderErrors(t *testing.T) {
	b := minimalBlob()

	_, err := ParseHeader(b[:10])
	require.ErrorIs(t, err, ErrTruncated)

	bad := append([]byte(nil), b...)
	binary.BigEndian.PutUint32(bad[HeaderMagicOffset:], 0xFEEDD00D)
	_, err = ParseHeader(bad)
	require.ErrorIs(t, err, ErrSignatureMismatch)

	bad = append([]byte(nil), b...)
	binary.BigEndian.PutUint32(bad[HeaderVersionOffset:], 16)
	_, err = ParseHeader(bad)
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	bad = append([]byte(nil), b...)
	binary.BigEndian.PutUint32(bad[HeaderTotalSizeOffset:], uint32(len(b)+1))
	_, err = ParseHeader(bad)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestBlocksOutOfRange(t *testing.T) {
	b := minimalBlob()
	hdr, err := ParseHeader(b)
	require.NoError(t, err)

	hdr.SizeDtStruct = hdr.TotalSize
	_, err = hdr.Blocks(b)
	require.ErrorIs(t, err, ErrBadOffset)
}

func TestReadReservations(t *testing.T) {
	entries, err := ReadReservations(make([]byte, ReserveEntrySize))
	require.NoError(t, err)
	require.Empty(t, entries)

	b := make([]byte, 2*ReserveEntrySize)
	binary.BigEndian.PutUint64(b[0:], 0x80000000)
	binary.BigEndian.PutUint64(b[8:], 0x1000)
	entries, err = ReadReservations(b)
	require.NoError(t, err)
	require.Equal(t, []ReserveEntry{{Address: 0x80000000, Size: 0x1000}}, entries)

	_, err = ReadReservations(b[:ReserveEntrySize+4])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestCString(t *testing.T) {
	strs := []byte("reg\x00compatible\x00")
	s, err := CString(strs, 4)
	require.NoError(t, err)
	require.Equal(t, "compatible", string(s))

	_, err = CString(strs, len(strs))
	require.ErrorIs(t, err, ErrBadOffset)

	_, err = CString([]byte("abc"), 0)
	require.ErrorIs(t, err, ErrUnterminated)
}

func TestSplitStrings(t *testing.T) {
	got := SplitStrings([]byte("sifive,test1\x00sifive,test0\x00syscon\x00"))
	require.Len(t, got, 3)
	require.Equal(t, "syscon", string(got[2]))

	require.Empty(t, SplitStrings(nil))
	require.Equal(t, [][]byte{[]byte("x")}, SplitStrings([]byte("x")))
}

func TestFormatOf(t *testing.T) {
	require.Equal(t, FmtReg, FormatOf("reg"))
	require.Equal(t, FmtPhandle, FormatOf("interrupt-parent"))
	require.Equal(t, FmtStringList, FormatOf("compatible"))
	require.Equal(t, FmtUnknown, FormatOf("riscv,isa"))
	require.Equal(t, "ranges", FmtRanges.String())
	require.Equal(t, "FDT_PROP", TokenProp.String())
}

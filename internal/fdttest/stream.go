package fdttest

import (
	"encoding/binary"

	"github.com/joshuapare/fdtkit/internal/buf"
	"github.com/joshuapare/fdtkit/internal/format"
)

// Strings is a strings block under construction. Names are deduplicated.
type Strings struct {
	b   []byte
	off map[string]uint32
}

// Offset returns the offset of name, appending it on first use.
func (s *Strings) Offset(name string) uint32 {
	if s.off == nil {
		s.off = make(map[string]uint32)
	}
	if off, ok := s.off[name]; ok {
		return off
	}
	off := uint32(len(s.b))
	s.b = append(s.b, name...)
	s.b = append(s.b, 0)
	s.off[name] = off
	return off
}

// Bytes returns the block contents.
func (s *Strings) Bytes() []byte { return s.b }

// Stream is a structure block under construction. Methods append one token
// each and return the stream for chaining; nothing is validated.
type Stream struct {
	b       []byte
	Strings Strings
}

// NewStream returns an empty stream.
func NewStream() *Stream { return &Stream{} }

// Word appends a raw big-endian word.
func (s *Stream) Word(v uint32) *Stream {
	s.b = binary.BigEndian.AppendUint32(s.b, v)
	return s
}

// BeginNode appends FDT_BEGIN_NODE and the padded name.
func (s *Stream) BeginNode(name string) *Stream {
	s.Word(uint32(format.TokenBeginNode))
	s.b = append(s.b, name...)
	s.b = append(s.b, 0)
	s.pad()
	return s
}

// EndNode appends FDT_END_NODE.
func (s *Stream) EndNode() *Stream { return s.Word(uint32(format.TokenEndNode)) }

// Nop appends FDT_NOP.
func (s *Stream) Nop() *Stream { return s.Word(uint32(format.TokenNop)) }

// End appends FDT_END.
func (s *Stream) End() *Stream { return s.Word(uint32(format.TokenEnd)) }

// Prop appends FDT_PROP with the padded value.
func (s *Stream) Prop(name string, val []byte) *Stream {
	return s.PropAt(s.Strings.Offset(name), val)
}

// PropAt appends FDT_PROP with an explicit name offset, which may be invalid.
func (s *Stream) PropAt(nameOff uint32, val []byte) *Stream {
	s.Word(uint32(format.TokenProp))
	s.Word(uint32(len(val)))
	s.Word(nameOff)
	s.b = append(s.b, val...)
	s.pad()
	return s
}

// Bytes returns the structure block contents.
func (s *Stream) Bytes() []byte { return s.b }

// Blob wraps the stream in a version 17 blob with an empty reservation map.
func (s *Stream) Blob() []byte { return Assemble(s.b, s.Strings.Bytes(), nil) }

func (s *Stream) pad() {
	for len(s.b)%4 != 0 {
		s.b = append(s.b, 0)
	}
}

// Assemble lays out header, reservation map, structure block and strings
// block, in that order, and fills in every header field.
func Assemble(structBlk, stringsBlk []byte, rsv []format.ReserveEntry) []byte {
	rsvOff := format.HeaderSize
	rsvLen := (len(rsv) + 1) * format.ReserveEntrySize
	structOff := buf.Align4(rsvOff + rsvLen)
	stringsOff := structOff + len(structBlk)
	total := stringsOff + len(stringsBlk)

	b := make([]byte, total)
	be := binary.BigEndian
	be.PutUint32(b[format.HeaderMagicOffset:], format.Magic)
	be.PutUint32(b[format.HeaderTotalSizeOffset:], uint32(total))
	be.PutUint32(b[format.HeaderOffDtStructOffset:], uint32(structOff))
	be.PutUint32(b[format.HeaderOffDtStringsOffset:], uint32(stringsOff))
	be.PutUint32(b[format.HeaderOffMemRsvmapOffset:], uint32(rsvOff))
	be.PutUint32(b[format.HeaderVersionOffset:], format.Version)
	be.PutUint32(b[format.HeaderLastCompVersionOffset:], 16)
	be.PutUint32(b[format.HeaderSizeDtStringsOffset:], uint32(len(stringsBlk)))
	be.PutUint32(b[format.HeaderSizeDtStructOffset:], uint32(len(structBlk)))

	for i, e := range rsv {
		off := rsvOff + i*format.ReserveEntrySize
		be.PutUint64(b[off:], e.Address)
		be.PutUint64(b[off+8:], e.Size)
	}
	copy(b[structOff:], structBlk)
	copy(b[stringsOff:], stringsBlk)
	return b
}

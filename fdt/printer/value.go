package printer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/internal/buf"
	"github.com/joshuapare/fdtkit/internal/format"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// value is a property value decoded for display.
type value struct {
	format format.PropFormat

	strs   []string
	cells  []uint32
	regs   []fdt.MemRange
	ranges []fdt.Range

	// target is the path a phandle resolves to, empty when unresolved.
	target string

	// raw is the displayed prefix of an opaque value; total its full length.
	raw   []byte
	total int
}

// decode classifies and decodes prop of node id. Well-known names use their
// registered format; anything else is guessed from the bytes. Values that do
// not decode in their registered format fall back to the guess.
func (p *Printer) decode(id types.NodeID, prop fdt.Property) value {
	f := format.FormatOf(prop.Name)
	switch f {
	case format.FmtEmpty:
		if len(prop.Data) == 0 {
			return value{format: f}
		}

	case format.FmtString, format.FmtStringList:
		if isStringList(prop.Data) {
			return value{format: f, strs: decodeStrings(prop.Data)}
		}

	case format.FmtU32, format.FmtU64:
		if len(prop.Data) > 0 && len(prop.Data)%format.CellSize == 0 {
			return value{format: f, cells: prop.Cells()}
		}

	case format.FmtPhandle:
		if ph, err := prop.U32(); err == nil {
			v := value{format: f, cells: []uint32{ph}}
			if target, ok := p.tree.Phandle(ph); ok {
				v.target = p.tree.PathString(target)
			}
			return v
		}

	case format.FmtReg:
		if regs, err := p.tree.Regs(id); err == nil {
			return value{format: f, regs: regs}
		}

	case format.FmtRanges:
		if ranges, err := p.tree.Ranges(id); err == nil {
			return value{format: f, ranges: ranges}
		}
	}
	return p.guess(prop.Data)
}

func (p *Printer) guess(b []byte) value {
	switch {
	case len(b) == 0:
		return value{format: format.FmtEmpty}
	case isStringList(b):
		return value{format: format.FmtStringList, strs: decodeStrings(b)}
	case len(b)%format.CellSize == 0:
		cells := make([]uint32, 0, len(b)/format.CellSize)
		for i := 0; i+format.CellSize <= len(b); i += format.CellSize {
			cells = append(cells, buf.U32BE(b[i:]))
		}
		return value{format: format.FmtU32, cells: cells}
	}

	n := len(b)
	if p.opts.MaxValueBytes > 0 {
		n = min(n, p.opts.MaxValueBytes)
	}
	return value{format: format.FmtUnknown, raw: b[:n], total: len(b)}
}

// text renders v in dts syntax. An empty result means a boolean property.
func (v value) text() string {
	var sb strings.Builder
	switch {
	case v.strs != nil:
		for i, s := range v.strs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(s))
		}

	case v.regs != nil:
		for i, r := range v.regs {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "<0x%x 0x%x>", r.Addr, r.Len)
		}

	case v.ranges != nil:
		for i, r := range v.ranges {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "<0x%x 0x%x 0x%x>", r.Child, r.Parent, r.Len)
		}

	case v.format == format.FmtPhandle && v.target != "":
		fmt.Fprintf(&sb, "<&%s>", v.target)

	case v.cells != nil:
		sb.WriteByte('<')
		for i, c := range v.cells {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "0x%x", c)
		}
		sb.WriteByte('>')

	case v.raw != nil:
		sb.WriteByte('[')
		for i, b := range v.raw {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%02x", b)
		}
		sb.WriteByte(']')
		if v.total > len(v.raw) {
			fmt.Fprintf(&sb, " /* truncated, %d total bytes */", v.total)
		}
	}
	return sb.String()
}

// data returns v in a form suited to structured encoders.
func (v value) data() any {
	switch {
	case v.strs != nil:
		if len(v.strs) == 1 {
			return v.strs[0]
		}
		return v.strs
	case v.regs != nil:
		return v.regs
	case v.ranges != nil:
		return v.ranges
	case v.format == format.FmtPhandle && v.target != "":
		return v.target
	case v.cells != nil:
		if len(v.cells) == 1 {
			return v.cells[0]
		}
		return v.cells
	case v.raw != nil:
		s := hex.EncodeToString(v.raw)
		if v.total > len(v.raw) {
			s += fmt.Sprintf(" (truncated, %d total bytes)", v.total)
		}
		return s
	}
	return nil
}

// isStringList reports whether b looks like one or more NUL-terminated,
// non-empty strings of printable characters.
func isStringList(b []byte) bool {
	if len(b) == 0 || b[len(b)-1] != 0 || b[0] == 0 {
		return false
	}
	for i, c := range b {
		switch {
		case c == 0:
			if i > 0 && b[i-1] == 0 {
				return false
			}
		case c < 0x20 && c != '\t' && c != '\n', c == 0x7f:
			return false
		}
	}
	return true
}

// decodeStrings splits a stringlist. Bytes that are not valid UTF-8 are read
// as ISO-8859-1, the superset of ASCII firmware tends to emit.
func decodeStrings(b []byte) []string {
	parts := format.SplitStrings(b)
	out := make([]string, len(parts))
	for i, s := range parts {
		out[i] = decodeString(s)
	}
	return out
}

func decodeString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

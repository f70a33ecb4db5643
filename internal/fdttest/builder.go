package fdttest

import (
	"encoding/binary"

	"github.com/joshuapare/fdtkit/internal/format"
)

// Prop is a property with an already encoded value.
type Prop struct {
	Name  string
	Value []byte
}

// U32 encodes each value as one cell.
func U32(name string, vals ...uint32) Prop {
	var b []byte
	for _, v := range vals {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	return Prop{Name: name, Value: b}
}

// U64 encodes each value as two cells, high word first.
func U64(name string, vals ...uint64) Prop {
	var b []byte
	for _, v := range vals {
		b = binary.BigEndian.AppendUint64(b, v)
	}
	return Prop{Name: name, Value: b}
}

// Str encodes a string or stringlist.
func Str(name string, vals ...string) Prop {
	var b []byte
	for _, v := range vals {
		b = append(b, v...)
		b = append(b, 0)
	}
	return Prop{Name: name, Value: b}
}

// Empty encodes a boolean (zero-length) property.
func Empty(name string) Prop { return Prop{Name: name} }

// Raw uses b as the value verbatim.
func Raw(name string, b []byte) Prop { return Prop{Name: name, Value: b} }

// Node is a tree node. Properties are emitted in order, before children.
type Node struct {
	Name     string
	Props    []Prop
	Children []Node
}

// Options tweaks serialisation.
type Options struct {
	// Reservations are written before the terminator of the reservation map.
	Reservations []format.ReserveEntry

	// Nops interleaves an FDT_NOP before every node and property.
	Nops bool
}

// Build serialises root with default options.
func Build(root Node) []byte { return BuildWith(root, Options{}) }

// BuildWith serialises root.
func BuildWith(root Node, opts Options) []byte {
	s := NewStream()
	emit(s, root, opts)
	s.End()
	return Assemble(s.Bytes(), s.Strings.Bytes(), opts.Reservations)
}

func emit(s *Stream, n Node, opts Options) {
	if opts.Nops {
		s.Nop()
	}
	s.BeginNode(n.Name)
	for _, p := range n.Props {
		if opts.Nops {
			s.Nop()
		}
		s.Prop(p.Name, p.Value)
	}
	for _, c := range n.Children {
		emit(s, c, opts)
	}
	s.EndNode()
}

package fdt

import (
	"fmt"
	"strings"

	"github.com/joshuapare/fdtkit/internal/buf"
	"github.com/joshuapare/fdtkit/internal/format"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// ResourceType is a bitmask of the parts of a Resource that are filled in.
type ResourceType uint8

const (
	ResourceMem ResourceType = 1 << iota
	ResourceIntr
)

func (rt ResourceType) String() string {
	var parts []string
	if rt&ResourceMem != 0 {
		parts = append(parts, "mem")
	}
	if rt&ResourceIntr != 0 {
		parts = append(parts, "intr")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// MemRange is one (address, length) pair of a reg property.
type MemRange struct {
	Addr uint64 `json:"addr" yaml:"addr" cbor:"1,keyasint"`
	Len  uint64 `json:"len" yaml:"len" cbor:"2,keyasint"`
}

// Range is one entry of a ranges property.
type Range struct {
	Child  uint64 `json:"child" yaml:"child" cbor:"1,keyasint"`
	Parent uint64 `json:"parent" yaml:"parent" cbor:"2,keyasint"`
	Len    uint64 `json:"len" yaml:"len" cbor:"3,keyasint"`
}

// Resource is the hardware description of one device node.
type Resource struct {
	Type ResourceType `json:"type" yaml:"type" cbor:"1,keyasint"`

	// Name is the first compatible string, or the node's unit name when the
	// node has no compatible property.
	Name string `json:"name" yaml:"name" cbor:"2,keyasint"`

	// Path locates the node the resource was decoded from.
	Path string `json:"path" yaml:"path" cbor:"3,keyasint"`

	// Mem is valid when Type has ResourceMem.
	Mem MemRange `json:"mem" yaml:"mem" cbor:"4,keyasint"`

	// IntrNo is valid when Type has ResourceIntr.
	IntrNo uint32 `json:"intr" yaml:"intr" cbor:"5,keyasint"`
}

// HasMem reports whether Mem is valid.
func (r Resource) HasMem() bool { return r.Type&ResourceMem != 0 }

// HasIntr reports whether IntrNo is valid.
func (r Resource) HasIntr() bool { return r.Type&ResourceIntr != 0 }

// fill decodes prop of node id into acc. Parts already present in acc are
// left alone.
func (t *Tree) fill(acc *Resource, id types.NodeID, prop string) error {
	n, err := t.Node(id)
	if err != nil {
		return err
	}
	if acc.Name == "" {
		acc.Name = displayName(n)
		acc.Path = n.Path.String()
	}

	switch prop {
	case format.PropReg:
		if acc.HasMem() {
			return nil
		}
		p, err := requireProp(n, prop)
		if err != nil {
			return err
		}
		ac, sc, err := t.parentCells(n)
		if err != nil {
			return err
		}
		addr, err := decodeCells(p, 0, ac)
		if err != nil {
			return err
		}
		size, err := decodeCells(p, int(ac), sc)
		if err != nil {
			return err
		}
		acc.Mem = MemRange{Addr: addr, Len: size}
		acc.Type |= ResourceMem

	case format.PropInterrupts:
		if acc.HasIntr() {
			return nil
		}
		p, err := requireProp(n, prop)
		if err != nil {
			return err
		}
		v, err := p.U32()
		if err != nil {
			return fmt.Errorf("fdt: node %q: %w", n.Path, err)
		}
		acc.IntrNo = v
		acc.Type |= ResourceIntr

	default:
		return &types.Error{
			Kind: types.ErrKindUnsupported,
			Msg:  fmt.Sprintf("fdt: no resource decoding for property %q", prop),
		}
	}
	return nil
}

// Regs decodes every (address, size) pair of the node's reg property with
// the parent's cell widths. A parent #size-cells of 0 yields zero lengths.
func (t *Tree) Regs(id types.NodeID) ([]MemRange, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	p, err := requireProp(n, format.PropReg)
	if err != nil {
		return nil, err
	}
	ac, sc, err := t.parentCells(n)
	if err != nil {
		return nil, err
	}
	if ac == 0 {
		return nil, unsupportedWidth(p.Name, ac)
	}
	tuple := int(ac + sc)
	if err := checkTuples(n, p, tuple); err != nil {
		return nil, err
	}

	out := make([]MemRange, 0, len(p.Data)/(tuple*format.CellSize))
	for cell := 0; cell < len(p.Data)/format.CellSize; cell += tuple {
		addr, err := decodeCells(p, cell, ac)
		if err != nil {
			return nil, err
		}
		var size uint64
		if sc != 0 {
			if size, err = decodeCells(p, cell+int(ac), sc); err != nil {
				return nil, err
			}
		}
		out = append(out, MemRange{Addr: addr, Len: size})
	}
	return out, nil
}

// Ranges decodes the node's ranges property. The child address uses the
// node's #address-cells, the parent address the parent's, and the length the
// node's #size-cells. An empty ranges property is an identity mapping and
// yields nil.
func (t *Tree) Ranges(id types.NodeID) ([]Range, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	p, err := requireProp(n, format.PropRanges)
	if err != nil {
		return nil, err
	}
	if len(p.Data) == 0 {
		return nil, nil
	}
	pac, _, err := t.parentCells(n)
	if err != nil {
		return nil, err
	}
	cac, csc := n.AddressCells, n.SizeCells
	tuple := int(cac + pac + csc)
	if tuple == 0 {
		return nil, unsupportedWidth(p.Name, 0)
	}
	if err := checkTuples(n, p, tuple); err != nil {
		return nil, err
	}

	var out []Range
	for cell := 0; cell < len(p.Data)/format.CellSize; cell += tuple {
		var r Range
		if r.Child, err = decodeCells(p, cell, cac); err != nil {
			return nil, err
		}
		if r.Parent, err = decodeCells(p, cell+int(cac), pac); err != nil {
			return nil, err
		}
		if r.Len, err = decodeCells(p, cell+int(cac+pac), csc); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// parentCells returns the #address-cells and #size-cells that govern n's reg.
func (t *Tree) parentCells(n *Node) (uint32, uint32, error) {
	if !n.Parent.Valid() {
		return 0, 0, &types.Error{
			Kind: types.ErrKindUnsupported,
			Msg:  "fdt: the root node has no parent to take cell widths from",
		}
	}
	parent := &t.nodes[n.Parent]
	return parent.AddressCells, parent.SizeCells, nil
}

// decodeCells reads a width-cell value starting at cell index idx. Two-cell
// values are composed high word first.
func decodeCells(p Property, idx int, width uint32) (uint64, error) {
	if width != 1 && width != 2 {
		return 0, unsupportedWidth(p.Name, width)
	}
	var v uint64
	for i := 0; i < int(width); i++ {
		c, ok := buf.CellAt(p.Data, idx+i)
		if !ok {
			return 0, &types.Error{
				Kind: types.ErrKindCorrupt,
				Msg:  fmt.Sprintf("fdt: property %q: %d bytes is too short for cell %d", p.Name, len(p.Data), idx+i),
			}
		}
		v = v<<32 | uint64(c)
	}
	return v, nil
}

func checkTuples(n *Node, p Property, tuple int) error {
	size := tuple * format.CellSize
	if len(p.Data) == 0 || len(p.Data)%size != 0 {
		return &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg: fmt.Sprintf("fdt: node %q: %s is %d bytes, not a multiple of %d",
				n.Path, p.Name, len(p.Data), size),
		}
	}
	return nil
}

func requireProp(n *Node, name string) (Property, error) {
	p, ok := n.Prop(name)
	if !ok {
		return Property{}, &types.Error{
			Kind: types.ErrKindNotFound,
			Msg:  fmt.Sprintf("fdt: node %q has no %s property", n.Path, name),
		}
	}
	return p, nil
}

func unsupportedWidth(prop string, width uint32) error {
	return &types.Error{
		Kind: types.ErrKindUnsupported,
		Msg:  fmt.Sprintf("fdt: %s: cell width %d is not supported", prop, width),
	}
}

func displayName(n *Node) string {
	if c := n.Compatible(); len(c) > 0 {
		return c[0]
	}
	return n.Name()
}

package fdt

import (
	"fmt"

	"github.com/joshuapare/fdtkit/fdt/walker"
	"github.com/joshuapare/fdtkit/internal/format"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// treeBuilder is the first pass. It fills the node table and the phandle map.
type treeBuilder struct {
	lim      types.Limits
	nodes    []Node
	phandles map[uint32]types.NodeID

	// valid is the number of nodes whose END_NODE has been seen or that
	// precede such a node.
	valid int
}

func newTreeBuilder(lim types.Limits) *treeBuilder {
	return &treeBuilder{
		lim:      lim,
		nodes:    make([]Node, 0, min(lim.MaxNodes, types.DefaultMaxNodes)),
		phandles: make(map[uint32]types.NodeID),
	}
}

func (b *treeBuilder) BeginNode(ev *walker.Event) error {
	if int(ev.Node) >= b.lim.MaxNodes {
		return &types.Error{
			Kind: types.ErrKindCapacity,
			Msg:  fmt.Sprintf("fdt: node %q exceeds %d nodes", pathOf(ev), b.lim.MaxNodes),
		}
	}
	if int(ev.Node) != len(b.nodes) {
		return &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  fmt.Sprintf("fdt: node index %d out of sequence, expected %d", ev.Node, len(b.nodes)),
		}
	}

	b.nodes = append(b.nodes, Node{
		Path:            append(Path(nil), ev.Path...),
		Offset:          ev.Offset,
		Depth:           ev.Depth,
		Parent:          ev.Parent,
		InterruptParent: types.InvalidNode,
		AddressCells:    format.DefaultAddressCells,
		SizeCells:       format.DefaultSizeCells,
		InterruptCells:  format.DefaultInterruptCells,
	})
	return nil
}

func (b *treeBuilder) EndNode(*walker.Event) error {
	b.valid = len(b.nodes)
	return nil
}

func (b *treeBuilder) Property(ev *walker.Event) error {
	n := &b.nodes[ev.Node]
	if len(n.Props) >= b.lim.MaxPropsPerNode {
		return &types.Error{
			Kind: types.ErrKindCapacity,
			Msg:  fmt.Sprintf("fdt: node %q exceeds %d properties", pathOf(ev), b.lim.MaxPropsPerNode),
		}
	}
	p := Property{Name: ev.Name, NameOff: ev.NameOff, Offset: ev.Offset, Data: ev.Data}

	switch p.Name {
	case format.PropAddressCells, format.PropSizeCells, format.PropInterruptCells:
		v, err := p.U32()
		if err != nil {
			return fmt.Errorf("fdt: node %q: %w", pathOf(ev), err)
		}
		switch p.Name {
		case format.PropAddressCells:
			n.AddressCells = v
		case format.PropSizeCells:
			n.SizeCells = v
		default:
			n.InterruptCells = v
		}

	case format.PropPhandle:
		ph, err := p.U32()
		if err != nil {
			return fmt.Errorf("fdt: node %q: %w", pathOf(ev), err)
		}
		n.Phandle = ph
		if ph == 0 {
			break
		}
		if _, dup := b.phandles[ph]; !dup && len(b.phandles) >= b.lim.MaxPhandles {
			return &types.Error{
				Kind: types.ErrKindCapacity,
				Msg:  fmt.Sprintf("fdt: phandle 0x%x exceeds %d phandles", ph, b.lim.MaxPhandles),
			}
		}
		b.phandles[ph] = ev.Node
	}

	n.Props = append(n.Props, p)
	return nil
}

func pathOf(ev *walker.Event) string { return Path(ev.Path).String() }

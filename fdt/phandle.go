package fdt

import (
	"fmt"

	"github.com/joshuapare/fdtkit/fdt/walker"
	"github.com/joshuapare/fdtkit/internal/format"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// phandleResolver is the second pass. It runs after the phandle map is
// complete, so references to nodes later in the stream resolve.
type phandleResolver struct {
	walker.NopVisitor

	nodes    []Node
	phandles map[uint32]types.NodeID
	resolved int
}

func (r *phandleResolver) Property(ev *walker.Event) error {
	if ev.Name != format.PropInterruptParent {
		return nil
	}
	p := Property{Name: ev.Name, Data: ev.Data}
	ph, err := p.U32()
	if err != nil {
		return fmt.Errorf("fdt: node %q: %w", pathOf(ev), err)
	}
	target, ok := r.phandles[ph]
	if !ok {
		return &types.Error{
			Kind: types.ErrKindUnsupported,
			Msg:  fmt.Sprintf("fdt: node %q: interrupt-parent phandle 0x%x does not resolve", pathOf(ev), ph),
		}
	}
	r.nodes[ev.Node].InterruptParent = target
	r.resolved++
	return nil
}

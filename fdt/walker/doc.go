// Package walker decodes the structure block of a device tree blob.
//
// # Overview
//
// The structure block is a flat, depth-first token stream:
//
//	FDT_BEGIN_NODE "" ............ root, index 0
//	  FDT_PROP #address-cells
//	  FDT_BEGIN_NODE "cpus" ...... index 1
//	    FDT_BEGIN_NODE "cpu@0" ... index 2
//	    FDT_END_NODE
//	  FDT_END_NODE
//	FDT_END_NODE
//	FDT_END
//
// Walker makes a single forward pass over the stream and reports each
// BEGIN_NODE, END_NODE and PROP token to a Visitor. NOP tokens are skipped
// silently. The walker never allocates per token beyond the interned property
// names.
//
// # Visitors
//
// A Visitor has one method per reported token. Embed NopVisitor to implement
// only the methods you need, and pass a Mask to Walk so unsubscribed tokens
// are decoded but not delivered:
//
//	type propNames struct {
//	    walker.NopVisitor
//	    names []string
//	}
//
//	func (p *propNames) Property(ev *walker.Event) error {
//	    p.names = append(p.names, ev.Name)
//	    return nil
//	}
//
//	err := w.Walk(walker.MaskProp, &propNames{})
//
// Returning ErrStop from a visitor method ends the walk early; Walk then
// returns nil. Any other error aborts the walk and is returned as is.
//
// # Node Indices
//
// Nodes are numbered in stream order: the first BEGIN_NODE is 0 and each later
// one is the previous index plus one. The walker keeps an explicit stack of
// open nodes so every event carries both its node index and its parent index,
// which lets visitors link parents in O(depth) without scanning back.
//
// # Counting
//
// Counter is a ready-made visitor that tallies tokens and depth:
//
//	stats, err := walker.Count(w)
//	fmt.Printf("nodes: %d props: %d\n", stats.BeginNodes, stats.Props)
package walker

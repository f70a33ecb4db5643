package fdt

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joshuapare/fdtkit/internal/buf"
	"github.com/joshuapare/fdtkit/internal/format"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// Path is a node path split into segments. The first segment is always the
// empty root name, so the root path is Path{""}.
type Path []string

// ParsePath splits a slash-separated path. A missing leading slash is
// tolerated and a trailing slash is ignored, so "/", "" and "soc/" parse to
// Path{""}, Path{""} and Path{"", "soc"}.
func ParsePath(s string) Path {
	s = strings.Trim(s, "/")
	if s == "" {
		return Path{""}
	}
	return append(Path{""}, strings.Split(s, "/")...)
}

// String renders the path in its conventional slash-separated form.
func (p Path) String() string {
	if len(p) <= 1 {
		return "/"
	}
	return strings.Join(p, "/")
}

// Last returns the final segment, which is the node's unit name.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Equal reports whether p and q have identical segments.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Property is one property of a node. Data aliases the blob.
type Property struct {
	Name string

	// NameOff is the offset of Name in the strings block.
	NameOff uint32

	// Offset is the position of the FDT_PROP tag in the structure block.
	Offset int

	Data []byte
}

// U32 decodes the first cell of the value.
func (p Property) U32() (uint32, error) {
	v, ok := buf.CellAt(p.Data, 0)
	if !ok {
		return 0, &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  fmt.Sprintf("property %q: %d bytes is too short for a cell", p.Name, len(p.Data)),
		}
	}
	return v, nil
}

// Cells decodes the value as a sequence of cells; trailing bytes that do not
// form a whole cell are ignored.
func (p Property) Cells() []uint32 {
	out := make([]uint32, 0, len(p.Data)/format.CellSize)
	for i := 0; ; i++ {
		v, ok := buf.CellAt(p.Data, i)
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Strings decodes the value as a stringlist.
func (p Property) Strings() []string {
	parts := format.SplitStrings(p.Data)
	out := make([]string, len(parts))
	for i, s := range parts {
		out[i] = string(s)
	}
	return out
}

// Node is one entry of the node table. Nodes returned by a Tree must not be
// modified.
type Node struct {
	Path Path

	// Offset is the position of the FDT_BEGIN_NODE tag in the structure block.
	Offset int

	// Depth is len(Path); the root has depth 1.
	Depth int

	// Parent is types.InvalidNode for the root.
	Parent types.NodeID

	// InterruptParent is the node named by the interrupt-parent property,
	// or types.InvalidNode.
	InterruptParent types.NodeID

	AddressCells   uint32
	SizeCells      uint32
	InterruptCells uint32

	// Phandle is 0 when the node has none.
	Phandle uint32

	Props []Property
}

// Name returns the node's unit name; the root's name is empty.
func (n *Node) Name() string { return n.Path.Last() }

// Prop looks up a property by name.
func (n *Node) Prop(name string) (Property, bool) {
	for _, p := range n.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Match reports whether the node has property prop and one of its strings
// equals value.
func (n *Node) Match(prop, value string) bool {
	p, ok := n.Prop(prop)
	if !ok {
		return false
	}
	for _, s := range format.SplitStrings(p.Data) {
		if string(s) == value {
			return true
		}
	}
	return false
}

// Compatible returns the node's compatible strings, most specific first.
func (n *Node) Compatible() []string {
	p, ok := n.Prop(format.PropCompatible)
	if !ok {
		return nil
	}
	return p.Strings()
}

// Tree is a decoded device tree. It is immutable once returned by Parse or
// Open and safe for concurrent readers.
type Tree struct {
	blob     []byte
	header   format.Header
	nodes    []Node
	phandles map[uint32]types.NodeID

	closeOnce sync.Once
	release   func() error
	closeErr  error
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Header returns the blob header.
func (t *Tree) Header() format.Header { return t.header }

// Bytes returns the blob the tree was decoded from.
func (t *Tree) Bytes() []byte { return t.blob }

// Node returns the node with the given index.
func (t *Tree) Node(id types.NodeID) (*Node, error) {
	if !id.Valid() || int(id) >= len(t.nodes) {
		return nil, &types.Error{
			Kind: types.ErrKindNotFound,
			Msg:  fmt.Sprintf("fdt: node %d out of range [0,%d)", id, len(t.nodes)),
		}
	}
	return &t.nodes[id], nil
}

// Root returns the root node.
func (t *Tree) Root() *Node { return &t.nodes[0] }

// Nodes returns the node table in structure block order.
func (t *Tree) Nodes() []Node { return t.nodes }

// Children returns the direct children of id in stream order.
func (t *Tree) Children(id types.NodeID) []types.NodeID {
	var out []types.NodeID
	for i := int(id) + 1; i < len(t.nodes); i++ {
		if t.nodes[i].Parent == id {
			out = append(out, types.NodeID(i))
		}
	}
	return out
}

// PathString returns the slash-separated path of id, or "" when id is out of
// range.
func (t *Tree) PathString(id types.NodeID) string {
	n, err := t.Node(id)
	if err != nil {
		return ""
	}
	return n.Path.String()
}

// Phandle resolves a phandle value to a node.
func (t *Tree) Phandle(ph uint32) (types.NodeID, bool) {
	id, ok := t.phandles[ph]
	return id, ok
}

// PhandleCount returns the number of distinct phandle values.
func (t *Tree) PhandleCount() int { return len(t.phandles) }

// Close releases the file mapping of a tree returned by Open. It is a no-op
// for trees returned by Parse, and safe to call more than once. Property data
// of an opened tree must not be used after Close.
func (t *Tree) Close() error {
	t.closeOnce.Do(func() {
		if t.release != nil {
			t.closeErr = t.release()
		}
		t.blob = nil
	})
	return t.closeErr
}

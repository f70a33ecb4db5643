package walker

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/crypto/cryptobyte"

	"github.com/joshuapare/fdtkit/internal/buf"
	"github.com/joshuapare/fdtkit/internal/format"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// ErrStop ends a walk early without reporting an error.
var ErrStop = errors.New("walker: stop")

// Mask selects which tokens are delivered to the visitor.
type Mask uint8

const (
	MaskBeginNode Mask = 1 << iota
	MaskEndNode
	MaskProp

	MaskAll = MaskBeginNode | MaskEndNode | MaskProp
)

// Event describes one decoded token. The pointer passed to a visitor is reused
// for every token; copy what you need to keep.
type Event struct {
	Token format.Token

	// Offset of the token tag from the start of the structure block.
	Offset int

	// Depth is the path length of the node the token belongs to; the root
	// has depth 1. END_NODE is reported before the depth is decremented.
	Depth int

	// Node is the index of the node the token belongs to, Parent the index
	// of its enclosing node (types.InvalidNode for the root).
	Node   types.NodeID
	Parent types.NodeID

	// Name is the node name for BEGIN_NODE/END_NODE and the property name
	// for PROP.
	Name string

	// NameOff is the strings block offset of a PROP name.
	NameOff uint32

	// Data is the PROP value; it aliases the blob.
	Data []byte

	// Path holds the open node names from the root down to this node.
	// It is only valid during the callback.
	Path []string
}

// Visitor receives decoded tokens.
type Visitor interface {
	BeginNode(ev *Event) error
	EndNode(ev *Event) error
	Property(ev *Event) error
}

// NopVisitor implements Visitor with methods that do nothing.
type NopVisitor struct{}

func (NopVisitor) BeginNode(*Event) error { return nil }
func (NopVisitor) EndNode(*Event) error   { return nil }
func (NopVisitor) Property(*Event) error  { return nil }

// Walker decodes a structure block against its strings block.
type Walker struct {
	structs  []byte
	strs     []byte
	maxDepth int

	// names interns property names by strings block offset.
	names map[uint32]string
}

// New creates a walker over the given blocks. maxDepth bounds the path length
// of any node; deeper nesting is reported as a capacity error.
func New(blocks format.Blocks, maxDepth int) *Walker {
	return &Walker{
		structs:  blocks.Struct,
		strs:     blocks.Strings,
		maxDepth: maxDepth,
		names:    make(map[uint32]string),
	}
}

// Walk decodes the whole structure block once, delivering tokens selected by
// mask to v. The same Walker may be walked any number of times; node indices
// are identical on every pass.
func (w *Walker) Walk(mask Mask, v Visitor) error {
	err := w.walk(mask, v)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (w *Walker) walk(mask Mask, v Visitor) error {
	s := cryptobyte.String(w.structs)
	path := make([]string, 0, w.maxDepth)
	open := make([]types.NodeID, 0, w.maxDepth)
	next := types.NodeID(0)
	rootClosed := false

	var ev Event
	for {
		off := len(w.structs) - len(s)
		var tag uint32
		if !s.ReadUint32(&tag) {
			return corrupt(off, "missing FDT_END token", format.ErrTruncated)
		}
		tok := format.Token(tag)

		switch tok {
		case format.TokenNop:
			continue

		case format.TokenBeginNode:
			n := bytes.IndexByte(s, 0)
			if n < 0 {
				return corrupt(off, "node name", format.ErrUnterminated)
			}
			if rootClosed {
				return corrupt(off, "second root node", nil)
			}
			if len(open) == 0 && n != 0 {
				return corrupt(off, "root node has a name", nil)
			}
			if len(open) >= w.maxDepth {
				return &types.Error{
					Kind: types.ErrKindCapacity,
					Msg:  fmt.Sprintf("walker: node at 0x%x exceeds max depth %d", off, w.maxDepth),
				}
			}
			name := string(s[:n])
			if !s.Skip(buf.Align4(n + 1)) {
				return corrupt(off, "node name padding", format.ErrTruncated)
			}

			parent := types.InvalidNode
			if len(open) > 0 {
				parent = open[len(open)-1]
			}
			path = append(path, name)
			open = append(open, next)
			next++

			if mask&MaskBeginNode != 0 {
				ev = Event{
					Token:  tok,
					Offset: off,
					Depth:  len(open),
					Node:   open[len(open)-1],
					Parent: parent,
					Name:   name,
					Path:   path,
				}
				if err := v.BeginNode(&ev); err != nil {
					return err
				}
			}

		case format.TokenEndNode:
			if len(open) == 0 {
				return corrupt(off, "FDT_END_NODE without open node", nil)
			}
			if mask&MaskEndNode != 0 {
				ev = Event{
					Token:  tok,
					Offset: off,
					Depth:  len(open),
					Node:   open[len(open)-1],
					Parent: parentOf(open),
					Name:   path[len(path)-1],
					Path:   path,
				}
				if err := v.EndNode(&ev); err != nil {
					return err
				}
			}
			path = path[:len(path)-1]
			open = open[:len(open)-1]
			if len(open) == 0 {
				rootClosed = true
			}

		case format.TokenProp:
			var size, nameOff uint32
			if !s.ReadUint32(&size) || !s.ReadUint32(&nameOff) {
				return corrupt(off, "property header", format.ErrTruncated)
			}
			if len(open) == 0 {
				return corrupt(off, "FDT_PROP outside a node", nil)
			}
			var data []byte
			if !s.ReadBytes(&data, int(size)) {
				return corrupt(off, "property value", format.ErrTruncated)
			}
			if !s.Skip(buf.Align4(int(size)) - int(size)) {
				return corrupt(off, "property padding", format.ErrTruncated)
			}
			if mask&MaskProp == 0 {
				continue
			}
			name, err := w.propName(nameOff)
			if err != nil {
				return corrupt(off, "property name", err)
			}
			ev = Event{
				Token:   tok,
				Offset:  off,
				Depth:   len(open),
				Node:    open[len(open)-1],
				Parent:  parentOf(open),
				Name:    name,
				NameOff: nameOff,
				Data:    data,
				Path:    path,
			}
			if err := v.Property(&ev); err != nil {
				return err
			}

		case format.TokenEnd:
			if len(open) != 0 {
				return corrupt(off, fmt.Sprintf("FDT_END with %d open nodes", len(open)), nil)
			}
			return nil

		default:
			return corrupt(off, fmt.Sprintf("unrecognized token 0x%X", tag), nil)
		}
	}
}

// propName resolves and interns a strings block offset.
func (w *Walker) propName(off uint32) (string, error) {
	if name, ok := w.names[off]; ok {
		return name, nil
	}
	b, err := format.CString(w.strs, int(off))
	if err != nil {
		return "", err
	}
	name := string(b)
	w.names[off] = name
	return name, nil
}

func parentOf(open []types.NodeID) types.NodeID {
	if len(open) < 2 {
		return types.InvalidNode
	}
	return open[len(open)-2]
}

func corrupt(off int, what string, cause error) error {
	return &types.Error{
		Kind: types.ErrKindCorrupt,
		Msg:  fmt.Sprintf("walker: %s at 0x%x", what, off),
		Err:  cause,
	}
}

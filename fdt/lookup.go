package fdt

import (
	"fmt"
	"strings"

	"github.com/joshuapare/fdtkit/internal/format"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// FindByPath returns the node whose path equals path segment for segment.
// Should several nodes share a path, the last one in the stream wins.
func (t *Tree) FindByPath(path string) (types.NodeID, error) {
	q := ParsePath(path)
	found := types.InvalidNode
	for i := range t.nodes {
		if t.nodes[i].Path.Equal(q) {
			found = types.NodeID(i)
		}
	}
	if !found.Valid() {
		return types.InvalidNode, &types.Error{
			Kind: types.ErrKindNotFound,
			Msg:  fmt.Sprintf("fdt: no node at %s", q),
		}
	}
	return found, nil
}

// FindByPrefix returns one resource per node whose unit name starts with
// prefix, in stream order. The match is byte-wise, so "uart" matches
// "uart@10000000" and "uart0" alike. Each resource carries the node's reg and
// interrupts when present. No match yields an empty slice and a nil error.
func (t *Tree) FindByPrefix(prefix string) ([]Resource, error) {
	out := []Resource{}
	for i := range t.nodes {
		n := &t.nodes[i]
		if !strings.HasPrefix(n.Name(), prefix) {
			continue
		}
		r, err := t.resources(types.NodeID(i))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ResourceFor decodes a single resource property ("reg" or "interrupts") of
// the node.
func (t *Tree) ResourceFor(id types.NodeID, prop string) (Resource, error) {
	var r Resource
	if err := t.fill(&r, id, prop); err != nil {
		return Resource{}, err
	}
	return r, nil
}

// ResourceByPath finds the node at path and decodes both its reg and its
// interrupts, whichever are present.
func (t *Tree) ResourceByPath(path string) (Resource, error) {
	id, err := t.FindByPath(path)
	if err != nil {
		return Resource{}, err
	}
	return t.resources(id)
}

// FindCompatible returns the nodes listing value among their compatible
// strings, in stream order.
func (t *Tree) FindCompatible(value string) []types.NodeID {
	var out []types.NodeID
	for i := range t.nodes {
		if t.nodes[i].Match(format.PropCompatible, value) {
			out = append(out, types.NodeID(i))
		}
	}
	return out
}

// resources accumulates reg and interrupts of id into one Resource.
func (t *Tree) resources(id types.NodeID) (Resource, error) {
	n := &t.nodes[id]
	r := Resource{Name: displayName(n), Path: n.Path.String()}
	for _, prop := range []string{format.PropReg, format.PropInterrupts} {
		if _, ok := n.Prop(prop); !ok {
			continue
		}
		if err := t.fill(&r, id, prop); err != nil {
			return Resource{}, err
		}
	}
	return r, nil
}

package fdt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/internal/fdttest"
	"github.com/joshuapare/fdtkit/pkg/types"
)

func parseVirt(t *testing.T) *fdt.Tree {
	t.Helper()
	tree, err := fdt.Parse(fdttest.VirtBlob(), nil)
	require.NoError(t, err)
	return tree
}

func parseNode(t *testing.T, root fdttest.Node) *fdt.Tree {
	t.Helper()
	tree, err := fdt.Parse(fdttest.Build(root), nil)
	require.NoError(t, err)
	return tree
}

func mustFind(t *testing.T, tree *fdt.Tree, path string) types.NodeID {
	t.Helper()
	id, err := tree.FindByPath(path)
	require.NoError(t, err, "path %s", path)
	return id
}

func mustNode(t *testing.T, tree *fdt.Tree, path string) *fdt.Node {
	t.Helper()
	n, err := tree.Node(mustFind(t, tree, path))
	require.NoError(t, err)
	return n
}

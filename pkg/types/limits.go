package types

import "fmt"

// ============================================================================
// Table Limits
// ============================================================================
// A tree is built into tables whose capacity is fixed before parsing starts.
// The defaults match the fixed arrays of boot-time device tree parsers.

const (
	// DefaultMaxNodes is the default node table capacity.
	DefaultMaxNodes = 128

	// DefaultMaxPropsPerNode is the default per-node property capacity.
	DefaultMaxPropsPerNode = 16

	// DefaultMaxDepth is the default maximum path depth, root included.
	DefaultMaxDepth = 16

	// DefaultMaxPhandles is the default phandle map capacity.
	DefaultMaxPhandles = DefaultMaxNodes
)

// Limits bounds the tables built while parsing a blob.
type Limits struct {
	// MaxNodes caps the number of nodes in the tree.
	MaxNodes int

	// MaxPropsPerNode caps the properties stored for a single node.
	MaxPropsPerNode int

	// MaxDepth caps the path length of any node; the root has depth 1.
	MaxDepth int

	// MaxPhandles caps the number of distinct phandle values.
	MaxPhandles int
}

// DefaultLimits returns the default table capacities.
func DefaultLimits() Limits {
	return Limits{
		MaxNodes:        DefaultMaxNodes,
		MaxPropsPerNode: DefaultMaxPropsPerNode,
		MaxDepth:        DefaultMaxDepth,
		MaxPhandles:     DefaultMaxPhandles,
	}
}

// Validate rejects non-positive capacities.
func (l Limits) Validate() error {
	switch {
	case l.MaxNodes <= 0:
		return fmt.Errorf("limits: MaxNodes must be positive, got %d", l.MaxNodes)
	case l.MaxPropsPerNode <= 0:
		return fmt.Errorf("limits: MaxPropsPerNode must be positive, got %d", l.MaxPropsPerNode)
	case l.MaxDepth <= 0:
		return fmt.Errorf("limits: MaxDepth must be positive, got %d", l.MaxDepth)
	case l.MaxPhandles <= 0:
		return fmt.Errorf("limits: MaxPhandles must be positive, got %d", l.MaxPhandles)
	}
	return nil
}

package fdt

import (
	"io"
	"log/slog"

	"github.com/joshuapare/fdtkit/pkg/types"
)

// Options controls how a blob is parsed. A nil *Options is equivalent to
// DefaultOptions().
type Options struct {
	// Limits caps the node, property and phandle tables. Zero fields take
	// the corresponding types.DefaultLimits() value.
	Limits types.Limits

	// Logger receives Debug records while the tree is built.
	// If nil, records are discarded.
	Logger *slog.Logger
}

// DefaultOptions returns the default table limits and a discarding logger.
func DefaultOptions() *Options {
	return &Options{Limits: types.DefaultLimits()}
}

// resolve fills in defaults and validates the limits.
func (o *Options) resolve() (types.Limits, *slog.Logger, error) {
	if o == nil {
		o = DefaultOptions()
	}
	lim := o.Limits
	def := types.DefaultLimits()
	if lim.MaxNodes == 0 {
		lim.MaxNodes = def.MaxNodes
	}
	if lim.MaxPropsPerNode == 0 {
		lim.MaxPropsPerNode = def.MaxPropsPerNode
	}
	if lim.MaxDepth == 0 {
		lim.MaxDepth = def.MaxDepth
	}
	if lim.MaxPhandles == 0 {
		lim.MaxPhandles = def.MaxPhandles
	}
	if err := lim.Validate(); err != nil {
		return types.Limits{}, nil, err
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return lim, logger, nil
}

package fdt

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/fdtkit/fdt/walker"
	"github.com/joshuapare/fdtkit/internal/format"
	"github.com/joshuapare/fdtkit/internal/mmfile"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// Parse decodes blob into a Tree. The tree aliases blob, which must not be
// modified afterwards. Any error aborts the build; no partial tree is
// returned.
func Parse(blob []byte, opts *Options) (*Tree, error) {
	lim, logger, err := opts.resolve()
	if err != nil {
		return nil, fmt.Errorf("fdt: options: %w", err)
	}

	h, err := format.ParseHeader(blob)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindFormat, Msg: "fdt: header", Err: err}
	}
	blocks, err := h.Blocks(blob)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindFormat, Msg: "fdt: header", Err: err}
	}
	logger.Debug("fdt header accepted",
		slog.Int("totalsize", int(h.TotalSize)),
		slog.Int("struct_size", int(h.SizeDtStruct)),
		slog.Int("strings_size", int(h.SizeDtStrings)))

	rsv, err := format.ReadReservations(blocks.Reserve)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindFormat, Msg: "fdt: memory reservation block", Err: err}
	}
	if len(rsv) > 0 {
		return nil, &types.Error{
			Kind: types.ErrKindUnsupported,
			Msg: fmt.Sprintf("fdt: %d memory reservation(s), first at 0x%x size 0x%x",
				len(rsv), rsv[0].Address, rsv[0].Size),
		}
	}

	w := walker.New(blocks, lim.MaxDepth)

	b := newTreeBuilder(lim)
	if err := w.Walk(walker.MaskAll, b); err != nil {
		return nil, fmt.Errorf("fdt: build: %w", err)
	}
	if b.valid == 0 {
		return nil, &types.Error{Kind: types.ErrKindCorrupt, Msg: "fdt: structure block has no root node"}
	}
	nodes := b.nodes[:b.valid]
	logger.Debug("fdt tree built",
		slog.Int("nodes", len(nodes)),
		slog.Int("phandles", len(b.phandles)))

	r := &phandleResolver{nodes: nodes, phandles: b.phandles}
	if err := w.Walk(walker.MaskProp, r); err != nil {
		return nil, fmt.Errorf("fdt: resolve phandles: %w", err)
	}
	logger.Debug("fdt phandles resolved", slog.Int("interrupt_parents", r.resolved))

	return &Tree{
		blob:     blob,
		header:   h,
		nodes:    nodes,
		phandles: b.phandles,
	}, nil
}

// Open maps the blob at path and parses it. The caller must Close the tree.
func Open(path string, opts *Options) (*Tree, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("fdt: open %s: %w", path, err)
	}
	t, err := Parse(data, opts)
	if err != nil {
		return nil, errors.Join(err, release())
	}
	t.release = release
	return t, nil
}

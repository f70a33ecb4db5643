// Package fdt decodes Flattened Device Tree blobs (DTB, version 17) into an
// addressable, read-only tree and answers hardware resource queries against
// it.
//
// # Building
//
// Parse validates the header, rejects blobs that carry memory reservations,
// then walks the structure block twice. The first pass fills a node table
// bounded by Options.Limits: path, depth, parent, cell widths, phandle and
// properties. The second pass resolves interrupt-parent phandles, which may
// point at nodes that appear later in the stream.
//
//	tree, err := fdt.Parse(blob, nil)
//	if err != nil {
//	    return err
//	}
//
// Open does the same for a file and maps it read-only where the platform
// allows; the tree must then be closed.
//
// # Querying
//
//	// Exact path.
//	id, err := tree.FindByPath("/soc/uart@10000000")
//	uart, err := tree.ResourceFor(id, "reg")
//
//	// Every node whose unit name starts with a prefix.
//	res, err := tree.FindByPrefix("virtio_mmio@")
//	for _, r := range res {
//	    fmt.Printf("%s 0x%x+0x%x irq %d\n", r.Name, r.Mem.Addr, r.Mem.Len, r.IntrNo)
//	}
//
// A reg entry is decoded with the #address-cells and #size-cells of the
// node's parent; widths other than 1 and 2 cells are reported as
// unsupported.
//
// # Errors
//
// Every failure is a *types.Error and can be classified with errors.Is:
//
//	if errors.Is(err, types.ErrNotFound) { ... }
//
// A Tree is safe for concurrent readers once returned.
package fdt

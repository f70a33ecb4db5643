// Package printer renders a decoded device tree, or resources taken from it,
// as dts-like text, JSON, YAML or CBOR.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/pkg/types"
)

const (
	DefaultIndentSize    = 2
	DefaultMaxDepth      = 0
	DefaultMaxValueBytes = 32
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs dts-like source text.
	FormatText Format = "text"

	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"

	// FormatYAML outputs a YAML document.
	FormatYAML Format = "yaml"

	// FormatCBOR outputs deterministic CBOR, for handing resources to
	// another program.
	FormatCBOR Format = "cbor"
)

// ParseFormat maps a flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("printer: unknown format %q (want text, json, yaml or cbor)", s)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format.
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text, JSON and
	// YAML).
	// Default: 2
	IndentSize int

	// MaxDepth limits recursion below the starting node (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowValues includes property values in output; otherwise only
	// property names are listed.
	// Default: true
	ShowValues bool

	// MaxValueBytes limits how many bytes of opaque values to display.
	// Longer values are truncated. Set to 0 for no limit.
	// Default: 32
	MaxValueBytes int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxDepth:      DefaultMaxDepth,
		ShowValues:    true,
		MaxValueBytes: DefaultMaxValueBytes,
	}
}

// Printer handles formatted output of device tree structures.
type Printer struct {
	opts   Options
	writer io.Writer
	tree   *fdt.Tree
}

// New creates a new Printer.
//
// Example:
//
//	tree, _ := fdt.Open("virt.dtb", nil)
//	p := printer.New(tree, os.Stdout, printer.DefaultOptions())
//	p.PrintTree("/soc")
func New(t *fdt.Tree, w io.Writer, opts Options) *Printer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{
		tree:   t,
		writer: w,
		opts:   opts,
	}
}

// PrintNode prints one node and its properties, without children.
func (p *Printer) PrintNode(path string) error {
	id, err := p.tree.FindByPath(path)
	if err != nil {
		return fmt.Errorf("find node %q: %w", path, err)
	}

	switch p.opts.Format {
	case FormatJSON, FormatYAML, FormatCBOR:
		return p.encode(p.buildDoc(id, 0, false))
	default:
		return p.printNodeText(id, 0, false)
	}
}

// PrintTree prints the subtree rooted at path.
//
// Example:
//
//	opts := printer.DefaultOptions()
//	opts.MaxDepth = 2
//	p := printer.New(tree, os.Stdout, opts)
//	p.PrintTree("/")
func (p *Printer) PrintTree(path string) error {
	id, err := p.tree.FindByPath(path)
	if err != nil {
		return fmt.Errorf("find node %q: %w", path, err)
	}

	switch p.opts.Format {
	case FormatJSON, FormatYAML, FormatCBOR:
		return p.encode(p.buildDoc(id, 0, true))
	default:
		return p.printNodeText(id, 0, true)
	}
}

// PrintResources prints decoded resources, one per line in text format or
// as a list otherwise.
func (p *Printer) PrintResources(res []fdt.Resource) error {
	switch p.opts.Format {
	case FormatJSON, FormatYAML, FormatCBOR:
		if res == nil {
			res = []fdt.Resource{}
		}
		return p.encode(res)
	default:
		return p.printResourcesText(res)
	}
}

// descend reports whether children at depth+1 are still printed.
func (p *Printer) descend(depth int) bool {
	return p.opts.MaxDepth <= 0 || depth+1 < p.opts.MaxDepth
}

func (p *Printer) node(id types.NodeID) *fdt.Node {
	return &p.tree.Nodes()[id]
}

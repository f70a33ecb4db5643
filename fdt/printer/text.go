package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/pkg/types"
)

// printNodeText prints a node in dts syntax:
//
//	uart@10000000 {
//	  compatible = "ns16550a";
//	  reg = <0x10000000 0x100>;
//	};
func (p *Printer) printNodeText(id types.NodeID, depth int, recursive bool) error {
	n := p.node(id)
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)
	inner := strings.Repeat(" ", (depth+1)*p.opts.IndentSize)

	name := n.Name()
	if !n.Parent.Valid() {
		name = "/"
	}
	if _, err := fmt.Fprintf(p.writer, "%s%s {\n", indent, name); err != nil {
		return err
	}

	for _, prop := range n.Props {
		line := prop.Name
		if p.opts.ShowValues {
			if v := p.decode(id, prop).text(); v != "" {
				line += " = " + v
			}
		}
		if _, err := fmt.Fprintf(p.writer, "%s%s;\n", inner, line); err != nil {
			return err
		}
	}

	if recursive && p.descend(depth) {
		for i, child := range p.tree.Children(id) {
			if i > 0 || len(n.Props) > 0 {
				fmt.Fprintln(p.writer)
			}
			if err := p.printNodeText(child, depth+1, true); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(p.writer, "%s};\n", indent)
	return err
}

// printResourcesText prints one line per resource:
//
//	ns16550a  /soc/uart@10000000  mem 0x10000000+0x100  irq 10
func (p *Printer) printResourcesText(res []fdt.Resource) error {
	for _, r := range res {
		line := fmt.Sprintf("%s  %s", r.Name, r.Path)
		if r.HasMem() {
			line += fmt.Sprintf("  mem 0x%x+0x%x", r.Mem.Addr, r.Mem.Len)
		}
		if r.HasIntr() {
			line += fmt.Sprintf("  irq %d", r.IntrNo)
		}
		if _, err := fmt.Fprintln(p.writer, line); err != nil {
			return err
		}
	}
	return nil
}

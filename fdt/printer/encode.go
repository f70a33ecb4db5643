package printer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/fdtkit/pkg/types"
)

// nodeDoc is a node in JSON, YAML and CBOR output.
type nodeDoc struct {
	Name     string    `json:"name" yaml:"name" cbor:"name"`
	Path     string    `json:"path" yaml:"path" cbor:"path"`
	Phandle  uint32    `json:"phandle,omitempty" yaml:"phandle,omitempty" cbor:"phandle,omitempty"`
	Props    []propDoc `json:"props,omitempty" yaml:"props,omitempty" cbor:"props,omitempty"`
	Children []nodeDoc `json:"children,omitempty" yaml:"children,omitempty" cbor:"children,omitempty"`
}

// propDoc is a property in JSON, YAML and CBOR output.
type propDoc struct {
	Name   string `json:"name" yaml:"name" cbor:"name"`
	Format string `json:"format" yaml:"format" cbor:"format"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty" cbor:"value,omitempty"`
}

func (p *Printer) buildDoc(id types.NodeID, depth int, recursive bool) nodeDoc {
	n := p.node(id)
	doc := nodeDoc{
		Name:    n.Name(),
		Path:    n.Path.String(),
		Phandle: n.Phandle,
	}
	if !n.Parent.Valid() {
		doc.Name = "/"
	}

	for _, prop := range n.Props {
		v := p.decode(id, prop)
		pd := propDoc{Name: prop.Name, Format: v.format.String()}
		if p.opts.ShowValues {
			pd.Value = v.data()
		}
		doc.Props = append(doc.Props, pd)
	}

	if recursive && p.descend(depth) {
		for _, child := range p.tree.Children(id) {
			doc.Children = append(doc.Children, p.buildDoc(child, depth+1, true))
		}
	}
	return doc
}

// encode writes v in the configured structured format.
func (p *Printer) encode(v any) error {
	switch p.opts.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", strings.Repeat(" ", p.opts.IndentSize))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.writer, "%s\n", data)
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(p.writer)
		enc.SetIndent(p.opts.IndentSize)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	case FormatCBOR:
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return err
		}
		data, err := em.Marshal(v)
		if err != nil {
			return err
		}
		_, err = p.writer.Write(data)
		return err

	default:
		return fmt.Errorf("printer: format %q is not structured", p.opts.Format)
	}
}

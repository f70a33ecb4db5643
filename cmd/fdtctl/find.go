package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/fdt/printer"
	"github.com/spf13/cobra"
)

var findCBOR string

func init() {
	cmd := newFindCmd()
	cmd.Flags().StringVar(&findCBOR, "cbor", "", "Also write the resources as CBOR to this file")
	rootCmd.AddCommand(cmd)
}

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <dtb> <prefix>",
		Short: "List resources of nodes whose name starts with a prefix",
		Long: `The find command lists the memory range and interrupt number of every
node whose unit name starts with the given prefix. The match is byte-wise:
"uart" matches "uart@10000000" and "uart0".

Example:
  fdtctl find virt.dtb virtio_mmio@
  fdtctl find virt.dtb memory@ --json
  fdtctl find virt.dtb plic@ --cbor plic.cbor`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(args)
		},
	}
	return cmd
}

func runFind(args []string) error {
	tree, err := openTree(args[0])
	if err != nil {
		return err
	}
	defer tree.Close()

	res, err := tree.FindByPrefix(args[1])
	if err != nil {
		return fmt.Errorf("failed to decode resources: %w", err)
	}
	printVerbose("Matched %d node(s)\n", len(res))

	if findCBOR != "" {
		if err := writeCBOR(tree, res, findCBOR); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(res)
	}
	if quiet {
		return nil
	}
	return printResources(tree, res)
}

func printResources(tree *fdt.Tree, res []fdt.Resource) error {
	return printer.New(tree, os.Stdout, printer.DefaultOptions()).PrintResources(res)
}

func writeCBOR(tree *fdt.Tree, res []fdt.Resource, path string) error {
	var buf bytes.Buffer
	opts := printer.DefaultOptions()
	opts.Format = printer.FormatCBOR
	if err := printer.New(tree, &buf, opts).PrintResources(res); err != nil {
		return fmt.Errorf("failed to encode resources: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	printVerbose("Wrote %d bytes to %s\n", buf.Len(), path)
	return nil
}

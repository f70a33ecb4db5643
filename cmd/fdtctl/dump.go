package main

import (
	"os"

	"github.com/joshuapare/fdtkit/fdt/printer"
	"github.com/spf13/cobra"
)

var (
	dumpNode   string
	dumpDepth  int
	dumpFormat string
	dumpNames  bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpNode, "node", "/", "Dump only the subtree at this path")
	cmd.Flags().IntVar(&dumpDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().StringVar(&dumpFormat, "format", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&dumpNames, "names-only", false, "List property names without values")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <dtb>",
		Short: "Print the decoded tree",
		Long: `The dump command prints the decoded tree in dts-like text or as a
structured document. Property values are rendered according to their name;
values of unknown properties are shown as strings, cells or bytes.

Example:
  fdtctl dump virt.dtb
  fdtctl dump virt.dtb --node /soc --depth 2
  fdtctl dump virt.dtb --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	format := dumpFormat
	if jsonOut {
		format = string(printer.FormatJSON)
	}
	f, err := printer.ParseFormat(format)
	if err != nil {
		return err
	}

	tree, err := openTree(args[0])
	if err != nil {
		return err
	}
	defer tree.Close()

	opts := printer.DefaultOptions()
	opts.Format = f
	opts.MaxDepth = dumpDepth
	opts.ShowValues = !dumpNames

	return printer.New(tree, os.Stdout, opts).PrintTree(dumpNode)
}

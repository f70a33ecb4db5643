package main

import (
	"fmt"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPathCmd())
}

func newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <dtb> <path>",
		Short: "Show the resources of the node at an exact path",
		Long: `The path command looks up a node by its full path and prints its
memory range and interrupt number, when present.

Example:
  fdtctl path virt.dtb /soc/uart@10000000
  fdtctl path virt.dtb /memory@80000000 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(args)
		},
	}
	return cmd
}

func runPath(args []string) error {
	tree, err := openTree(args[0])
	if err != nil {
		return err
	}
	defer tree.Close()

	r, err := tree.ResourceByPath(args[1])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[1], err)
	}

	if jsonOut {
		return printJSON(r)
	}
	if quiet {
		return nil
	}
	return printResources(tree, []fdt.Resource{r})
}

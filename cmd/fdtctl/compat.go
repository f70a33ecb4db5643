package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCompatCmd())
}

func newCompatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compat <dtb> <compatible>",
		Short: "List nodes that are compatible with a device",
		Long: `The compat command lists the path of every node whose compatible
property contains the given string.

Example:
  fdtctl compat virt.dtb virtio,mmio
  fdtctl compat virt.dtb ns16550a --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompat(args)
		},
	}
	return cmd
}

func runCompat(args []string) error {
	tree, err := openTree(args[0])
	if err != nil {
		return err
	}
	defer tree.Close()

	ids := tree.FindCompatible(args[1])
	paths := make([]string, 0, len(ids))
	for _, id := range ids {
		paths = append(paths, tree.PathString(id))
	}

	if jsonOut {
		return printJSON(paths)
	}
	for _, p := range paths {
		printInfo("%s\n", p)
	}
	return nil
}

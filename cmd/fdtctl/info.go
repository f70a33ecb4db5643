package main

import (
	"fmt"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/fdt/walker"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <dtb>",
		Short: "Validate a blob and report header and structure statistics",
		Long: `The info command decodes a device tree blob and displays its header
fields, token counts and the size of the decoded node and phandle tables.

Example:
  fdtctl info virt.dtb
  fdtctl info virt.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// BlobInfo is the info command's JSON document.
type BlobInfo struct {
	File            string `json:"file"`
	TotalSize       uint32 `json:"total_size"`
	Version         uint32 `json:"version"`
	LastCompVersion uint32 `json:"last_comp_version"`
	BootCPUIDPhys   uint32 `json:"boot_cpuid_phys"`
	StructSize      uint32 `json:"struct_size"`
	StringsSize     uint32 `json:"strings_size"`

	Nodes     int `json:"nodes"`
	Phandles  int `json:"phandles"`
	Props     int `json:"props"`
	PropBytes int `json:"prop_bytes"`
	MaxDepth  int `json:"max_depth"`
}

func runInfo(args []string) error {
	path := args[0]

	tree, err := openTree(path)
	if err != nil {
		return err
	}
	defer tree.Close()

	stats, err := tokenStats(tree)
	if err != nil {
		return fmt.Errorf("failed to count tokens: %w", err)
	}

	h := tree.Header()
	info := BlobInfo{
		File:            path,
		TotalSize:       h.TotalSize,
		Version:         h.Version,
		LastCompVersion: h.LastCompVersion,
		BootCPUIDPhys:   h.BootCPUIDPhys,
		StructSize:      h.SizeDtStruct,
		StringsSize:     h.SizeDtStrings,
		Nodes:           tree.Len(),
		Phandles:        tree.PhandleCount(),
		Props:           stats.Props,
		PropBytes:       stats.PropBytes,
		MaxDepth:        stats.MaxDepth,
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nBlob Information:\n")
	printInfo("  File: %s\n", info.File)
	printInfo("  Size: %d bytes\n", info.TotalSize)
	printInfo("  Version: %d (compatible with %d)\n", info.Version, info.LastCompVersion)
	printInfo("  Boot CPU: %d\n", info.BootCPUIDPhys)
	printInfo("  Structure block: %d bytes\n", info.StructSize)
	printInfo("  Strings block: %d bytes\n", info.StringsSize)

	printInfo("\nStructure:\n")
	printInfo("  Nodes: %d\n", info.Nodes)
	printInfo("  Properties: %d (%d bytes)\n", info.Props, info.PropBytes)
	printInfo("  Phandles: %d\n", info.Phandles)
	printInfo("  Max depth: %d\n", info.MaxDepth)

	return nil
}

// tokenStats re-walks the structure block of an already validated tree.
func tokenStats(tree *fdt.Tree) (*walker.TokenStats, error) {
	blob := tree.Bytes()
	blocks, err := tree.Header().Blocks(blob)
	if err != nil {
		return nil, err
	}
	return walker.Count(walker.New(blocks, maxDepth))
}

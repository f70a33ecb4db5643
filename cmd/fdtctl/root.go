package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/pkg/types"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	maxNodes int
	maxProps int
	maxDepth int
)

var rootCmd = &cobra.Command{
	Use:   "fdtctl",
	Short: "Inspect Flattened Device Tree blobs",
	Long: `fdtctl decodes Flattened Device Tree (DTB) blobs and reports the
memory ranges and interrupt numbers of the devices they describe.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVar(&maxNodes, "max-nodes", types.DefaultMaxNodes, "Node table capacity")
	rootCmd.PersistentFlags().
		IntVar(&maxProps, "max-props", types.DefaultMaxPropsPerNode, "Property capacity per node")
	rootCmd.PersistentFlags().
		IntVar(&maxDepth, "max-depth", types.DefaultMaxDepth, "Maximum node nesting depth")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openTree opens a blob with the limits and logger selected by global flags.
func openTree(path string) (*fdt.Tree, error) {
	printVerbose("Opening blob: %s\n", path)
	tree, err := fdt.Open(path, &fdt.Options{
		Limits: types.Limits{
			MaxNodes:        maxNodes,
			MaxPropsPerNode: maxProps,
			MaxDepth:        maxDepth,
			MaxPhandles:     maxNodes,
		},
		Logger: newLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return tree, nil
}

// newLogger logs decoder progress to stderr in verbose mode and discards it
// otherwise.
func newLogger() *slog.Logger {
	if !verbose || quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

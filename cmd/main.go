package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "pixz",
		Short: "Run pixel operations on image files",
		Long: `pixz is a CLI tool for running pixz pipelines over image files.

List the registered operations, inspect the host's vector features, and
apply chains of operations to PNG, JPEG, GIF, BMP, TIFF or WebP images.`,
		Version: version,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add commands
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(featuresCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered operations",
	Long:  "Display the names accepted by --op, in alphabetical order.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("Available operations:")
		cmd.Println()
		for _, name := range operationNames() {
			cmd.Printf("  %-10s %s\n", name, operationUsage[name])
		}
	},
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show detected CPU vector features",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(pixzFeatures())
	},
}

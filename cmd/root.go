// Package cmd implements the CLI commands for richtree using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "richtree",
	Short: "Convert Markdown with embedded HTML into a rich document tree",
	Long: `richtree parses Markdown, converts embedded HTML tags into document nodes
and marks, and writes the resulting tree as JSON, HTML, Markdown, or PDF.

Usage:
  richtree convert <path|url> [flags]`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

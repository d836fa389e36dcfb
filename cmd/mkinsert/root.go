package main

import (
	"fmt"

	"github.com/darianmavgo/mkinsert/converters"
	_ "github.com/darianmavgo/mkinsert/converters/all"
	"github.com/darianmavgo/mkinsert/logging"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:   "mkinsert",
		Short: "Generate SQL INSERT statements from tabular files",
		Long: `mkinsert reads a CSV, XLSX, HTML or Markdown table, maps its columns to
target columns and writes one INSERT statement per data row.

Column mappings come from a job file (see "mkinsert init") or are derived
from the header row and adjusted with flags.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logging.Setup(cmd.ErrOrStderr(), logLevel, logFormat)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text|json)")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDriversCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List input drivers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range converters.Drivers() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mkinsert v%s\n", Version)
		},
	}
}

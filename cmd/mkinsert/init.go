package main

import (
	"fmt"
	"os"

	"github.com/darianmavgo/mkinsert/config"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		flags jobFlags
		out   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init <input>",
		Short: "Write a job file with one column block per header column",
		Long: `Init reads the header of <input> and writes an HCL job file describing
the current settings and one column block per column. Edit it and pass it
back with --config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := loadJob(cmd.Context(), args[0], cmd.InOrStdin(), &flags, cmd.Flags())
			if err != nil {
				return err
			}

			cfg := j.cfg.FromMappings(j.mappings)
			cfg.HeaderRow = j.headerRow
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(cfg.Bytes())
				return err
			}

			if _, err := os.Stat(out); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", out)
			}
			if err := config.Export(out, cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d columns\n", out, len(cfg.Columns))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "mkinsert.hcl", `Job file to write ("-" for stdout)`)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing job file")
	return cmd
}

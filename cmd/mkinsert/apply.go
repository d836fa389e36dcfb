package main

import (
	"fmt"
	"os"

	"github.com/darianmavgo/mkinsert/converters"

	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var (
		flags jobFlags
		opts  converters.ApplyOptions
	)

	cmd := &cobra.Command{
		Use:   "apply <input> <database>",
		Short: "Generate the script and run it against a SQLite database",
		Long: `Apply generates the script for <input> and executes it in one transaction
against the SQLite file <database>, which is created if missing.

Statements use the selected verb as-is, so pick one SQLite understands
(INSERT, INSERT OR IGNORE, INSERT OR REPLACE, REPLACE).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := loadJob(cmd.Context(), args[0], cmd.InOrStdin(), &flags, cmd.Flags())
			if err != nil {
				return err
			}
			res, err := j.generate()
			if err != nil {
				return err
			}

			script := converters.Script{
				Table:      res.Table,
				Statements: res.Statements,
				Columns:    res.Columns,
			}
			for _, m := range j.mappings {
				if m.Include {
					script.Types = append(script.Types, m.Type.String())
				}
			}

			db, err := os.OpenFile(args[1], os.O_RDWR|os.O_CREATE, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open database file: %w", err)
			}
			defer db.Close()

			applied, err := converters.ApplyToSQLite(cmd.Context(), script, db, &opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d of %d statements to %s (table %s)\n",
				applied, res.Count, args[1], res.Table)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.CreateTable, "create-table", false, "Create the target table from the mappings if it does not exist")
	cmd.Flags().BoolVar(&opts.LogErrors, "log-errors", false, "Record failing statements in "+converters.ErrorTable+" instead of aborting")
	return cmd
}

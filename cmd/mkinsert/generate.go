package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/darianmavgo/mkinsert/generator"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		flags jobFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "generate <input>",
		Short: "Write INSERT statements for every data row",
		Long: `Generate reads <input> ("-" for stdin) and writes the SQL script.

The first line of the script is a summary comment; every other line is one
statement. Use --out to write a file: "auto" names it <table>.sql in the
current directory, and a directory gets <table>.sql inside it.`,
		Example: `  mkinsert generate people.csv --table people --column age:INT
  mkinsert generate export.xlsx --config job.hcl --out auto
  cat data.txt | mkinsert generate - --delimiter tab --fixed source=import`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := loadJob(cmd.Context(), args[0], cmd.InOrStdin(), &flags, cmd.Flags())
			if err != nil {
				return err
			}
			res, err := j.generate()
			if err != nil {
				return err
			}
			return writeScript(cmd.OutOrStdout(), out, res)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "", `Output file, directory or "auto" (default: stdout)`)
	return cmd
}

// scriptPath resolves the --out value to a file path, or "" for stdout.
func scriptPath(out, table string) string {
	switch out {
	case "", "-":
		return ""
	case "auto":
		return table + ".sql"
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, table+".sql")
	}
	return out
}

func writeScript(stdout io.Writer, out string, res *generator.Result) error {
	path := scriptPath(out, res.Table)
	if path == "" {
		_, err := res.WriteTo(stdout)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := res.WriteTo(f); err != nil {
		return err
	}
	slog.Info("script written", "path", path, "table", res.Table, "statements", res.Count)
	_, _ = fmt.Fprintf(stdout, "Wrote %d %s statements to %s\n", res.Count, res.Verb, path)
	return nil
}

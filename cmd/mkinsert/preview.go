package main

import (
	"fmt"
	"io"

	"github.com/darianmavgo/mkinsert/converters/common"
	"github.com/darianmavgo/mkinsert/mapping"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var (
		flags jobFlags
		rows  int
	)

	cmd := &cobra.Command{
		Use:   "preview <input>",
		Short: "Show the parsed header, first rows and column mappings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 {
				return fmt.Errorf("invalid --rows %d, must not be negative", rows)
			}
			j, err := loadJob(cmd.Context(), args[0], cmd.InOrStdin(), &flags, cmd.Flags())
			if err != nil {
				return err
			}
			renderPreview(cmd.OutOrStdout(), j, rows)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVarP(&rows, "rows", "n", 5, "Data rows to show")
	return cmd
}

func renderPreview(w io.Writer, j *job, limit int) {
	columns := 0
	for _, r := range j.rows {
		columns = max(columns, len(r))
	}

	_, _ = fmt.Fprintf(w, "Input: %s (%s, table %s)\n", j.input, j.driver, j.source)
	if j.delimiter != 0 {
		_, _ = fmt.Fprintf(w, "Delimiter: %s\n", common.DelimiterName(j.delimiter))
	}
	_, _ = fmt.Fprintf(w, "Rows: %d, Columns: %d, Header row: %d\n", len(j.rows), columns, j.headerRow)

	data := j.rows
	if j.headerRow > 0 {
		data = data[min(j.headerRow, len(data)):]
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if j.header != nil {
		t.AppendHeader(toRow(j.header))
	}
	for i, r := range data {
		if i >= limit {
			break
		}
		t.AppendRow(toRow(r))
	}
	t.Render()
	if len(data) > limit {
		_, _ = fmt.Fprintf(w, "(%d of %d data rows)\n", limit, len(data))
	} else {
		_, _ = fmt.Fprintf(w, "(%d data rows)\n", len(data))
	}

	renderMappings(w, j.mappings)
}

func renderMappings(w io.Writer, mappings []mapping.ColumnMapping) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Target", "Source", "Type", "Fixed", "Include"})
	for i, m := range mappings {
		source := m.SourceName
		if m.Synthetic {
			source = "(synthetic)"
		}
		include := "yes"
		if !m.Include {
			include = "no"
		}
		t.AppendRow(table.Row{i + 1, mapping.NormalizeIdentifier(m.TargetName), source, m.Type.String(), m.FixedValue, include})
	}
	t.Render()
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

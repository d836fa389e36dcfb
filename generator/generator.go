// Package generator turns parsed rows and a column mapping into INSERT-style
// SQL statements.
//
// Generate is a pure function: the same rows and request always produce the
// same script, and no state is kept between calls.
package generator

import (
	"fmt"
	"io"
	"strings"

	"github.com/darianmavgo/mkinsert/converters/common"
	"github.com/darianmavgo/mkinsert/mapping"
)

// MaxRows is the ceiling on data rows converted per call. Rows past it are
// dropped without error.
const MaxRows = 10000

// Request describes one generation run.
type Request struct {
	Table string // Target table; blank means common.DefaultTableName
	Verb  string // Statement verb, e.g. INSERT or INSERT IGNORE; blank means DefaultVerb
	// HeaderRow is the 1-based index of the header row. Only rows after it
	// are data. Zero means there is no header row. An index past the end
	// leaves no data rows.
	HeaderRow int
	// MaxRows caps the data rows converted. Zero, negative and values above
	// the package MaxRows all mean MaxRows.
	MaxRows  int
	Mappings []mapping.ColumnMapping // In emission order
}

// Result is the generated script.
type Result struct {
	Comment    string   // Summary line, e.g. "-- Generated 2 INSERT statements for table people"
	Statements []string // One statement per data row, in row order
	Count      int
	Table      string
	Verb       string
	Columns    []string // Emitted column identifiers
}

// Generate builds one statement per data row of rows.
//
// It fails with a *ConfigError (matching ErrNoUsableColumns or
// ErrEmptyIdentifier) when the mappings cannot produce valid statements; no
// partial output is returned in that case.
func Generate(rows [][]string, req Request) (*Result, error) {
	table := strings.TrimSpace(req.Table)
	if table == "" {
		table = common.DefaultTableName
	}
	verb := strings.TrimSpace(req.Verb)
	if verb == "" {
		verb = DefaultVerb
	}

	used, columns, err := resolveColumns(req.Mappings)
	if err != nil {
		return nil, err
	}

	window := dataWindow(rows, req.HeaderRow, req.MaxRows)

	prefix := fmt.Sprintf("%s INTO %s (%s) VALUES (", verb, table, strings.Join(columns, ", "))
	statements := make([]string, 0, len(window))
	var sb strings.Builder
	for _, row := range window {
		sb.Reset()
		sb.WriteString(prefix)
		for i, m := range used {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Quote(valueFor(m, row), m.Type))
		}
		sb.WriteString(");")
		statements = append(statements, sb.String())
	}

	return &Result{
		Comment:    fmt.Sprintf("-- Generated %d %s statements for table %s", len(statements), verb, table),
		Statements: statements,
		Count:      len(statements),
		Table:      table,
		Verb:       verb,
		Columns:    columns,
	}, nil
}

// resolveColumns filters the included mappings and normalizes their target
// names.
func resolveColumns(mappings []mapping.ColumnMapping) ([]mapping.ColumnMapping, []string, error) {
	var (
		used    []mapping.ColumnMapping
		columns []string
	)
	for i, m := range mappings {
		if !m.Include {
			continue
		}
		name := mapping.NormalizeIdentifier(m.TargetName)
		if name == "" {
			return nil, nil, &ConfigError{
				Code:    ErrCodeEmptyIdentifier,
				Message: ErrEmptyIdentifier.Message,
				Index:   i,
				Source:  m.SourceName,
			}
		}
		used = append(used, m)
		columns = append(columns, name)
	}
	if len(used) == 0 {
		return nil, nil, ErrNoUsableColumns
	}
	return used, columns, nil
}

// dataWindow returns the rows after the 1-based header row, capped at
// limit (see Request.MaxRows).
func dataWindow(rows [][]string, headerRow, limit int) [][]string {
	if limit <= 0 || limit > MaxRows {
		limit = MaxRows
	}
	start := headerRow
	if start < 0 {
		start = 0
	}
	if start >= len(rows) {
		return nil
	}
	end := len(rows)
	if end-start > limit {
		end = start + limit
	}
	return rows[start:end]
}

// valueFor picks the raw value of m for one data row. A fixed value always
// wins; synthetic columns without one are empty; otherwise the field at the
// mapping's source position, or empty when the row is too short.
func valueFor(m mapping.ColumnMapping, row []string) string {
	if m.FixedValue != "" {
		return m.FixedValue
	}
	if m.Synthetic || m.SourceColumn == nil {
		return ""
	}
	idx := *m.SourceColumn
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Lines returns the summary comment followed by every statement.
func (r *Result) Lines() []string {
	lines := make([]string, 0, len(r.Statements)+1)
	lines = append(lines, r.Comment)
	return append(lines, r.Statements...)
}

// String returns the script as shown to users: the comment line, a newline,
// and the statements separated by newlines.
func (r *Result) String() string {
	return r.Comment + "\n" + strings.Join(r.Statements, "\n")
}

// WriteTo writes the script to w with every line newline-terminated, as
// saved to a .sql file.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range r.Lines() {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write script: %w", err)
		}
	}
	return total, nil
}

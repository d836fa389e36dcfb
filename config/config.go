// Package config loads and writes mkinsert job files.
//
// A job file is HCL:
//
//	delimiter  = ","
//	header_row = 1
//	table      = "people"
//	verb       = "INSERT"
//
//	column "name" {
//	  type = "TEXT"
//	}
//
//	column "age" {
//	  source = "Age (years)"
//	  type   = "INT"
//	}
//
//	column "batch" {
//	  synthetic = true
//	  fixed     = "7"
//	  type      = "INT"
//	}
//
// Without column blocks every header column is emitted as TEXT.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/darianmavgo/mkinsert/converters/common"
	"github.com/darianmavgo/mkinsert/generator"
	"github.com/darianmavgo/mkinsert/mapping"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Config represents one generation job.
type Config struct {
	Delimiter     string   `hcl:"delimiter,optional"`
	HeaderRow     int      `hcl:"header_row,optional"`
	Table         string   `hcl:"table,optional"`
	Verb          string   `hcl:"verb,optional"`
	Encoding      string   `hcl:"encoding,optional"`
	Sheet         string   `hcl:"sheet,optional"`
	MaxRows       int      `hcl:"max_rows,optional"`
	SanitizeNames bool     `hcl:"sanitize_names,optional"`
	Columns       []Column `hcl:"column,block"`
}

// Column is one target column. The block label is the target name.
type Column struct {
	Name string `hcl:"name,label"`
	// Source is the header text to read from. Defaults to Name.
	Source string `hcl:"source,optional"`
	// SourceIndex is the 0-based source position. Wins over Source.
	SourceIndex *int   `hcl:"source_index,optional"`
	Type        string `hcl:"type,optional"`
	Fixed       string `hcl:"fixed,optional"`
	Include     *bool  `hcl:"include,optional"`
	Synthetic   bool   `hcl:"synthetic,optional"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Delimiter: "auto",
		HeaderRow: 1,
		Table:     common.DefaultTableName,
		Verb:      generator.DefaultVerb,
		Encoding:  "utf-8",
		MaxRows:   generator.MaxRows,
	}
}

// Load reads the configuration from the given HCL file. Attributes missing
// from the file keep their DefaultConfig values.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(content, path)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(content []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that can be checked without the input data.
func (c *Config) Validate() error {
	if _, err := common.ParseDelimiter(c.Delimiter); err != nil {
		return fmt.Errorf("invalid delimiter: %w", err)
	}
	if c.HeaderRow < 0 {
		return fmt.Errorf("header_row must not be negative, got %d", c.HeaderRow)
	}
	if c.MaxRows < 0 || c.MaxRows > generator.MaxRows {
		return fmt.Errorf("max_rows must be between 0 and %d, got %d", generator.MaxRows, c.MaxRows)
	}
	if _, err := generator.ParseVerb(c.Verb); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		key := strings.ToLower(mapping.NormalizeIdentifier(col.Name))
		if key == "" {
			return fmt.Errorf("column %q: name is empty", col.Name)
		}
		if seen[key] {
			return fmt.Errorf("column %q: declared twice", col.Name)
		}
		seen[key] = true

		if col.Type != "" && mapping.ParseSQLType(col.Type) == mapping.TypeUnknown {
			return fmt.Errorf("column %q: unknown type %q", col.Name, col.Type)
		}
		if col.SourceIndex != nil && *col.SourceIndex < 0 {
			return fmt.Errorf("column %q: source_index must not be negative", col.Name)
		}
		if col.Synthetic && (col.Source != "" || col.SourceIndex != nil) {
			return fmt.Errorf("column %q: synthetic columns have no source", col.Name)
		}
	}
	return nil
}

// Mappings builds the column mappings for a header row. Without column
// blocks the mappings are derived from the header. A column whose source
// is not in the header is an error.
func (c *Config) Mappings(header []string) ([]mapping.ColumnMapping, error) {
	if len(c.Columns) == 0 {
		if c.SanitizeNames {
			return mapping.FromHeaderSanitized(header), nil
		}
		return mapping.FromHeader(header), nil
	}

	out := make([]mapping.ColumnMapping, 0, len(c.Columns))
	for _, col := range c.Columns {
		m := mapping.ColumnMapping{
			TargetName: col.Name,
			Type:       mapping.ParseSQLType(col.Type),
			FixedValue: col.Fixed,
			Include:    col.Include == nil || *col.Include,
			Synthetic:  col.Synthetic,
		}
		if m.Type == mapping.TypeUnknown {
			m.Type = mapping.TypeText
		}

		switch {
		case col.Synthetic:
		case col.SourceIndex != nil:
			m.SourceColumn = mapping.Column(*col.SourceIndex)
			if *col.SourceIndex < len(header) {
				m.SourceName = header[*col.SourceIndex]
			}
		default:
			source := col.Source
			if source == "" {
				source = col.Name
			}
			idx := indexOf(header, source)
			if idx < 0 {
				return nil, fmt.Errorf("column %q: source %q not found in header", col.Name, source)
			}
			m.SourceName = header[idx]
			m.SourceColumn = mapping.Column(idx)
		}
		out = append(out, m)
	}
	return out, nil
}

// indexOf finds name in header, first exactly, then ignoring case and
// surrounding space.
func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	name = strings.TrimSpace(name)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// FromMappings returns a copy of c whose column blocks describe mappings.
func (c *Config) FromMappings(mappings []mapping.ColumnMapping) *Config {
	out := *c
	out.Columns = make([]Column, 0, len(mappings))
	for _, m := range mappings {
		col := Column{
			Name:      m.TargetName,
			Type:      m.Type.String(),
			Fixed:     m.FixedValue,
			Synthetic: m.Synthetic,
		}
		if !m.Synthetic {
			col.Source = m.SourceName
			if m.SourceColumn != nil {
				col.SourceIndex = mapping.Column(*m.SourceColumn)
			}
		}
		if !m.Include {
			col.Include = new(bool)
		}
		out.Columns = append(out.Columns, col)
	}
	return &out
}

// Bytes renders the configuration as HCL.
func (c *Config) Bytes() []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("delimiter", cty.StringVal(c.Delimiter))
	root.SetAttributeValue("header_row", cty.NumberIntVal(int64(c.HeaderRow)))
	root.SetAttributeValue("table", cty.StringVal(c.Table))
	root.SetAttributeValue("verb", cty.StringVal(c.Verb))
	root.SetAttributeValue("encoding", cty.StringVal(c.Encoding))
	if c.Sheet != "" {
		root.SetAttributeValue("sheet", cty.StringVal(c.Sheet))
	}
	root.SetAttributeValue("max_rows", cty.NumberIntVal(int64(c.MaxRows)))
	if c.SanitizeNames {
		root.SetAttributeValue("sanitize_names", cty.True)
	}

	for _, col := range c.Columns {
		root.AppendNewline()
		body := root.AppendNewBlock("column", []string{col.Name}).Body()
		if col.Source != "" {
			body.SetAttributeValue("source", cty.StringVal(col.Source))
		}
		if col.SourceIndex != nil {
			body.SetAttributeValue("source_index", cty.NumberIntVal(int64(*col.SourceIndex)))
		}
		if col.Type != "" {
			body.SetAttributeValue("type", cty.StringVal(col.Type))
		}
		if col.Fixed != "" {
			body.SetAttributeValue("fixed", cty.StringVal(col.Fixed))
		}
		if col.Include != nil {
			body.SetAttributeValue("include", cty.BoolVal(*col.Include))
		}
		if col.Synthetic {
			body.SetAttributeValue("synthetic", cty.True)
		}
	}
	return f.Bytes()
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(cfg.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}

	return nil
}

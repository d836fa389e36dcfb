package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/darianmavgo/mkinsert/config"
	"github.com/darianmavgo/mkinsert/converters"
	"github.com/darianmavgo/mkinsert/converters/common"
	"github.com/darianmavgo/mkinsert/generator"
	"github.com/darianmavgo/mkinsert/mapping"

	"github.com/spf13/pflag"
)

// headerScanRows bounds the rows inspected by --detect-header.
const headerScanRows = 10

// jobFlags are the input and mapping flags shared by generate, preview,
// apply and init. Flags that were set override the job file.
type jobFlags struct {
	configPath   string
	driver       string
	delimiter    string
	encoding     string
	sheet        string
	table        string
	verb         string
	headerRow    int
	detectHeader bool
	maxRows      int
	sanitize     bool
	readTimeout  time.Duration
	columns      []string
	exclude      []string
	fixed        []string
	add          []string
}

func (f *jobFlags) register(fs *pflag.FlagSet) {
	def := config.DefaultConfig()
	fs.StringVarP(&f.configPath, "config", "c", "", "HCL job file")
	fs.StringVar(&f.driver, "driver", "", "Input driver (default: from the file extension)")
	fs.StringVarP(&f.delimiter, "delimiter", "d", def.Delimiter, `Field delimiter: "," ";" "|" "\t", a name (comma, tab...) or auto`)
	fs.StringVar(&f.encoding, "encoding", def.Encoding, "Input text encoding (utf-8, windows-1250, iso-8859-2...)")
	fs.StringVar(&f.sheet, "sheet", "", "Sheet (XLSX) or table id (HTML) to read; default the first")
	fs.StringVarP(&f.table, "table", "t", def.Table, "Target table name")
	fs.StringVar(&f.verb, "verb", def.Verb, "Statement verb: "+strings.Join(generator.Verbs, ", "))
	fs.IntVar(&f.headerRow, "header-row", def.HeaderRow, "1-based header row; 0 means no header")
	fs.BoolVar(&f.detectHeader, "detect-header", false, "Guess the header row from the first rows")
	fs.IntVar(&f.maxRows, "max-rows", def.MaxRows, "Maximum data rows to convert")
	fs.BoolVar(&f.sanitize, "sanitize-names", false, "Derive lower snake case target names from the header")
	fs.DurationVar(&f.readTimeout, "read-timeout", 0, "Abort when the input produces no data for this long (0 disables)")
	fs.StringArrayVar(&f.columns, "column", nil, "Set a column type, name:TYPE (repeatable)")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "Leave a column out (repeatable)")
	fs.StringArrayVar(&f.fixed, "fixed", nil, "Use a fixed value for a column, name=value (repeatable)")
	fs.StringArrayVar(&f.add, "add", nil, "Add a synthetic column, name=value (repeatable)")
}

// config loads the job file, or the defaults, and applies changed flags.
func (f *jobFlags) config(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
		slog.Debug("loaded job file", "path", f.configPath, "columns", len(cfg.Columns))
	}

	if fs.Changed("delimiter") {
		cfg.Delimiter = f.delimiter
	}
	if fs.Changed("encoding") {
		cfg.Encoding = f.encoding
	}
	if fs.Changed("sheet") {
		cfg.Sheet = f.sheet
	}
	if fs.Changed("table") {
		cfg.Table = f.table
	}
	if fs.Changed("verb") {
		cfg.Verb = f.verb
	}
	if fs.Changed("header-row") {
		cfg.HeaderRow = f.headerRow
	}
	if fs.Changed("max-rows") {
		cfg.MaxRows = f.maxRows
	}
	if fs.Changed("sanitize-names") {
		cfg.SanitizeNames = f.sanitize
	}

	verb, err := generator.ParseVerb(cfg.Verb)
	if err != nil {
		return nil, err
	}
	cfg.Verb = verb

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// job is a loaded input with its resolved mappings.
type job struct {
	cfg       *config.Config
	input     string
	driver    string
	source    string // Provider table the rows came from
	delimiter rune   // Resolved delimiter, CSV input only
	rows      [][]string
	headerRow int
	header    []string
	mappings  []mapping.ColumnMapping
}

// loadJob reads input ("-" for stdin) and resolves the mappings.
func loadJob(ctx context.Context, input string, stdin io.Reader, f *jobFlags, fs *pflag.FlagSet) (*job, error) {
	cfg, err := f.config(fs)
	if err != nil {
		return nil, err
	}

	driver := f.driver
	if driver == "" {
		driver = converters.DriverForPath(input)
	}

	var r io.Reader = stdin
	if input != "-" {
		file, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		r = file
	}

	data, err := common.ReadAll(ctx, r, f.readTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	delimiter, err := common.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	provider, err := converters.Open(driver, bytes.NewReader(data), &common.ConversionConfig{
		Delimiter: delimiter,
		TableName: cfg.Table,
		Encoding:  cfg.Encoding,
		Sheet:     cfg.Sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize converter: %w", err)
	}

	selector := cfg.Sheet
	if len(provider.GetTableNames()) == 1 {
		selector = ""
	}
	source, err := converters.SelectTable(provider, selector)
	if err != nil {
		return nil, err
	}

	j := &job{
		cfg:       cfg,
		input:     input,
		driver:    driver,
		source:    source,
		rows:      provider.GetRows(source),
		headerRow: cfg.HeaderRow,
	}
	if c, ok := provider.(interface{ DelimiterUsed() rune }); ok {
		j.delimiter = c.DelimiterUsed()
	}
	if f.detectHeader && len(j.rows) > 0 {
		j.headerRow = common.AssessHeaderRow(j.rows, headerScanRows) + 1
	}
	j.header = mapping.HeaderAt(j.rows, j.headerRow)

	slog.Info("input loaded", "input", input, "driver", driver, "table", source, "rows", len(j.rows), "header_row", j.headerRow)

	if j.mappings, err = cfg.Mappings(j.header); err != nil {
		return nil, err
	}
	if j.mappings, err = f.applyOverrides(j.mappings); err != nil {
		return nil, err
	}
	return j, nil
}

// applyOverrides applies --column, --exclude, --fixed and --add in that order.
func (f *jobFlags) applyOverrides(mappings []mapping.ColumnMapping) ([]mapping.ColumnMapping, error) {
	find := func(name string) (int, error) {
		i := mapping.Find(mappings, name)
		if i < 0 {
			return -1, fmt.Errorf("unknown column %q", name)
		}
		return i, nil
	}

	for _, arg := range f.columns {
		name, typeName, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("invalid --column %q, want name:TYPE", arg)
		}
		typ := mapping.ParseSQLType(typeName)
		if typ == mapping.TypeUnknown {
			return nil, fmt.Errorf("invalid --column %q: unknown type %q", arg, typeName)
		}
		i, err := find(name)
		if err != nil {
			return nil, err
		}
		mappings[i].Type = typ
	}

	for _, name := range f.exclude {
		i, err := find(name)
		if err != nil {
			return nil, err
		}
		mappings[i].Include = false
	}

	for _, arg := range f.fixed {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --fixed %q, want name=value", arg)
		}
		i, err := find(name)
		if err != nil {
			return nil, err
		}
		mappings[i].FixedValue = value
	}

	for _, arg := range f.add {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --add %q, want name=value", arg)
		}
		if mapping.Find(mappings, name) >= 0 {
			return nil, fmt.Errorf("invalid --add %q: column already exists", arg)
		}
		mappings = append(mappings, mapping.Synthetic(name, value))
	}
	return mappings, nil
}

// generate runs the generator for the job.
func (j *job) generate() (*generator.Result, error) {
	return generator.Generate(j.rows, generator.Request{
		Table:     j.cfg.Table,
		Verb:      j.cfg.Verb,
		HeaderRow: j.headerRow,
		MaxRows:   j.cfg.MaxRows,
		Mappings:  j.mappings,
	})
}

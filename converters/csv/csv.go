package csv

import (
	"fmt"
	"io"

	"github.com/darianmavgo/mkinsert/converters"
	"github.com/darianmavgo/mkinsert/converters/common"
)

func init() {
	converters.Register("csv", &csvDriver{})
}

type csvDriver struct{}

func (d *csvDriver) Open(source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	return NewCSVConverterWithConfig(source, config)
}

// CSVConverter holds the rows tokenized from one CSV input.
type CSVConverter struct {
	rows   [][]string
	Config common.ConversionConfig
}

// Ensure CSVConverter implements RowProvider
var _ common.RowProvider = (*CSVConverter)(nil)

// NewCSVConverter reads and tokenizes r with the default configuration.
func NewCSVConverter(r io.Reader) (*CSVConverter, error) {
	return NewCSVConverterWithConfig(r, nil)
}

// NewCSVConverterWithConfig reads all of r, decodes it and tokenizes it.
// A zero Delimiter is detected from the first non-blank line.
func NewCSVConverterWithConfig(r io.Reader, config *common.ConversionConfig) (*CSVConverter, error) {
	cfg := config.WithDefaults()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV input: %w", err)
	}

	text, err := common.Decode(raw, cfg.Encoding)
	if err != nil {
		return nil, err
	}

	return FromText(text, &cfg), nil
}

// FromText tokenizes already decoded text.
func FromText(text string, config *common.ConversionConfig) *CSVConverter {
	cfg := config.WithDefaults()
	if cfg.Delimiter == 0 {
		cfg.Delimiter = common.DetectDelimiter(common.FirstLine(text))
	}

	return &CSVConverter{
		rows:   Tokenize(text, cfg.Delimiter),
		Config: cfg,
	}
}

// GetTableNames implements RowProvider
func (c *CSVConverter) GetTableNames() []string {
	return []string{c.Config.TableName}
}

// GetRows implements RowProvider
func (c *CSVConverter) GetRows(tableName string) [][]string {
	if tableName != c.Config.TableName {
		return nil
	}
	return c.rows
}

// DelimiterUsed returns the delimiter the input was tokenized with, after
// detection.
func (c *CSVConverter) DelimiterUsed() rune {
	return c.Config.Delimiter
}

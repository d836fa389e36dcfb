package common

// DefaultTableName is used when no table name is configured.
const DefaultTableName = "my_table"

// ConversionConfig stores configuration options for reading an input.
type ConversionConfig struct {
	Delimiter rune   // Field delimiter for CSV input; 0 means detect from the first line
	TableName string // Name of the table produced by single-table inputs
	Encoding  string // Source text encoding (see Decode); empty means UTF-8
	Sheet     string // Excel sheet to read; empty means the first sheet
}

// WithDefaults returns a copy of c (or a zero config when c is nil) with
// empty fields filled in.
func (c *ConversionConfig) WithDefaults() ConversionConfig {
	var cfg ConversionConfig
	if c != nil {
		cfg = *c
	}
	if cfg.TableName == "" {
		cfg.TableName = DefaultTableName
	}
	return cfg
}

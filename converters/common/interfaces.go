package common

import "io"

// Driver is implemented by each input format package and registered with
// converters.Register.
type Driver interface {
	// Open parses source into tables of string rows.
	Open(source io.Reader, config *ConversionConfig) (RowProvider, error)
}

// RowProvider exposes the tables parsed from one input.
type RowProvider interface {
	GetTableNames() []string
	// GetRows returns every parsed row of the table, header rows included.
	// The returned rows must not be modified.
	GetRows(tableName string) [][]string
}

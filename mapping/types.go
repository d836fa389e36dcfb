// Package mapping describes how source columns of a parsed table become
// target SQL columns.
//
// A mapping is configuration owned by the caller. It is derived once from a
// header row (see FromHeader), edited freely, and passed to the generator on
// every run. Nothing in this package keeps state between calls.
package mapping

import "strings"

// SQLType is the declared SQL type of a target column. It controls how
// values are written as literals.
type SQLType int

const (
	TypeUnknown SQLType = iota
	TypeText
	TypeInt
	TypeReal
	TypeDate
	TypeInteger
	TypeFloat
	TypeDecimal
)

var typeNames = map[SQLType]string{
	TypeText:    "TEXT",
	TypeInt:     "INT",
	TypeReal:    "REAL",
	TypeDate:    "DATE",
	TypeInteger: "INTEGER",
	TypeFloat:   "FLOAT",
	TypeDecimal: "DECIMAL",
}

// Types lists the types offered for new mappings, in display order.
var Types = []SQLType{TypeText, TypeInt, TypeReal, TypeDate}

// ParseSQLType converts a type name (case-insensitive) into an SQLType.
// Unrecognized names return TypeUnknown, which formats like TEXT.
func ParseSQLType(s string) SQLType {
	name := strings.ToUpper(strings.TrimSpace(s))
	for t, n := range typeNames {
		if n == name {
			return t
		}
	}
	return TypeUnknown
}

// String returns the SQL spelling of the type. TypeUnknown reports TEXT.
func (t SQLType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "TEXT"
}

// IsNumeric reports whether numeric-looking values of this type are written
// unquoted.
func (t SQLType) IsNumeric() bool {
	switch t {
	case TypeInt, TypeInteger, TypeFloat, TypeDecimal:
		return true
	}
	return false
}

// ColumnMapping binds one source column, or a synthetic value, to a target
// column.
type ColumnMapping struct {
	SourceName string  // Header text; empty for synthetic columns
	TargetName string  // Identifier to emit; whitespace runs become underscores
	Type       SQLType // Declared type, drives literal formatting
	FixedValue string  // When non-empty, used for every row instead of source data
	Include    bool    // Excluded mappings contribute neither column nor value
	Synthetic  bool    // No source column; value is FixedValue or empty
	// SourceColumn is the 0-based position of the source field in each row.
	// Nil for synthetic columns.
	SourceColumn *int
}

// Column returns a pointer to i, for use as ColumnMapping.SourceColumn.
func Column(i int) *int {
	return &i
}

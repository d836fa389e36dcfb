package generator

import (
	"database/sql"
	"regexp"
	"strings"

	"github.com/darianmavgo/mkinsert/mapping"
)

// numericLiteral matches integers, decimals and scientific notation. Hex,
// Inf and NaN are deliberately not numeric literals here.
var numericLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// SafeSQL formats value as an SQL literal for a column of type t.
//
//   - NULL (value.Valid == false) becomes NULL, unquoted.
//   - The empty string becomes ''.
//   - Under a numeric type a value that is a numeric literal is emitted as is.
//   - Anything else is wrapped in single quotes with embedded quotes doubled.
//
// This is textual escaping for writing static SQL scripts. It is not
// parameterized-query safety and must not be used to pass untrusted input
// to a live connection.
func SafeSQL(value sql.NullString, t mapping.SQLType) string {
	if !value.Valid {
		return "NULL"
	}
	return Quote(value.String, t)
}

// Quote is SafeSQL for a value that is never NULL.
func Quote(value string, t mapping.SQLType) string {
	if value == "" {
		return "''"
	}
	if t.IsNumeric() && numericLiteral.MatchString(value) {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

package mapping

import (
	"regexp"
	"strings"

	"github.com/darianmavgo/mkinsert/converters/common"
)

var space = regexp.MustCompile(`\s+`)

// HeaderAt returns the row at the 1-based index headerRow, or nil when the
// index is out of range.
func HeaderAt(rows [][]string, headerRow int) []string {
	if headerRow < 1 || headerRow > len(rows) {
		return nil
	}
	return rows[headerRow-1]
}

// FromHeader derives one included TEXT mapping per header cell, with the
// target name equal to the header text.
func FromHeader(header []string) []ColumnMapping {
	mappings := make([]ColumnMapping, len(header))
	for i, h := range header {
		mappings[i] = ColumnMapping{
			SourceName:   h,
			TargetName:   h,
			Type:         TypeText,
			Include:      true,
			SourceColumn: Column(i),
		}
	}
	return mappings
}

// FromHeaderSanitized is FromHeader with target names made SQL compliant
// (lower snake case, keywords and junk replaced, duplicates numbered).
func FromHeaderSanitized(header []string) []ColumnMapping {
	mappings := FromHeader(header)
	names := common.GenColumnNames(header)
	for i := range mappings {
		mappings[i].TargetName = names[i]
	}
	return mappings
}

// Synthetic returns an included TEXT mapping with no source column that
// always emits value.
func Synthetic(name, value string) ColumnMapping {
	return ColumnMapping{
		TargetName: name,
		Type:       TypeText,
		FixedValue: value,
		Include:    true,
		Synthetic:  true,
	}
}

// NormalizeIdentifier trims name and replaces each whitespace run with a
// single underscore.
func NormalizeIdentifier(name string) string {
	return space.ReplaceAllString(strings.TrimSpace(name), "_")
}

// Find returns the index of the first mapping whose source or target name
// equals name (case-insensitive), or -1.
func Find(mappings []ColumnMapping, name string) int {
	for i, m := range mappings {
		if strings.EqualFold(m.TargetName, name) {
			return i
		}
	}
	for i, m := range mappings {
		if !m.Synthetic && strings.EqualFold(m.SourceName, name) {
			return i
		}
	}
	return -1
}

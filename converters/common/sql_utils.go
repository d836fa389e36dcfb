package common

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	TBPRE = "tb"
	CLPRE = "cl"
)

var (
	space = regexp.MustCompile(`\s+`)
	reg   = regexp.MustCompile(`[^a-zA-Z0-9 _]+`)
)

/*
GenCompliantNames generates names that can be used as bare SQL identifiers.

Column names and table names follow the same rules, so one function takes
the prefix as input: lower case, snake case, disallowed characters stripped,
keywords suffixed with an underscore. A name that ends up empty becomes
{prefix}{idx}; one that starts with a digit gets {prefix}{idx} in front.
Repeated names get a counter suffix.
*/
func GenCompliantNames(rawnames []string, prefix string) []string {
	gorgeous := make([]string, len(rawnames))
	counter := map[string]int{}
	for idx, item := range rawnames {
		item = strings.TrimSpace(item)
		item = reg.ReplaceAllString(item, "")
		item = strings.TrimSpace(item)
		item = space.ReplaceAllString(item, "_")
		item = strings.ToLower(item)

		if len(item) == 0 {
			item = fmt.Sprintf("%s%d", prefix, idx)
		} else if item[0] >= '0' && item[0] <= '9' {
			item = fmt.Sprintf("%s%d%s", prefix, idx, item)
		} else if IsKeyword(item) {
			item += "_"
		}

		counter[item]++
		if counter[item] == 1 {
			gorgeous[idx] = item
		} else {
			gorgeous[idx] = fmt.Sprintf("%s%d", item, counter[item])
		}
	}
	return gorgeous
}

// GenColumnNames generates sanitized SQL column names from raw headers.
// If columns are complete junk it will return cl0, cl1, cl2, etc.
func GenColumnNames(rawheaders []string) []string {
	return GenCompliantNames(rawheaders, CLPRE)
}

// GenTableNames generates sanitized SQL table names from raw table names.
// If table names are complete junk it will return tb0, tb1, tb2, etc.
func GenTableNames(rawtables []string) []string {
	return GenCompliantNames(rawtables, TBPRE)
}

// GenCreateTableSQL generates a CREATE TABLE IF NOT EXISTS statement.
// colTypes must be as long as columnNames; an empty type means TEXT.
func GenCreateTableSQL(tableName string, columnNames, colTypes []string) string {
	var builder strings.Builder
	builder.Grow(len(tableName) + len(columnNames)*20) // Heuristic pre-allocation

	builder.WriteString("CREATE TABLE IF NOT EXISTS ")
	builder.WriteString(tableName)
	builder.WriteString(" (")

	for i, name := range columnNames {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(name)
		builder.WriteByte(' ')
		if i < len(colTypes) && colTypes[i] != "" {
			builder.WriteString(colTypes[i])
		} else {
			builder.WriteString("TEXT")
		}
	}

	builder.WriteByte(')')
	return builder.String()
}

// AssessHeaderRow scans up to maxScan rows and returns the 0-based index of
// the best candidate for the header row. Empty input returns 0.
func AssessHeaderRow(rows [][]string, maxScan int) int {
	if len(rows) == 0 {
		return 0
	}

	limit := len(rows)
	if limit > maxScan {
		limit = maxScan
	}

	bestScore := -1.0
	bestIndex := 0

	for i := 0; i < limit; i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		score := 0.0

		// All columns are non-empty
		nonEmptyCount := 0
		for _, val := range row {
			if strings.TrimSpace(val) != "" {
				nonEmptyCount++
			}
		}
		if nonEmptyCount == len(row) {
			score += 2.0
		} else if nonEmptyCount > len(row)/2 {
			score += 1.0
		}

		// Values are unique
		seen := make(map[string]bool)
		unique := true
		for _, val := range row {
			if seen[val] {
				unique = false
				break
			}
			seen[val] = true
		}
		if unique {
			score += 2.0
		}

		// Same width as the following data row
		if i+1 < len(rows) && len(row) == len(rows[i+1]) {
			score += 1.0
		}

		// Prefer wide rows over 1-column metadata rows, and earlier rows
		score += float64(len(row)) * 0.5
		score -= float64(i) * 0.1

		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	return bestIndex
}

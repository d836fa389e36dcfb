package csv

import "strings"

// Tokenize splits delimited text into rows of trimmed string fields.
//
// Carriage returns are removed and the text is split on line feeds. Lines
// that are blank after trimming are dropped, so an empty data row cannot be
// represented. Within a line a double quote toggles quoting, a doubled quote
// inside a quoted section yields one literal quote, and the delimiter only
// separates fields outside quotes. Quoting never continues onto the next
// line: an unterminated quote simply runs to the end of its line.
//
// Tokenize accepts any input and never fails.
func Tokenize(text string, delimiter rune) [][]string {
	text = strings.ReplaceAll(text, "\r", "")

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line, delimiter))
	}
	return rows
}

func splitLine(line string, delimiter rune) []string {
	var (
		row      []string
		cur      strings.Builder
		inQuotes bool
	)
	chars := []rune(line)

	for i := 0; i < len(chars); i++ {
		ch := chars[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(chars) && chars[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delimiter && !inQuotes:
			row = append(row, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}

	return append(row, strings.TrimSpace(cur.String()))
}

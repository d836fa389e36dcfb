package common

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDelimiter is returned by ParseDelimiter for anything outside
// comma, semicolon, tab and pipe.
var ErrUnsupportedDelimiter = errors.New("unsupported delimiter")

// Delimiters is the closed set of field delimiters a caller may select.
var Delimiters = []rune{',', ';', '\t', '|'}

var delimiterNames = map[string]rune{
	"comma":     ',',
	"semicolon": ';',
	"tab":       '\t',
	"pipe":      '|',
}

// ParseDelimiter converts a delimiter selection into the rune to tokenize
// with. It accepts the literal character, its name ("comma", "tab", ...) and
// the two-character escape sequence `\t`. "auto" and the empty string return
// 0, meaning the delimiter should be detected from the data.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", "auto":
		return 0, nil
	case `\t`:
		return '\t', nil
	}
	if r, ok := delimiterNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	if rs := []rune(s); len(rs) == 1 {
		for _, d := range Delimiters {
			if rs[0] == d {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDelimiter, s)
}

// DelimiterName returns the selection name of d ("comma", "tab", ...), or
// the character itself for anything else.
func DelimiterName(d rune) string {
	for name, r := range delimiterNames {
		if r == d {
			return name
		}
	}
	return string(d)
}

// DetectDelimiter picks the delimiter that splits line into the most fields.
// Delimiters inside double-quoted sections are text and are not counted.
// Ties go to the earlier of comma, tab, semicolon and pipe; an empty line or
// one without any delimiter yields comma.
func DetectDelimiter(line string) rune {
	if line == "" {
		return ','
	}

	counts := make(map[rune]int, len(Delimiters))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	delimiters := []rune{',', '\t', ';', '|'}
	maxCount := -1
	winner := ','
	for _, delim := range delimiters {
		if counts[delim] > maxCount {
			maxCount = counts[delim]
			winner = delim
		}
	}
	return winner
}

// FirstLine returns the first non-blank line of text, without line endings.
func FirstLine(text string) string {
	for len(text) > 0 {
		line := text
		if idx := strings.IndexByte(text, '\n'); idx != -1 {
			line, text = text[:idx], text[idx+1:]
		} else {
			text = ""
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// ColumnCount calculates the number of columns based on a line and delimiter.
// It assumes the delimiter splits the line directly (ignoring quotes for estimation).
func ColumnCount(line string, delimiter rune) int {
	if line == "" {
		return 0
	}
	return strings.Count(line, string(delimiter)) + 1
}

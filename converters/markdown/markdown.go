package markdown

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/darianmavgo/mkinsert/converters"
	"github.com/darianmavgo/mkinsert/converters/common"
)

func init() {
	converters.Register("markdown", &markdownDriver{})
}

type markdownDriver struct{}

func (d *markdownDriver) Open(source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	return NewMarkdownConverter(source)
}

// MarkdownConverter reads the pipe tables of a Markdown document. Each table
// keeps its header line as the first row.
type MarkdownConverter struct {
	tables     []tableData
	tableNames []string
}

type tableData struct {
	rawName string
	rows    [][]string
}

// Ensure MarkdownConverter implements RowProvider
var _ common.RowProvider = (*MarkdownConverter)(nil)

// NewMarkdownConverter creates a new MarkdownConverter from an io.Reader
func NewMarkdownConverter(r io.Reader) (*MarkdownConverter, error) {
	tables, err := parseMarkdown(r)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables found in Markdown")
	}

	// Tables are named by the closest heading or anchor above them
	rawNames := make([]string, len(tables))
	for i, t := range tables {
		if t.rawName != "" {
			rawNames[i] = t.rawName
		} else {
			rawNames[i] = fmt.Sprintf("table%d", i)
		}
	}

	return &MarkdownConverter{
		tables:     tables,
		tableNames: common.GenTableNames(rawNames),
	}, nil
}

// GetTableNames implements RowProvider
func (c *MarkdownConverter) GetTableNames() []string {
	return c.tableNames
}

// GetRows implements RowProvider
func (c *MarkdownConverter) GetRows(tableName string) [][]string {
	for i, name := range c.tableNames {
		if name == tableName {
			return c.tables[i].rows
		}
	}
	return nil
}

var (
	headerRegex    = regexp.MustCompile(`^#+\s+(.*)$`)
	anchorRegex    = regexp.MustCompile(`<a\s+.*(?:id|name)="([^"]+)".*>`)
	separatorRegex = regexp.MustCompile(`^\s*\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)*\|?\s*$`)
)

func parseMarkdown(r io.Reader) ([]tableData, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Markdown: %w", err)
	}

	var tables []tableData
	var currentName string
	for i := 0; i < len(lines); {
		trimLine := strings.TrimSpace(lines[i])

		if match := headerRegex.FindStringSubmatch(trimLine); match != nil {
			currentName = strings.TrimSpace(match[1])
			i++
			continue
		}
		if match := anchorRegex.FindStringSubmatch(trimLine); match != nil {
			currentName = strings.TrimSpace(match[1])
			i++
			continue
		}

		// Outer pipes are optional on both the header and the separator.
		if strings.Contains(trimLine, "|") && i+1 < len(lines) && separatorRegex.MatchString(lines[i+1]) {
			table, consumed := parseTable(lines[i:], currentName)
			tables = append(tables, table)
			i += consumed
			currentName = ""
			continue
		}

		i++
	}

	return tables, nil
}

// parseTable reads a header line, skips the separator, and collects body
// lines until the first line without a pipe.
func parseTable(lines []string, name string) (tableData, int) {
	rows := [][]string{splitRow(lines[0])}
	consumed := 2

	for _, line := range lines[2:] {
		if !strings.Contains(line, "|") {
			break
		}
		rows = append(rows, splitRow(line))
		consumed++
	}

	return tableData{rawName: name, rows: rows}, consumed
}

// splitRow splits a pipe row into trimmed cells. Outer pipes are optional
// and `\|` is a literal pipe.
func splitRow(l string) []string {
	l = strings.TrimSpace(l)
	l = strings.TrimPrefix(l, "|")
	if strings.HasSuffix(l, "|") && !strings.HasSuffix(l, `\|`) {
		l = l[:len(l)-1]
	}

	var parts []string
	var sb strings.Builder
	for i := 0; i < len(l); i++ {
		switch {
		case l[i] == '\\' && i+1 < len(l) && l[i+1] == '|':
			sb.WriteByte('|')
			i++
		case l[i] == '|':
			parts = append(parts, strings.TrimSpace(sb.String()))
			sb.Reset()
		default:
			sb.WriteByte(l[i])
		}
	}
	return append(parts, strings.TrimSpace(sb.String()))
}

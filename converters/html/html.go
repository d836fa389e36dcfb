package html

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/darianmavgo/mkinsert/converters"
	"github.com/darianmavgo/mkinsert/converters/common"

	"golang.org/x/net/html"
)

func init() {
	converters.Register("html", &htmlDriver{})
}

type htmlDriver struct{}

func (d *htmlDriver) Open(source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	return NewHTMLConverter(source)
}

// HTMLConverter reads every <table> of an HTML document. Each table keeps
// all of its rows, header row included.
type HTMLConverter struct {
	tables     []tableData
	tableNames []string
}

type tableData struct {
	rawName string
	rows    [][]string
}

// Ensure HTMLConverter implements RowProvider
var _ common.RowProvider = (*HTMLConverter)(nil)

// NewHTMLConverter creates a new HTMLConverter from an io.Reader
func NewHTMLConverter(r io.Reader) (*HTMLConverter, error) {
	tables, err := parseHTML(bufio.NewReaderSize(r, 65536))
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables found in HTML")
	}

	// Tables are named by id, falling back to their position
	rawNames := make([]string, len(tables))
	for i, t := range tables {
		if t.rawName != "" {
			rawNames[i] = t.rawName
		} else {
			rawNames[i] = fmt.Sprintf("table%d", i)
		}
	}

	return &HTMLConverter{
		tables:     tables,
		tableNames: common.GenTableNames(rawNames),
	}, nil
}

// GetTableNames implements RowProvider
func (c *HTMLConverter) GetTableNames() []string {
	return c.tableNames
}

// GetRows implements RowProvider
func (c *HTMLConverter) GetRows(tableName string) [][]string {
	for i, name := range c.tableNames {
		if name == tableName {
			return c.tables[i].rows
		}
	}
	return nil
}

func parseHTML(reader io.Reader) ([]tableData, error) {
	doc, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var tables []tableData
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, extractTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return tables, nil
}

func extractTable(n *html.Node) tableData {
	var name string
	for _, attr := range n.Attr {
		if attr.Key == "id" {
			name = attr.Val
			break
		}
	}

	var rows [][]string
	var visitRows func(*html.Node)
	visitRows = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var row []string
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, extractText(c))
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
			return
		}

		for c := node.FirstChild; c != nil; c = c.NextSibling {
			// nested tables are collected on their own
			if c.Type == html.ElementNode && c.Data == "table" {
				continue
			}
			visitRows(c)
		}
	}
	visitRows(n)

	return tableData{rawName: name, rows: rows}
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	extractTextRecursive(n, &sb)
	return strings.TrimSpace(sb.String())
}

func extractTextRecursive(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractTextRecursive(c, sb)
	}
}

package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/darianmavgo/mkinsert/converters"
	"github.com/darianmavgo/mkinsert/converters/common"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when the configured sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

func init() {
	converters.Register("excel", &excelDriver{})
}

type excelDriver struct{}

func (d *excelDriver) Open(source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	return NewExcelConverterWithConfig(source, config)
}

// ExcelConverter reads workbook sheets into rows of cell text.
type ExcelConverter struct {
	sheets     []string // Workbook sheet names, in workbook order
	tableNames []string
	rows       map[string][][]string // map tableName to rows
}

// Ensure ExcelConverter implements RowProvider
var _ common.RowProvider = (*ExcelConverter)(nil)

// NewExcelConverter creates a new ExcelConverter from an io.Reader
func NewExcelConverter(r io.Reader) (*ExcelConverter, error) {
	return NewExcelConverterWithConfig(r, nil)
}

// NewExcelConverterWithConfig reads the sheet named by config.Sheet, or
// every sheet when it is empty. The first table is always the first sheet
// read.
func NewExcelConverterWithConfig(r io.Reader, config *common.ConversionConfig) (*ExcelConverter, error) {
	cfg := config.WithDefaults()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel stream: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	selected := sheets
	if cfg.Sheet != "" {
		selected = nil
		for _, s := range sheets {
			if strings.EqualFold(s, cfg.Sheet) {
				selected = []string{s}
				break
			}
		}
		if selected == nil {
			return nil, fmt.Errorf("%w: %q (have %s)", ErrSheetNotFound, cfg.Sheet, strings.Join(sheets, ", "))
		}
	}

	tableNames := common.GenTableNames(selected)
	rowsMap := make(map[string][][]string, len(selected))
	for idx, sheetName := range selected {
		rows, err := readSheet(f, sheetName)
		if err != nil {
			return nil, err
		}
		rowsMap[tableNames[idx]] = rows
	}

	return &ExcelConverter{
		sheets:     sheets,
		tableNames: tableNames,
		rows:       rowsMap,
	}, nil
}

// readSheet returns the sheet's formatted cell text row by row. Cells are
// not trimmed and blank rows inside the used range stay in place as empty
// rows, so a 1-based row number always matches the sheet's own numbering.
func readSheet(f *excelize.File, sheetName string) ([][]string, error) {
	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows iterator for sheet %s: %w", sheetName, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row for sheet %s: %w", sheetName, err)
		}
		if cols == nil {
			cols = []string{}
		}
		out = append(out, cols)
	}
	return out, nil
}

// Sheets returns every sheet name in the workbook, including ones not read.
func (e *ExcelConverter) Sheets() []string {
	return e.sheets
}

// GetTableNames implements RowProvider
func (e *ExcelConverter) GetTableNames() []string {
	return e.tableNames
}

// GetRows implements RowProvider
func (e *ExcelConverter) GetRows(tableName string) [][]string {
	return e.rows[tableName]
}

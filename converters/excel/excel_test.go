package excel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/darianmavgo/mkinsert/converters"
	"github.com/darianmavgo/mkinsert/converters/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "age"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Ana", 30}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"  Jan ", 25}))

	_, err := f.NewSheet("Cities 2024")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Cities 2024", "A1", &[]interface{}{"city"}))
	require.NoError(t, f.SetSheetRow("Cities 2024", "A2", &[]interface{}{"Brno"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestExcelConverterFirstSheet(t *testing.T) {
	conv, err := NewExcelConverter(bytes.NewReader(workbook(t)))
	require.NoError(t, err)

	assert.Equal(t, []string{"Sheet1", "Cities 2024"}, conv.Sheets())
	names := conv.GetTableNames()
	require.Len(t, names, 2)
	assert.Equal(t, "sheet1", names[0])
	assert.Equal(t, "cities_2024", names[1])

	assert.Equal(t, [][]string{
		{"name", "age"},
		{"Ana", "30"},
		{},
		{"  Jan ", "25"},
	}, conv.GetRows(names[0]))
	assert.Equal(t, [][]string{{"city"}, {"Brno"}}, conv.GetRows(names[1]))
}

func TestExcelConverterSelectedSheet(t *testing.T) {
	conv, err := NewExcelConverterWithConfig(bytes.NewReader(workbook(t)), &common.ConversionConfig{Sheet: "cities 2024"})
	require.NoError(t, err)

	assert.Equal(t, []string{"cities_2024"}, conv.GetTableNames())
	assert.Equal(t, [][]string{{"city"}, {"Brno"}}, conv.GetRows("cities_2024"))
}

func TestExcelConverterMissingSheet(t *testing.T) {
	_, err := NewExcelConverterWithConfig(bytes.NewReader(workbook(t)), &common.ConversionConfig{Sheet: "nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestExcelConverterRejectsGarbage(t *testing.T) {
	_, err := NewExcelConverter(bytes.NewReader([]byte("name,age\nAna,30\n")))
	assert.Error(t, err)
}

func TestExcelDriverRegistered(t *testing.T) {
	provider, err := converters.Open("excel", bytes.NewReader(workbook(t)), nil)
	require.NoError(t, err)
	assert.Len(t, provider.GetTableNames(), 2)
}

func TestExcelConverterKeepsRowNumbering(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Report"))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"name", "age"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"Ana", 30}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	conv, err := NewExcelConverter(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	rows := conv.GetRows("sheet1")
	require.Len(t, rows, 4)
	assert.Empty(t, rows[1])
	assert.Equal(t, []string{"name", "age"}, rows[2], "header-row 3 points at the header")
}

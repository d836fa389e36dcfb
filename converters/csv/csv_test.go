package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/darianmavgo/mkinsert/converters"
	"github.com/darianmavgo/mkinsert/converters/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVConverterDefaults(t *testing.T) {
	c, err := NewCSVConverter(strings.NewReader("name,age\nAna,30\nJan,25\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{common.DefaultTableName}, c.GetTableNames())
	assert.Equal(t, [][]string{{"name", "age"}, {"Ana", "30"}, {"Jan", "25"}}, c.GetRows(common.DefaultTableName))
	assert.Nil(t, c.GetRows("other"))
}

func TestCSVConverterExplicitDelimiter(t *testing.T) {
	// Commas outnumber semicolons, so detection alone would pick the wrong one.
	cfg := &common.ConversionConfig{Delimiter: ';', TableName: "prices"}
	c, err := NewCSVConverterWithConfig(strings.NewReader("item;price\nbread;1,50\nmilk;0,99"), cfg)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"item", "price"}, {"bread", "1,50"}, {"milk", "0,99"}}, c.GetRows("prices"))
}

func TestCSVConverterDecodesInput(t *testing.T) {
	// "Plzeň" and "Plzeňský" encoded as windows-1250.
	raw := []byte("mesto;kraj\nPlze\xf2;Plze\xf2sk\xfd\n")
	cfg := &common.ConversionConfig{Encoding: "windows-1250"}
	c, err := NewCSVConverterWithConfig(bytes.NewReader(raw), cfg)
	require.NoError(t, err)

	rows := c.GetRows(common.DefaultTableName)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Plzeň", "Plzeňský"}, rows[1])
}

func TestCSVConverterStripsBOM(t *testing.T) {
	c, err := NewCSVConverter(strings.NewReader("\ufeffid,name\n1,x\n"))
	require.NoError(t, err)

	rows := c.GetRows(common.DefaultTableName)
	require.NotEmpty(t, rows)
	assert.Equal(t, "id", rows[0][0])
}

func TestCSVConverterUnknownEncoding(t *testing.T) {
	_, err := NewCSVConverterWithConfig(strings.NewReader("a"), &common.ConversionConfig{Encoding: "nope"})
	assert.ErrorIs(t, err, common.ErrUnsupportedEncoding)
}

func TestCSVDriverRegistered(t *testing.T) {
	provider, err := converters.Open("csv", strings.NewReader("a|b\n1|2"), nil)
	require.NoError(t, err)

	tables := provider.GetTableNames()
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, provider.GetRows(tables[0]))
}

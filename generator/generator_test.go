package generator

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/darianmavgo/mkinsert/converters/csv"
	"github.com/darianmavgo/mkinsert/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleRequest() Request {
	return Request{
		Table:     "people",
		Verb:      "INSERT",
		HeaderRow: 1,
		Mappings: []mapping.ColumnMapping{
			{SourceName: "name", TargetName: "name", Type: mapping.TypeText, Include: true, SourceColumn: mapping.Column(0)},
			{SourceName: "age", TargetName: "age", Type: mapping.TypeInt, Include: true, SourceColumn: mapping.Column(1)},
		},
	}
}

func TestGeneratePeople(t *testing.T) {
	rows := csv.Tokenize("name,age\nAna,30\nJan,25", ',')

	res, err := Generate(rows, peopleRequest())
	require.NoError(t, err)

	assert.Equal(t, "-- Generated 2 INSERT statements for table people", res.Comment)
	assert.Equal(t, []string{
		"INSERT INTO people (name, age) VALUES ('Ana', 30);",
		"INSERT INTO people (name, age) VALUES ('Jan', 25);",
	}, res.Statements)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "people", res.Table)
	assert.Equal(t, []string{"name", "age"}, res.Columns)
	assert.Equal(t, res.Comment+"\n"+res.Statements[0]+"\n"+res.Statements[1], res.String())
}

func TestGenerateFixedValueOverride(t *testing.T) {
	rows := csv.Tokenize("name,age\nAna,30\nJan,25", ',')
	req := peopleRequest()
	req.Mappings[1].FixedValue = "18"

	res, err := Generate(rows, req)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"INSERT INTO people (name, age) VALUES ('Ana', 18);",
		"INSERT INTO people (name, age) VALUES ('Jan', 18);",
	}, res.Statements)
}

func TestGenerateFixedValueIsEscaped(t *testing.T) {
	rows := [][]string{{"name"}, {"Ana"}}
	req := Request{
		Table:     "t",
		HeaderRow: 1,
		Mappings: []mapping.ColumnMapping{
			{TargetName: "name", Type: mapping.TypeInt, FixedValue: "D'Arcy", Include: true, SourceColumn: mapping.Column(0)},
		},
	}

	res, err := Generate(rows, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"INSERT INTO t (name) VALUES ('D''Arcy');"}, res.Statements)
}

func TestGenerateIsIdempotent(t *testing.T) {
	rows := csv.Tokenize("name,age\n\"O'Hara, K\",41\nJan,x", ',')
	req := peopleRequest()

	first, err := Generate(rows, req)
	require.NoError(t, err)
	second, err := Generate(rows, req)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}

func TestGenerateRowCap(t *testing.T) {
	rows := [][]string{{"n"}}
	for i := 0; i < 10050; i++ {
		rows = append(rows, []string{fmt.Sprint(i)})
	}
	req := Request{
		Table:     "numbers",
		HeaderRow: 1,
		Mappings:  mapping.FromHeader(rows[0]),
	}

	res, err := Generate(rows, req)
	require.NoError(t, err)
	assert.Len(t, res.Statements, 10000)
	assert.Equal(t, 10000, res.Count)
	assert.Equal(t, "-- Generated 10000 INSERT statements for table numbers", res.Comment)
	assert.Equal(t, "INSERT INTO numbers (n) VALUES ('9999');", res.Statements[9999])
}

func TestGenerateMaxRowsClamp(t *testing.T) {
	rows := [][]string{{"n"}, {"1"}, {"2"}, {"3"}}
	req := Request{HeaderRow: 1, Mappings: mapping.FromHeader(rows[0])}

	req.MaxRows = 2
	res, err := Generate(rows, req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	req.MaxRows = MaxRows * 5
	res, err = Generate(rows, req)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
}

func TestGenerateHeaderRowWindow(t *testing.T) {
	rows := [][]string{
		{"Report generated 2024-05-01"},
		{"name", "age"},
		{"Ana", "30"},
	}
	mappings := mapping.FromHeader(mapping.HeaderAt(rows, 2))

	tests := []struct {
		name      string
		headerRow int
		want      int
	}{
		{"second row header", 2, 1},
		{"first row header", 1, 2},
		{"no header row", 0, 3},
		{"negative treated as none", -4, 3},
		{"last row is header", 3, 0},
		{"out of range", 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Generate(rows, Request{HeaderRow: tt.headerRow, Mappings: mappings})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Count)
			assert.Equal(t, fmt.Sprintf("-- Generated %d INSERT statements for table my_table", tt.want), res.Comment)
		})
	}
}

func TestGenerateExcludedAndReordered(t *testing.T) {
	rows := csv.Tokenize("id;name;city\n1;Ana;Brno\n2;Jan;Praha", ';')
	m := mapping.FromHeader(rows[0])
	m[0].Include = false
	// city first, then name: values must follow the explicit source column
	req := Request{Table: "t", HeaderRow: 1, Mappings: []mapping.ColumnMapping{m[2], m[0], m[1]}}

	res, err := Generate(rows, req)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"INSERT INTO t (city, name) VALUES ('Brno', 'Ana');",
		"INSERT INTO t (city, name) VALUES ('Praha', 'Jan');",
	}, res.Statements)
}

func TestGenerateSyntheticColumns(t *testing.T) {
	rows := csv.Tokenize("name\nAna", ',')
	m := mapping.FromHeader(rows[0])
	m = append(m,
		mapping.Synthetic("source", "import 2024"),
		mapping.Synthetic("note", ""),
	)
	batch := mapping.Synthetic("batch", "7")
	batch.Type = mapping.TypeInt
	m = append(m, batch)

	res, err := Generate(rows, Request{Table: "t", HeaderRow: 1, Mappings: m})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"INSERT INTO t (name, source, note, batch) VALUES ('Ana', 'import 2024', '', 7);",
	}, res.Statements)
}

func TestGenerateShortRowsAndMissingIndex(t *testing.T) {
	rows := [][]string{{"a", "b", "c"}, {"1"}, {"1", "2", "3", "4"}}
	m := mapping.FromHeader(rows[0])
	m = append(m, mapping.ColumnMapping{TargetName: "d", Include: true, Type: mapping.TypeText})

	res, err := Generate(rows, Request{Table: "t", HeaderRow: 1, Mappings: m})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"INSERT INTO t (a, b, c, d) VALUES ('1', '', '', '');",
		"INSERT INTO t (a, b, c, d) VALUES ('1', '2', '3', '');",
	}, res.Statements)
}

func TestGenerateIdentifierNormalization(t *testing.T) {
	rows := [][]string{{"First Name", "Date of  birth"}, {"Ana", "2000-01-01"}}
	m := mapping.FromHeader(rows[0])
	m[1].Type = mapping.TypeDate

	res, err := Generate(rows, Request{Table: " people ", Verb: "INSERT IGNORE", HeaderRow: 1, Mappings: m})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"INSERT IGNORE INTO people (First_Name, Date_of_birth) VALUES ('Ana', '2000-01-01');",
	}, res.Statements)
	assert.Equal(t, "-- Generated 1 INSERT IGNORE statements for table people", res.Comment)
}

func TestGenerateNoUsableColumns(t *testing.T) {
	rows := [][]string{{"a"}, {"1"}}
	m := mapping.FromHeader(rows[0])
	m[0].Include = false

	for _, mappings := range [][]mapping.ColumnMapping{nil, m} {
		res, err := Generate(rows, Request{HeaderRow: 1, Mappings: mappings})
		assert.Nil(t, res)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoUsableColumns))
		assert.False(t, errors.Is(err, ErrEmptyIdentifier))
	}
}

func TestGenerateEmptyIdentifier(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"1", "2"}}
	m := mapping.FromHeader(rows[0])
	m[1].TargetName = "  \t "

	res, err := Generate(rows, Request{HeaderRow: 1, Mappings: m})
	assert.Nil(t, res)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrCodeEmptyIdentifier, cfgErr.Code)
	assert.Equal(t, 1, cfgErr.Index)
	assert.Equal(t, "b", cfgErr.Source)
	assert.True(t, errors.Is(err, ErrEmptyIdentifier))
	assert.Contains(t, err.Error(), `mapping 2, source "b"`)
}

func TestGenerateExcludedEmptyIdentifierIsIgnored(t *testing.T) {
	rows := [][]string{{"a", ""}, {"1", "2"}}
	m := mapping.FromHeader(rows[0])
	m[1].Include = false

	res, err := Generate(rows, Request{HeaderRow: 1, Mappings: m})
	require.NoError(t, err)
	assert.Equal(t, []string{"INSERT INTO my_table (a) VALUES ('1');"}, res.Statements)
}

func TestResultWriteTo(t *testing.T) {
	rows := csv.Tokenize("name,age\nAna,30", ',')
	res, err := Generate(rows, peopleRequest())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := res.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "-- Generated 1 INSERT statements for table people\nINSERT INTO people (name, age) VALUES ('Ana', 30);\n", buf.String())
}

func TestResultEmptyWindow(t *testing.T) {
	res, err := Generate(nil, peopleRequest())
	require.NoError(t, err)
	assert.Empty(t, res.Statements)
	assert.Equal(t, []string{"-- Generated 0 INSERT statements for table people"}, res.Lines())
	assert.Equal(t, "-- Generated 0 INSERT statements for table people\n", res.String())
}

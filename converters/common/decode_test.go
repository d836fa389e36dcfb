package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		encoding string
		want     string
	}{
		{"PlainUTF8", []byte("name,age"), "", "name,age"},
		{"UTF8BOM", []byte("\xef\xbb\xbfname,age"), "utf-8", "name,age"},
		{"UTF16LEBOM", []byte{0xff, 0xfe, 'a', 0, ',', 0, 'b', 0}, "", "a,b"},
		{"Windows1250", []byte{'P', 0xf8, 'e', 'r', 'o', 'v'}, "windows-1250", "Přerov"},
		{"ISO88592", []byte{0xa9, 'k', 'o', 'd', 'a'}, "ISO-8859-2", "Škoda"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeUnknownEncoding(t *testing.T) {
	_, err := Decode([]byte("x"), "klingon-8")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))
}

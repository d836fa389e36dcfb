package common

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedEncoding is returned when an encoding label is not known.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// Decode converts raw input bytes in the named encoding to a UTF-8 string.
//
// Labels follow the WHATWG encoding names ("utf-8", "windows-1250",
// "iso-8859-2", "utf-16le", ...); an empty label means UTF-8. A UTF-8 or
// UTF-16 byte order mark always wins over the label and is stripped.
// Invalid sequences become U+FFFD instead of failing.
func Decode(data []byte, encoding string) (string, error) {
	label := strings.ToLower(strings.TrimSpace(encoding))
	if label == "" {
		label = "utf-8"
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s input: %w", label, err)
	}
	return string(out), nil
}

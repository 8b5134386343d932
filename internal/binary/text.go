package binary

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding selects how string bytes are decoded.
type Encoding int

const (
	// UTF8 decodes as UTF-8; invalid sequences become U+FFFD.
	UTF8 Encoding = iota
	// Latin1 decodes as ISO-8859-1 (used for 4-character codes).
	Latin1
)

func (e Encoding) String() string {
	if e == Latin1 {
		return "ISO-8859-1"
	}
	return "UTF-8"
}

// DecodeString decodes b in the given encoding and trims surrounding
// whitespace and control bytes, including NUL padding.
func DecodeString(b []byte, enc Encoding) (string, error) {
	var s string
	switch enc {
	case Latin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", enc, err)
		}
		s = string(out)
	default:
		s = strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' }), nil
}

// Package registry manages format-specific parsers.
package registry

import (
	"io"
	"slices"

	"github.com/simonhull/audioinfo/internal/types"
)

// FormatParser is the interface all format parsers implement.
type FormatParser interface {
	// Parse reads metadata from a forward-only stream positioned at the
	// first byte of the file. It returns either a complete record or an
	// error, never both.
	Parse(r io.Reader, cfg types.ParseConfig) (*types.Metadata, error)
}

var byFormat = make(map[types.Format]FormatParser)

// Register registers a parser for a format, replacing any previous one.
// Format packages call it from init.
func Register(format types.Format, parser FormatParser) {
	byFormat[format] = parser
}

// Get returns the parser for a format, or nil if none is registered.
func Get(format types.Format) FormatParser {
	return byFormat[format]
}

// Formats lists the formats with a registered parser, in enum order.
func Formats() []types.Format {
	formats := make([]types.Format, 0, len(byFormat))
	for f := range byFormat {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

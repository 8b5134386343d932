package types

import "fmt"

// TruncatedInputError is returned when a bounded read needs more bytes than
// the stream or the enclosing atom can supply.
type TruncatedInputError struct {
	Atom   string // Dotted atom path, empty at top level
	What   string
	Offset int64
	Want   int64
	Got    int64
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("%struncated input at offset %d while reading %s: need %d bytes, have %d",
		atomPrefix(e.Atom), e.Offset, e.What, e.Want, e.Got)
}

// MalformedStructureError is returned when an atom's declared size does not
// fit its container or the size field itself is invalid.
type MalformedStructureError struct {
	Atom   string
	Reason string
	Offset int64
}

func (e *MalformedStructureError) Error() string {
	return fmt.Sprintf("%smalformed structure at offset %d: %s", atomPrefix(e.Atom), e.Offset, e.Reason)
}

// SchemaMismatchError is returned when an atom required by the file layout
// is missing before its container ends.
type SchemaMismatchError struct {
	Atom     string // Container that was searched
	Expected string
	Reason   string
}

func (e *SchemaMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%sexpected atom %q: %s", atomPrefix(e.Atom), e.Expected, e.Reason)
	}
	return fmt.Sprintf("%satom %q not found", atomPrefix(e.Atom), e.Expected)
}

// UnsupportedFormatError is returned when the input is not an MP4-family file.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Path == "" {
		return "unsupported format: " + e.Reason
	}
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

func atomPrefix(path string) string {
	if path == "" {
		return ""
	}
	return path + ": "
}

// Package types provides core data structures for audio file metadata.
//
// This package defines the Metadata record, the cover Artwork view, the
// Format enumeration and the error taxonomy shared by all parsers.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Metadata is the record produced by a successful parse.
//
// Text fields are empty when the file does not carry them. Numeric fields
// use zero for "unset". A Metadata value is only ever returned once the
// whole parse has succeeded; it is never partially populated because of a
// structural fault.
type Metadata struct {
	// Container identity from the ftyp atom
	Brand   string
	Version string

	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Composer    string
	Comment     string
	Copyright   string
	Grouping    string
	Lyrics      string

	// Year is 0 when absent or not numeric
	Year int

	Track  int
	Tracks int
	Disc   int
	Discs  int

	Compilation bool

	// Cover holds the raw, undecoded cover image bytes
	Cover []byte

	// Rating is the iTunes advisory byte: 0 none, 2 clean, 4 explicit
	Rating byte

	// Tempo in beats per minute
	Tempo int

	Duration time.Duration

	// Playback speed and volume; 1.0 is normal
	Speed  float64
	Volume float64
}

// NewMetadata returns a record with the defaults of an unparsed file.
func NewMetadata() Metadata {
	return Metadata{Speed: 1.0, Volume: 1.0}
}

// String returns a one-line human-readable summary.
// Example output: "Sample Artist - Sample (Sample Album, 2013) [4.435s]".
func (m Metadata) String() string {
	var b strings.Builder
	if m.Artist != "" {
		b.WriteString(m.Artist)
		b.WriteString(" - ")
	}
	b.WriteString(m.Title)

	var extra []string
	if m.Album != "" {
		extra = append(extra, m.Album)
	}
	if m.Year > 0 {
		extra = append(extra, fmt.Sprint(m.Year))
	}
	if len(extra) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(extra, ", "))
	}
	if m.Duration > 0 {
		fmt.Fprintf(&b, " [%s]", m.Duration)
	}
	return b.String()
}

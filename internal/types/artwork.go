package types

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for DecodeConfig
	_ "image/jpeg" // register JPEG decoder for DecodeConfig
	_ "image/png"  // register PNG decoder for DecodeConfig

	_ "golang.org/x/image/bmp" // register BMP decoder for DecodeConfig
)

// Artwork describes an embedded cover image.
type Artwork struct {
	// MIME type of the image data, empty when the format is not recognized
	MIMEType string

	// Image binary data
	Data []byte

	// Dimensions (0 when the header could not be decoded)
	Width  int // Pixels
	Height int // Pixels
}

// CoverArt inspects the cover bytes and returns the image description.
// Returns nil if the record has no cover.
//
// Only the image header is decoded; unrecognized data is returned with an
// empty MIME type and zero dimensions.
func (m Metadata) CoverArt() *Artwork {
	if len(m.Cover) == 0 {
		return nil
	}

	art := &Artwork{Data: m.Cover}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(m.Cover))
	if err != nil {
		return art
	}
	art.MIMEType = "image/" + format
	art.Width = cfg.Width
	art.Height = cfg.Height
	return art
}

// String returns a human-readable description of the artwork.
//
// Example output: "1200x1200 JPEG, 245KB"
func (a Artwork) String() string {
	dims := ""
	if a.Width > 0 && a.Height > 0 {
		dims = fmt.Sprintf("%dx%d ", a.Width, a.Height)
	}
	return fmt.Sprintf("%s%s, %s", dims, mimeToFormat(a.MIMEType), formatSize(len(a.Data)))
}

// formatSize formats byte size in human-readable form.
func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// mimeToFormat converts MIME type to short format name.
func mimeToFormat(mime string) string {
	switch mime {
	case "image/jpeg":
		return "JPEG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	case "image/bmp":
		return "BMP"
	default:
		return "Image"
	}
}

package types

import "bytes"

// Format represents the detected container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatM4A represents MP4-family audio files (M4A, M4P, mp42, isom).
	FormatM4A
	// FormatM4B represents M4B audiobook files.
	FormatM4B
	// FormatMP3 represents MP3 files (ID3v2 tagged or bare frame stream).
	FormatMP3
)

// String returns the short format name.
func (f Format) String() string {
	switch f {
	case FormatM4A:
		return "M4A"
	case FormatM4B:
		return "M4B"
	case FormatMP3:
		return "MP3"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatM4A:
		return []string{".m4a", ".mp4", ".m4p"}
	case FormatM4B:
		return []string{".m4b"}
	case FormatMP3:
		return []string{".mp3"}
	default:
		return nil
	}
}

// HeaderSize is the number of leading bytes DetectFormat inspects.
const HeaderSize = 12

// mp4Boxes are top-level box types that can open an MP4 stream in place of
// ftyp.
var mp4Boxes = map[string]bool{
	"free": true,
	"skip": true,
	"wide": true,
	"mdat": true,
	"moov": true,
	"pdin": true,
	"pnot": true,
	"uuid": true,
}

// DetectFormat determines the file format from its first bytes.
//
// header holds up to HeaderSize bytes from the start of the file; callers
// reading a forward-only stream peek them without consuming. Detection does
// not validate the rest of the file. The ftyp brand only distinguishes M4B
// from M4A here; brand checking proper is left to the M4A parser.
func DetectFormat(header []byte, path string) (Format, error) {
	if len(header) < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	// ID3v2 tag or MPEG frame sync (0xFFE)
	if bytes.HasPrefix(header, []byte("ID3")) {
		return FormatMP3, nil
	}
	if header[0] == 0xFF && header[1]&0xE0 == 0xE0 {
		return FormatMP3, nil
	}

	if len(header) < 8 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "unsupported file format",
		}
	}
	switch typ := string(header[4:8]); {
	case typ == "ftyp":
	case mp4Boxes[typ]:
		// An MP4 file missing its leading ftyp; the parser reports it
		return FormatM4A, nil
	default:
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "unsupported file format",
		}
	}

	if len(header) >= HeaderSize && string(header[8:12]) == "M4B " {
		return FormatM4B, nil
	}
	return FormatM4A, nil
}

package audioinfo

import (
	"github.com/simonhull/audioinfo/internal/types"
)

// Format is an alias to types.Format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatM4A     = types.FormatM4A
	FormatM4B     = types.FormatM4B
	FormatMP3     = types.FormatMP3
)

// HeaderSize is the number of leading bytes DetectFormat inspects.
const HeaderSize = types.HeaderSize

// DetectFormat determines the format from the first HeaderSize bytes of a
// file. MP3 is recognized but has no parser here; reading one gives
// *UnsupportedFormatError.
func DetectFormat(header []byte, path string) (Format, error) {
	return types.DetectFormat(header, path)
}

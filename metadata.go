package audioinfo

import (
	"github.com/simonhull/audioinfo/internal/types"
)

// Metadata is an alias to types.Metadata, the record produced by a parse.
type Metadata = types.Metadata

// Artwork is an alias to types.Artwork, returned by Metadata.CoverArt.
type Artwork = types.Artwork

package audioinfo

import (
	"github.com/simonhull/audioinfo/internal/types"
)

// TruncatedInputError is an alias to types.TruncatedInputError.
// Returned when the stream or an atom ends before a read completes.
type TruncatedInputError = types.TruncatedInputError

// MalformedStructureError is an alias to types.MalformedStructureError.
// Returned when an atom size is invalid or overruns its container.
type MalformedStructureError = types.MalformedStructureError

// SchemaMismatchError is an alias to types.SchemaMismatchError.
// Returned when a required atom is missing.
type SchemaMismatchError = types.SchemaMismatchError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

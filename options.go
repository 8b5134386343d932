package audioinfo

import (
	"log/slog"

	"github.com/simonhull/audioinfo/internal/types"
)

// Option configures behavior when reading audio files.
//
// Example:
//
//	file, err := audioinfo.Open("song.m4a",
//	    audioinfo.WithLogger(slog.Default()),
//	    audioinfo.WithMaxCoverSize(10*1024*1024),
//	)
type Option func(*openOptions)

// openOptions holds configuration for reading files.
type openOptions struct {
	logger       *slog.Logger // nil discards diagnostics
	debugLevel   slog.Level   // Level of trace lines and minor advisories
	maxCoverSize int64        // Maximum cover size in bytes (0 = no limit)
	skipCover    bool         // Do not read cover payloads
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		debugLevel: slog.LevelDebug,
	}
}

func (o *openOptions) config() types.ParseConfig {
	return types.ParseConfig{
		Logger:       o.logger,
		DebugLevel:   o.debugLevel,
		MaxCoverSize: o.maxCoverSize,
		SkipCover:    o.skipCover,
	}
}

// WithLogger sends diagnostics to logger.
//
// Every atom visited is traced at the debug level, as are minor
// advisories such as empty items or a track duration that disagrees with
// the movie duration. Unexpected file brands are logged as warnings.
// Logging never changes the result.
//
// By default all diagnostics are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// WithDebugLevel sets the level used for trace lines and minor advisories.
// Default is slog.LevelDebug.
func WithDebugLevel(level slog.Level) Option {
	return func(o *openOptions) {
		o.debugLevel = level
	}
}

// WithMaxCoverSize skips covers larger than bytes.
//
// The oversized payload is skipped rather than read, and a debug advisory
// is logged. Default is 0 (no limit).
//
// Example:
//
//	// Limit covers to 10MB
//	file, err := audioinfo.Open("song.m4a",
//	    audioinfo.WithMaxCoverSize(10*1024*1024),
//	)
func WithMaxCoverSize(bytes int64) Option {
	return func(o *openOptions) {
		o.maxCoverSize = bytes
	}
}

// WithoutCover skips cover payloads entirely; Metadata.Cover stays nil.
func WithoutCover() Option {
	return func(o *openOptions) {
		o.skipCover = true
	}
}

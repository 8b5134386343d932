package types

import "log/slog"

// ParseConfig carries caller settings into a format parser.
//
// Only Logger and DebugLevel affect diagnostics; they never change the
// parse result.
type ParseConfig struct {
	// Logger receives advisories and structural trace lines.
	// A nil Logger discards everything.
	Logger *slog.Logger

	// DebugLevel is the level used for trace lines and low-severity
	// advisories (empty items, duration disagreements).
	DebugLevel slog.Level

	// MaxCoverSize skips covers larger than this many bytes (0 = no limit).
	MaxCoverSize int64

	// SkipCover discards cover payloads without reading them.
	SkipCover bool
}

// Log returns the configured logger, or one that discards everything.
func (c ParseConfig) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

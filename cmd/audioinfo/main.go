// Command audioinfo prints the metadata and atom layout of M4A/M4B files.
//
// Usage:
//
//	audioinfo show [--format text|json|yaml] <file>...
//	audioinfo dump <file>
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/simonhull/audioinfo"
)

// CLI is the command line grammar.
type CLI struct {
	Verbose bool             `short:"v" help:"Log parser diagnostics to stderr"`
	Version kong.VersionFlag `help:"Show version information"`

	Show ShowCmd `cmd:"" default:"withargs" help:"Print the metadata of one or more files"`
	Dump DumpCmd `cmd:"" help:"Print the atom tree of a file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("audioinfo"),
		kong.Description("Read tags, duration and cover art from M4A/M4B files."),
		kong.Vars{"version": audioinfo.VersionString()},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	err := ctx.Run(newLogger(cli.Verbose))
	ctx.FatalIfErrorf(err)
}

// newLogger returns a debug-level stderr logger when verbose, otherwise
// one that discards everything.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

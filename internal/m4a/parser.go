// Package m4a extracts the metadata record from M4A/M4B files.
//
// The file is read once, front to back. Only the atoms on the path to the
// movie header, the track headers and the iTunes item list are decoded;
// everything else is skipped as it streams past.
package m4a

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/mp4"
	"github.com/simonhull/audioinfo/internal/registry"
	"github.com/simonhull/audioinfo/internal/types"
)

// parser implements the registry.FormatParser interface
type parser struct{}

// Parse walks the atom tree read from r and returns the metadata record.
// No record is returned when the walk fails.
func (p *parser) Parse(r io.Reader, cfg types.ParseConfig) (*types.Metadata, error) {
	e := &extractor{
		cfg: cfg,
		log: cfg.Log(),
		md:  types.NewMetadata(),
	}
	if err := e.walk(mp4.NewRoot(r)); err != nil {
		return nil, err
	}
	md := e.md
	return &md, nil
}

// extractor holds the record under construction for one parse.
type extractor struct {
	cfg types.ParseConfig
	log *slog.Logger
	md  types.Metadata
}

// Brands that parse like M4A but are not audio-only containers.
var experimentalBrands = map[string]bool{
	"M4V":  true,
	"MP4":  true,
	"mp42": true,
	"isom": true,
}

var audioBrands = map[string]bool{
	"M4A": true,
	"M4B": true,
	"M4P": true,
}

func (e *extractor) walk(root *mp4.Atom) error {
	ftyp, err := root.NextChildOf("ftyp")
	if err != nil {
		return err
	}
	e.trace(ftyp)
	if err := e.ftyp(ftyp); err != nil {
		return err
	}

	moov, err := root.NextChildUpTo("moov")
	if err != nil {
		return err
	}
	e.trace(moov)
	if err := e.moov(moov); err != nil {
		return err
	}

	// Consume the rest of moov so that a truncated movie box is reported
	// instead of silently accepted. Atoms after moov are never read.
	return moov.Discard()
}

func (e *extractor) ftyp(ftyp *mp4.Atom) error {
	brand, err := ftyp.ReadString(4, binary.Latin1, "major brand")
	if err != nil {
		return err
	}
	minor, err := ftyp.ReadUint32("minor version")
	if err != nil {
		return err
	}
	e.md.Brand = brand
	e.md.Version = strconv.FormatUint(uint64(minor), 10)

	switch {
	case experimentalBrands[brand]:
		e.log.Warn("experimental brand", "atom", ftyp.Path(), "brand", brand)
	case !audioBrands[brand]:
		e.log.Warn("unexpected brand", "atom", ftyp.Path(), "brand", brand, "expected", "M4A|M4B|M4P")
	}
	return nil
}

func (e *extractor) moov(moov *mp4.Atom) error {
	for moov.HasMoreChildren() {
		child, err := moov.NextChild()
		if err != nil {
			return err
		}
		e.trace(child)

		switch child.Type() {
		case "mvhd":
			err = e.mvhd(child)
		case "trak":
			err = e.trak(child)
		case "udta":
			err = e.udta(child)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// trace logs an atom as it is visited.
func (e *extractor) trace(a *mp4.Atom) {
	e.debug("atom", "path", a.Path(), "offset", a.Offset(), "size", a.Size())
}

func (e *extractor) debug(msg string, args ...any) {
	e.log.Log(context.Background(), e.cfg.DebugLevel, msg, args...)
}

// init registers the M4A/M4B parser
func init() {
	p := &parser{}
	registry.Register(types.FormatM4A, p)
	registry.Register(types.FormatM4B, p)
}

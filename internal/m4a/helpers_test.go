package m4a

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/types"
)

// createFtyp creates an ftyp atom with the given major brand.
func createFtyp(brand string) []byte {
	return binary.Atom("ftyp", []byte(brand), binary.BE[uint32](0x200), []byte("isom"))
}

// createMvhd creates a version 0 movie header.
func createMvhd(timescale, units uint32) []byte {
	return binary.Atom("mvhd",
		[]byte{0, 0, 0, 0}, // version + flags
		make([]byte, 8),    // creation + modification time
		binary.BE(timescale),
		binary.BE(units),
		binary.BE[uint32](0x00010000), // rate 1.0
		binary.BE[uint16](0x0100),     // volume 1.0
		make([]byte, 10+36+24+4),      // reserved, matrix, pre-defined, next track
	)
}

// createTrak creates a track whose media header carries the given duration.
func createTrak(timescale, units uint32) []byte {
	mdhd := binary.Atom("mdhd",
		[]byte{0, 0, 0, 0},
		make([]byte, 8),
		binary.BE(timescale),
		binary.BE(units),
		binary.BE[uint16](0x55c4), // language
		binary.BE[uint16](0),
	)
	return binary.Atom("trak",
		binary.Atom("tkhd", make([]byte, 84)),
		binary.Atom("mdia", mdhd, binary.Atom("hdlr", make([]byte, 25))),
	)
}

// createUdta wraps ilst items in udta.meta.ilst.
func createUdta(items ...[]byte) []byte {
	return binary.Atom("udta",
		binary.Atom("meta",
			make([]byte, 4), // version + flags
			binary.Atom("hdlr", make([]byte, 25)),
			binary.Atom("ilst", items...),
		),
	)
}

// createItem creates an ilst item holding one data atom.
func createItem(tag string, value ...[]byte) []byte {
	data := append([][]byte{
		binary.BE[uint32](1), // type indicator: UTF-8
		binary.BE[uint32](0), // locale
	}, value...)
	return binary.Atom(tag, binary.Atom("data", data...))
}

func createTextItem(tag, value string) []byte {
	return createItem(tag, []byte(value))
}

func createFile(atoms ...[]byte) []byte {
	return bytes.Join(atoms, nil)
}

// streamOnly hides io.Seeker so the parser sees a pure stream.
type streamOnly struct{ r io.Reader }

func (s streamOnly) Read(p []byte) (int, error) { return s.r.Read(p) }

func parse(t *testing.T, file []byte, cfg types.ParseConfig) *types.Metadata {
	t.Helper()
	md, err := (&parser{}).Parse(bytes.NewReader(file), cfg)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return md
}

// parseItems parses a minimal file whose ilst holds the given items.
func parseItems(t *testing.T, items ...[]byte) *types.Metadata {
	t.Helper()
	file := createFile(createFtyp("M4A "), binary.Atom("moov", createMvhd(1000, 1000), createUdta(items...)))
	return parse(t, file, types.ParseConfig{})
}

// captureLog returns a config whose debug output is collected in buf.
func captureLog(buf *bytes.Buffer) types.ParseConfig {
	return types.ParseConfig{
		Logger:     slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		DebugLevel: slog.LevelDebug,
	}
}

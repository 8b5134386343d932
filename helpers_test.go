package audioinfo_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/audioinfo/internal/binary"
)

// createM4A builds a small M4A file with a title, artist and 4.435s duration.
func createM4A(brand string) []byte {
	return createM4AWithMdat(brand, 1024)
}

// createM4AWithMdat is createM4A with mdatSize bytes of media data placed
// ahead of moov.
func createM4AWithMdat(brand string, mdatSize int) []byte {
	mvhd := binary.Atom("mvhd",
		[]byte{0, 0, 0, 0},
		make([]byte, 8),
		binary.BE[uint32](1000),
		binary.BE[uint32](4435),
		binary.BE[uint32](0x00010000),
		binary.BE[uint16](0x0100),
		make([]byte, 74),
	)
	item := func(tag, value string) []byte {
		return binary.Atom(tag, binary.Atom("data", binary.BE[uint32](1), binary.BE[uint32](0), []byte(value)))
	}
	udta := binary.Atom("udta", binary.Atom("meta", make([]byte, 4), binary.Atom("ilst",
		item("\xA9nam", "Sample"),
		item("\xA9ART", "Sample Artist"),
	)))

	return bytes.Join([][]byte{
		binary.Atom("ftyp", []byte(brand), binary.BE[uint32](0), []byte("isom")),
		binary.Atom("mdat", make([]byte, mdatSize)),
		binary.Atom("moov", mvhd, udta),
	}, nil)
}

// writeTemp writes data to a file in a per-test directory.
func writeTemp(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// countingReader counts the bytes pulled through Read and passes Seek through.
type countingReader struct {
	*bytes.Reader
	read int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.Reader.Read(p)
	c.read += int64(n)
	return n, err
}

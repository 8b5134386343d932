package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/simonhull/audioinfo/internal/mp4"
)

// DumpCmd prints every atom with its size and offset, descending into the
// known containers.
type DumpCmd struct {
	File string `arg:"" name:"file" help:"MP4-family file to dump" type:"existingfile"`
}

func (c *DumpCmd) Run() error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	return dumpAtoms(os.Stdout, mp4.NewRoot(f), 0)
}

var containers = map[string]bool{
	"moov": true,
	"trak": true,
	"mdia": true,
	"minf": true,
	"stbl": true,
	"udta": true,
	"meta": true,
	"ilst": true,
	"edts": true,
	"dinf": true,
}

func dumpAtoms(w io.Writer, parent *mp4.Atom, depth int) error {
	indent := strings.Repeat("  ", depth)

	for parent.HasMoreChildren() {
		atom, err := parent.NextChild()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%s (size: %d, offset: %d)\n", indent, atom.Name(), atom.Size(), atom.Offset())

		// ilst items are containers of data atoms
		if !containers[atom.Type()] && parent.Type() != "ilst" {
			continue
		}
		if atom.Type() == "meta" {
			if err := atom.Skip(4, "meta version and flags"); err != nil {
				return err
			}
		}
		if err := dumpAtoms(w, atom, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Package mp4 walks the atom (box) tree of MP4-family files from a
// forward-only stream.
//
// Descent is caller-directed: an Atom only materializes its children when
// asked, and every call that produces a new child first discards whatever
// the caller left unread in the previous one. Memory is bounded by the depth
// of the active path, never by the size of the tree.
//
// An Atom is valid until its parent advances (reads, skips or produces the
// next child). Using a superseded Atom is a programming error and panics.
package mp4

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/types"
)

const (
	headerSize         = 8  // 32-bit size + type
	extendedHeaderSize = 16 // size==1 escape + 64-bit size
)

// Atom is one node of the tree, or the root of the stream.
type Atom struct {
	in     *binary.Cursor
	parent *Atom // nil for the root
	child  *Atom // child currently handed out, nil if none
	err    error // first fatal error, returned by every later call

	typ    string // raw 4-byte code; may contain bytes such as 0xA9
	path   string
	offset int64
	size   int64 // declared total size, -1 when open-ended in an unbounded stream
	header int
	end    int64 // absolute end offset, -1 when bounded only by end of stream
	stale  bool
}

// NewRoot returns the root of the atom tree read from r. The root has no
// type and extends to the end of the stream.
func NewRoot(r io.Reader) *Atom {
	return &Atom{
		in:   binary.NewCursor(r),
		size: -1,
		end:  -1,
	}
}

// Type returns the raw 4-byte type code. Codes such as "©nam" use the
// single byte 0xA9, so compare against "\xA9nam".
func (a *Atom) Type() string { return a.typ }

// Name returns the type code for display, with 0xA9 rendered as ©.
func (a *Atom) Name() string { return printable(a.typ) }

// Path returns the dotted path from the root, e.g. "moov.udta.meta".
func (a *Atom) Path() string { return a.path }

// Parent returns the enclosing atom, nil for the root.
func (a *Atom) Parent() *Atom { return a.parent }

// Offset returns the stream offset of the atom header.
func (a *Atom) Offset() int64 { return a.offset }

// Size returns the declared total size including the header, or -1 for an
// atom running to the end of an unbounded stream.
func (a *Atom) Size() int64 { return a.size }

// HeaderSize returns 8, or 16 for atoms using the 64-bit size escape.
func (a *Atom) HeaderSize() int { return a.header }

// Position returns the absolute stream position.
func (a *Atom) Position() int64 { return a.in.Position() }

// Remaining returns the number of payload bytes not yet read or handed to a
// child, or -1 if the atom is bounded only by the end of the stream.
func (a *Atom) Remaining() int64 {
	if a.end < 0 {
		return -1
	}
	pos := a.in.Position()
	if a.child != nil && a.child.end > pos {
		pos = a.child.end
	}
	return a.end - pos
}

// HasMoreChildren reports whether another child atom follows. For the
// root this releases the current child to look at the stream.
func (a *Atom) HasMoreChildren() bool {
	a.check()
	if a.err != nil {
		return true // surfaced by the next call
	}
	if a.end >= 0 {
		return a.Remaining() > 0
	}
	if a.child != nil && a.child.end < 0 {
		return false
	}
	if err := a.release(); err != nil {
		a.fail(err)
		return true
	}
	return !a.in.AtEOF()
}

// NextChild reads the header of the next child atom. The returned atom is
// bounded to exactly its declared payload.
func (a *Atom) NextChild() (*Atom, error) {
	child, err := a.next()
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, &types.SchemaMismatchError{Atom: a.path, Expected: "child atom", Reason: "no more child atoms"}
	}
	return child, nil
}

// NextChildOf reads the next child atom and requires it to have type typ.
func (a *Atom) NextChildOf(typ string) (*Atom, error) {
	child, err := a.next()
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, &types.SchemaMismatchError{Atom: a.path, Expected: printable(typ), Reason: "no more child atoms"}
	}
	if child.typ != typ {
		return nil, &types.SchemaMismatchError{
			Atom:     a.path,
			Expected: printable(typ),
			Reason:   fmt.Sprintf("found %q", printable(child.typ)),
		}
	}
	return child, nil
}

// NextChildUpTo skips children until one of the given types is found.
// Skipped atoms are consumed entirely. Exhausting the children first is a
// *types.SchemaMismatchError.
func (a *Atom) NextChildUpTo(want ...string) (*Atom, error) {
	for {
		child, err := a.next()
		if err != nil {
			return nil, err
		}
		if child == nil {
			names := make([]string, len(want))
			for i, w := range want {
				names[i] = printable(w)
			}
			return nil, &types.SchemaMismatchError{Atom: a.path, Expected: strings.Join(names, "|")}
		}
		for _, w := range want {
			if child.typ == w {
				return child, nil
			}
		}
	}
}

// next is the single traversal primitive: it releases the previous child
// and reads the following header. Returns nil, nil when no child remains.
func (a *Atom) next() (*Atom, error) {
	a.check()
	if a.err != nil {
		return nil, a.err
	}
	if err := a.release(); err != nil {
		return nil, a.fail(err)
	}

	offset := a.in.Position()
	if a.end >= 0 {
		switch rem := a.end - offset; {
		case rem == 0:
			return nil, nil
		case rem < headerSize:
			return nil, a.fail(&types.MalformedStructureError{
				Atom:   a.path,
				Offset: offset,
				Reason: fmt.Sprintf("%d trailing bytes cannot hold an atom header", rem),
			})
		}
	} else if a.in.AtEOF() {
		return nil, nil
	}

	size32, err := binary.Read[uint32](a.in, "atom size")
	if err != nil {
		return nil, a.fail(err)
	}
	typBytes, err := a.in.ReadFull(4, "atom type")
	if err != nil {
		return nil, a.fail(err)
	}

	child := &Atom{
		in:     a.in,
		parent: a,
		typ:    string(typBytes),
		offset: offset,
		header: headerSize,
	}
	child.path = joinPath(a.path, child.typ)

	switch size32 {
	case 0:
		// Runs to the end of the enclosing container
		child.end = a.end
		child.size = -1
		if a.end >= 0 {
			child.size = a.end - offset
		}
	case 1:
		if a.end >= 0 && a.end-a.in.Position() < 8 {
			return nil, a.fail(&types.MalformedStructureError{
				Atom:   child.path,
				Offset: offset,
				Reason: "extended size field exceeds container",
			})
		}
		size64, err := binary.Read[uint64](a.in, "extended atom size")
		if err != nil {
			return nil, a.fail(err)
		}
		if size64 > math.MaxInt64 {
			return nil, a.fail(&types.MalformedStructureError{
				Atom:   child.path,
				Offset: offset,
				Reason: fmt.Sprintf("unsupported extended size %d", size64),
			})
		}
		child.header = extendedHeaderSize
		child.size = int64(size64)
	default:
		child.size = int64(size32)
	}

	if size32 != 0 {
		if child.size < int64(child.header) {
			return nil, a.fail(&types.MalformedStructureError{
				Atom:   child.path,
				Offset: offset,
				Reason: fmt.Sprintf("declared size %d smaller than header size %d", child.size, child.header),
			})
		}
		child.end = offset + child.size
		if a.end >= 0 && child.end > a.end {
			return nil, a.fail(&types.MalformedStructureError{
				Atom:   child.path,
				Offset: offset,
				Reason: fmt.Sprintf("declared size %d exceeds the %d bytes left in %s", child.size, a.end-offset, a.describe()),
			})
		}
	}

	a.child = child
	return child, nil
}

// release supersedes the current child and skips its unread remainder.
func (a *Atom) release() error {
	c := a.child
	if c == nil {
		return nil
	}
	a.child = nil
	for x := c; x != nil; x = x.child {
		x.stale = true
	}

	if c.end < 0 {
		return a.in.SkipAll(c.path)
	}
	if pos := a.in.Position(); pos < c.end {
		if err := a.in.Skip(c.end-pos, c.path); err != nil {
			return withAtom(err, c.path)
		}
	}
	return nil
}

func (a *Atom) fail(err error) error {
	err = withAtom(err, a.path)
	a.err = err
	return err
}

func (a *Atom) check() {
	if a.stale {
		panic(fmt.Sprintf("mp4: use of superseded atom %s", a.describe()))
	}
}

func (a *Atom) describe() string {
	if a.path == "" {
		return "root"
	}
	return a.path
}

// String returns a diagnostic description of the atom.
func (a *Atom) String() string {
	return fmt.Sprintf("%s[off=%d,size=%d,remaining=%d]", a.describe(), a.offset, a.size, a.Remaining())
}

// withAtom fills in the atom path of truncation errors raised by the cursor.
func withAtom(err error, path string) error {
	var trunc *types.TruncatedInputError
	if errors.As(err, &trunc) && trunc.Atom == "" {
		trunc.Atom = path
	}
	return err
}

func joinPath(parent, typ string) string {
	if parent == "" {
		return printable(typ)
	}
	return parent + "." + printable(typ)
}

// printable renders a raw type code for paths and messages.
func printable(typ string) string {
	s, err := binary.DecodeString([]byte(typ), binary.Latin1)
	if err != nil || s == "" {
		return fmt.Sprintf("%q", typ)
	}
	return s
}

// Package binary provides forward-only binary reading primitives with exact
// byte accounting.
//
// The parser only reads. SafeWriter, Atom, ExtendedAtom and BE build atom
// bytes for test fixtures and tooling.
package binary

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/simonhull/audioinfo/internal/types"
)

// smallRead is the largest read served from a single preallocated buffer.
// Larger reads grow as data arrives so a lying size field cannot force a
// huge allocation before truncation is detected.
const smallRead = 64 * 1024

// Cursor wraps a forward-only byte source and tracks the absolute position.
//
// Every read is exact: fewer bytes than requested is a
// *types.TruncatedInputError, never a partial result.
type Cursor struct {
	src io.Reader
	r   *bufio.Reader
	pos int64
}

// Peeked is a buffered reader whose leading bytes have been inspected,
// together with the source it buffers. Handing a Peeked to NewCursor keeps
// the peeked bytes and still lets Skip seek the source.
type Peeked struct {
	*bufio.Reader
	Source io.Reader
}

// NewPeeked buffers r for peeking.
func NewPeeked(r io.Reader) *Peeked {
	return &Peeked{Reader: bufio.NewReader(r), Source: r}
}

// NewCursor creates a Cursor positioned at the first byte of r.
func NewCursor(r io.Reader) *Cursor {
	switch v := r.(type) {
	case *Peeked:
		return &Cursor{src: v.Source, r: v.Reader}
	case *bufio.Reader:
		return &Cursor{src: r, r: v}
	default:
		return &Cursor{src: r, r: bufio.NewReader(r)}
	}
}

// Position returns the number of bytes consumed so far.
func (c *Cursor) Position() int64 {
	return c.pos
}

// AtEOF reports whether the source is exhausted. Read errors other than
// io.EOF report false so that the next read surfaces them.
func (c *Cursor) AtEOF() bool {
	_, err := c.r.Peek(1)
	return errors.Is(err, io.EOF)
}

// ReadFull reads exactly n bytes.
func (c *Cursor) ReadFull(n int64, what string) ([]byte, error) {
	start := c.pos
	if n <= smallRead {
		buf := make([]byte, n)
		m, err := io.ReadFull(c.r, buf)
		c.pos += int64(m)
		if err != nil {
			return nil, c.readError(err, what, start, n, int64(m))
		}
		return buf, nil
	}

	var buf bytes.Buffer
	m, err := io.CopyN(&buf, c.r, n)
	c.pos += m
	if err != nil {
		return nil, c.readError(err, what, start, n, m)
	}
	return buf.Bytes(), nil
}

// ReadAll reads until the end of the source.
func (c *Cursor) ReadAll(what string) ([]byte, error) {
	buf, err := io.ReadAll(c.r)
	c.pos += int64(len(buf))
	if err != nil {
		return nil, fmt.Errorf("read %s at offset %d: %w", what, c.pos, err)
	}
	return buf, nil
}

// Skip discards exactly n bytes. When the underlying source is an
// io.Seeker the bytes beyond the read buffer are skipped by seeking forward.
func (c *Cursor) Skip(n int64, what string) error {
	start := c.pos

	buffered := int64(c.r.Buffered())
	if s, ok := c.src.(io.Seeker); ok && n > buffered {
		// Pipes implement io.Seeker but fail here; fall back to discarding.
		if cur, err := s.Seek(0, io.SeekCurrent); err == nil {
			if _, err := c.r.Discard(int(buffered)); err != nil {
				return c.readError(err, what, start, n, 0)
			}
			c.pos += buffered
			skipped, err := seekForward(s, cur, n-buffered)
			c.pos += skipped
			c.r.Reset(c.src)
			if err != nil {
				return c.readError(err, what, start, n, c.pos-start)
			}
			return nil
		}
	}

	for remaining := n; remaining > 0; {
		step := min(remaining, math.MaxInt32)
		d, err := c.r.Discard(int(step))
		c.pos += int64(d)
		remaining -= int64(d)
		if err != nil {
			return c.readError(err, what, start, n, n-remaining)
		}
	}
	return nil
}

// SkipAll discards everything up to the end of the source.
func (c *Cursor) SkipAll(what string) error {
	n, err := io.Copy(io.Discard, c.r)
	c.pos += n
	if err != nil {
		return fmt.Errorf("skip %s at offset %d: %w", what, c.pos, err)
	}
	return nil
}

// seekForward advances s from cur by n bytes without passing its end.
func seekForward(s io.Seeker, cur, n int64) (int64, error) {
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	target := min(cur+n, end)
	if _, err := s.Seek(target, io.SeekStart); err != nil {
		return 0, err
	}
	if target-cur < n {
		return target - cur, io.ErrUnexpectedEOF
	}
	return n, nil
}

func (c *Cursor) readError(err error, what string, offset, want, got int64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &types.TruncatedInputError{
			What:   what,
			Offset: offset,
			Want:   want,
			Got:    got,
		}
	}
	return fmt.Errorf("read %s at offset %d: %w", what, offset, err)
}

// Unsigned is the set of fixed-width integers the cursor decodes.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

// Read reads a big-endian value of type T and advances the cursor.
func Read[T Unsigned](c *Cursor, what string) (T, error) {
	buf, err := c.ReadFull(int64(SizeOf[T]()), what)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](buf), nil
}

package mp4

import (
	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/types"
)

// read consumes exactly n payload bytes. A read that would run past the
// end of the atom fails without consuming anything.
func (a *Atom) read(n int64, what string) ([]byte, error) {
	a.check()
	if a.err != nil {
		return nil, a.err
	}
	if err := a.release(); err != nil {
		return nil, a.fail(err)
	}
	if a.end >= 0 {
		pos := a.in.Position()
		if rem := a.end - pos; n > rem {
			return nil, &types.TruncatedInputError{
				Atom:   a.path,
				What:   what,
				Offset: pos,
				Want:   n,
				Got:    rem,
			}
		}
	}
	buf, err := a.in.ReadFull(n, what)
	if err != nil {
		return nil, a.fail(err)
	}
	return buf, nil
}

func readUnsigned[T binary.Unsigned](a *Atom, what string) (T, error) {
	buf, err := a.read(int64(binary.SizeOf[T]()), what)
	if err != nil {
		var zero T
		return zero, err
	}
	return binary.Decode[T](buf), nil
}

// ReadUint8 reads one byte.
func (a *Atom) ReadUint8(what string) (uint8, error) {
	return readUnsigned[uint8](a, what)
}

// ReadUint16 reads a big-endian 16-bit integer.
func (a *Atom) ReadUint16(what string) (uint16, error) {
	return readUnsigned[uint16](a, what)
}

// ReadUint32 reads a big-endian 32-bit integer.
func (a *Atom) ReadUint32(what string) (uint32, error) {
	return readUnsigned[uint32](a, what)
}

// ReadUint64 reads a big-endian 64-bit integer.
func (a *Atom) ReadUint64(what string) (uint64, error) {
	return readUnsigned[uint64](a, what)
}

// ReadBool reads one byte; any nonzero value is true.
func (a *Atom) ReadBool(what string) (bool, error) {
	b, err := a.ReadUint8(what)
	return b != 0, err
}

// ReadIntegerFixedPoint reads a signed 16.16 fixed-point value.
func (a *Atom) ReadIntegerFixedPoint(what string) (float64, error) {
	raw, err := a.ReadUint32(what)
	if err != nil {
		return 0, err
	}
	return binary.IntegerFixedPoint(raw), nil
}

// ReadShortFixedPoint reads a signed 8.8 fixed-point value.
func (a *Atom) ReadShortFixedPoint(what string) (float64, error) {
	raw, err := a.ReadUint16(what)
	if err != nil {
		return 0, err
	}
	return binary.ShortFixedPoint(raw), nil
}

// ReadString reads n bytes and decodes them as trimmed text.
func (a *Atom) ReadString(n int64, enc binary.Encoding, what string) (string, error) {
	buf, err := a.read(n, what)
	if err != nil {
		return "", err
	}
	return binary.DecodeString(buf, enc)
}

// ReadRemainingString decodes all unread payload bytes as trimmed text.
func (a *Atom) ReadRemainingString(enc binary.Encoding, what string) (string, error) {
	buf, err := a.ReadBytes(what)
	if err != nil {
		return "", err
	}
	return binary.DecodeString(buf, enc)
}

// ReadBytes returns all unread payload bytes.
func (a *Atom) ReadBytes(what string) ([]byte, error) {
	a.check()
	if a.err != nil {
		return nil, a.err
	}
	if err := a.release(); err != nil {
		return nil, a.fail(err)
	}
	if a.end >= 0 {
		return a.read(a.Remaining(), what)
	}
	buf, err := a.in.ReadAll(what)
	if err != nil {
		return nil, a.fail(err)
	}
	return buf, nil
}

// Skip discards n payload bytes.
func (a *Atom) Skip(n int64, what string) error {
	a.check()
	if a.err != nil {
		return a.err
	}
	if err := a.release(); err != nil {
		return a.fail(err)
	}
	if a.end >= 0 {
		pos := a.in.Position()
		if rem := a.end - pos; n > rem {
			return &types.TruncatedInputError{
				Atom:   a.path,
				What:   what,
				Offset: pos,
				Want:   n,
				Got:    rem,
			}
		}
	}
	if err := a.in.Skip(n, what); err != nil {
		return a.fail(err)
	}
	return nil
}

// Discard skips everything the atom has left, including any active child.
func (a *Atom) Discard() error {
	a.check()
	if a.err != nil {
		return a.err
	}
	if err := a.release(); err != nil {
		return a.fail(err)
	}
	if a.end < 0 {
		if err := a.in.SkipAll(a.describe()); err != nil {
			return a.fail(err)
		}
		return nil
	}
	return a.Skip(a.Remaining(), "remainder")
}

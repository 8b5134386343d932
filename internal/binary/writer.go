package binary

import (
	"bytes"
	"encoding/binary"
	"io"
)

// SafeWriter wraps io.Writer with position tracking. It builds atom trees
// for fixtures and tooling; the library itself never writes files.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{
		w:      w,
		offset: 0,
	}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// Write writes a value of type T in big-endian byte order.
func Write[T Unsigned](sw *SafeWriter, val T) error {
	buf := make([]byte, SizeOf[T]())
	switch v := any(val).(type) {
	case uint8:
		buf[0] = v
	case uint16:
		binary.BigEndian.PutUint16(buf, v)
	case uint32:
		binary.BigEndian.PutUint32(buf, v)
	case uint64:
		binary.BigEndian.PutUint64(buf, v)
	}
	return sw.WriteBytes(buf)
}

// WriteAtom writes an atom with a 32-bit size header around payload.
// typ must be exactly 4 bytes; it may contain non-ASCII bytes such as 0xA9.
func (sw *SafeWriter) WriteAtom(typ string, payload ...[]byte) error {
	body := bytes.Join(payload, nil)
	if err := Write(sw, uint32(8+len(body))); err != nil {
		return err
	}
	if err := sw.WriteString(typ); err != nil {
		return err
	}
	return sw.WriteBytes(body)
}

// WriteExtendedAtom writes an atom using the size==1 escape and a 64-bit
// size field.
func (sw *SafeWriter) WriteExtendedAtom(typ string, payload ...[]byte) error {
	body := bytes.Join(payload, nil)
	if err := Write(sw, uint32(1)); err != nil {
		return err
	}
	if err := sw.WriteString(typ); err != nil {
		return err
	}
	if err := Write(sw, uint64(16+len(body))); err != nil {
		return err
	}
	return sw.WriteBytes(body)
}

// Atom returns the encoding of a single atom.
func Atom(typ string, payload ...[]byte) []byte {
	var buf bytes.Buffer
	_ = NewSafeWriter(&buf).WriteAtom(typ, payload...) //nolint:errcheck // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// ExtendedAtom returns the encoding of a single atom with a 64-bit size.
func ExtendedAtom(typ string, payload ...[]byte) []byte {
	var buf bytes.Buffer
	_ = NewSafeWriter(&buf).WriteExtendedAtom(typ, payload...) //nolint:errcheck // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// BE returns the big-endian encoding of val.
func BE[T Unsigned](val T) []byte {
	var buf bytes.Buffer
	_ = Write(NewSafeWriter(&buf), val) //nolint:errcheck // bytes.Buffer writes do not fail
	return buf.Bytes()
}

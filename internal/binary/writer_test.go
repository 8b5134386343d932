package binary

import (
	"bytes"
	"testing"
)

func TestSafeWriter_WriteUint32BE(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	err := Write[uint32](sw, 0x12345678)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []byte{0x12, 0x34, 0x56, 0x78}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestSafeWriter_Offset(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if sw.Offset() != 0 {
		t.Errorf("expected initial offset 0, got %d", sw.Offset())
	}

	steps := []struct {
		write func() error
		want  int64
	}{
		{func() error { return Write[uint8](sw, 0x01) }, 1},
		{func() error { return Write[uint16](sw, 0x0203) }, 3},
		{func() error { return Write[uint32](sw, 0x04050607) }, 7},
		{func() error { return Write[uint64](sw, 0x08090A0B0C0D0E0F) }, 15},
		{func() error { return sw.WriteString("ftyp") }, 19},
	}

	for i, step := range steps {
		if err := step.write(); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if sw.Offset() != step.want {
			t.Errorf("step %d: expected offset %d, got %d", i, step.want, sw.Offset())
		}
	}
}

func TestAtom(t *testing.T) {
	got := Atom("\xA9nam", []byte("ab"), []byte("c"))
	want := []byte{0, 0, 0, 11, 0xA9, 'n', 'a', 'm', 'a', 'b', 'c'}
	if !bytes.Equal(got, want) {
		t.Errorf("Atom() = %v, want %v", got, want)
	}
}

func TestExtendedAtom(t *testing.T) {
	got := ExtendedAtom("mdat", []byte{1, 2, 3, 4})
	want := []byte{
		0, 0, 0, 1, 'm', 'd', 'a', 't',
		0, 0, 0, 0, 0, 0, 0, 20,
		1, 2, 3, 4,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ExtendedAtom() = %v, want %v", got, want)
	}
}

func TestBE(t *testing.T) {
	if got := BE[uint16](0x0102); !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("BE[uint16] = %v", got)
	}
	if got := BE[uint64](1); len(got) != 8 || got[7] != 1 {
		t.Errorf("BE[uint64] = %v", got)
	}
}

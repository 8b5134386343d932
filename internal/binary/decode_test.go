package binary

import "testing"

func TestDecode(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	if got := Decode[uint8](buf); got != 0x01 {
		t.Errorf("Decode[uint8] = %#x", got)
	}
	if got := Decode[uint16](buf); got != 0x0102 {
		t.Errorf("Decode[uint16] = %#x", got)
	}
	if got := Decode[uint32](buf); got != 0x01020304 {
		t.Errorf("Decode[uint32] = %#x", got)
	}
	if got := Decode[uint64](buf); got != 0x0102030405060708 {
		t.Errorf("Decode[uint64] = %#x", got)
	}
}

func TestSizeOf(t *testing.T) {
	if SizeOf[uint8]() != 1 || SizeOf[uint16]() != 2 || SizeOf[uint32]() != 4 || SizeOf[uint64]() != 8 {
		t.Error("SizeOf returned unexpected widths")
	}
}

func TestIntegerFixedPoint(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want float64
	}{
		{"one", []byte{0x00, 0x01, 0x00, 0x00}, 1.0},
		{"half", []byte{0x00, 0x00, 0x80, 0x00}, 0.5},
		{"sign bit set", []byte{0xAC, 0x44, 0x00, 0x00}, -21436.0},
		{"minus one", []byte{0xFF, 0xFF, 0x00, 0x00}, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntegerFixedPoint(Decode[uint32](tt.raw)); got != tt.want {
				t.Errorf("IntegerFixedPoint(% x) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestShortFixedPoint(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want float64
	}{
		{"one", []byte{0x01, 0x00}, 1.0},
		{"quarter", []byte{0x00, 0x40}, 0.25},
		{"zero", []byte{0x00, 0x00}, 0},
		{"minus half", []byte{0xFF, 0x80}, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortFixedPoint(Decode[uint16](tt.raw)); got != tt.want {
				t.Errorf("ShortFixedPoint(% x) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

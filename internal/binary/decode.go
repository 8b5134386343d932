package binary

import "encoding/binary"

// SizeOf returns the encoded width of T in bytes.
func SizeOf[T Unsigned]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// Decode converts big-endian bytes to a value of type T.
// buf must hold at least SizeOf[T]() bytes.
func Decode[T Unsigned](buf []byte) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(buf[0])
	case uint16:
		return T(binary.BigEndian.Uint16(buf))
	case uint32:
		return T(binary.BigEndian.Uint32(buf))
	default:
		return T(binary.BigEndian.Uint64(buf))
	}
}

// IntegerFixedPoint decodes a signed 16.16 fixed-point value (rates, speed).
func IntegerFixedPoint(raw uint32) float64 {
	return float64(int32(raw)) / (1 << 16)
}

// ShortFixedPoint decodes a signed 8.8 fixed-point value (volume).
func ShortFixedPoint(raw uint16) float64 {
	return float64(int16(raw)) / (1 << 8)
}

package encoding

import "github.com/x448/float16"

// HalfToFloat64 converts the bits of an IEEE 754 half precision number.
// Subnormals, infinities and NaN are preserved.
func HalfToFloat64(bits uint16) float64 {
	return float64(float16.Frombits(bits).Float32())
}

// DecodeFloat16 reads 2 little-endian bytes as a half precision float and widens it.
func DecodeFloat16(b []byte) float64 {
	return HalfToFloat64(uint16(DecodeFixed(b[:2])))
}

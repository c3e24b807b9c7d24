package encoding

import (
	"math"

	"golang.org/x/exp/constraints"
)

// The ladders list the integer markers from the narrowest to the widest.
// The first marker whose domain contains the value is the one used on the wire.
// Signed and unsigned values share the same ladder, except that only
// unsigned values may require the M marker.
var signedLadder = []struct {
	min, max int64
	marker   byte
}{
	{math.MinInt8, math.MaxInt8, Int8Marker},
	{0, math.MaxUint8, Uint8Marker},
	{math.MinInt16, math.MaxInt16, Int16Marker},
	{0, math.MaxUint16, Uint16Marker},
	{math.MinInt32, math.MaxInt32, Int32Marker},
	{0, math.MaxUint32, Uint32Marker},
	{math.MinInt64, math.MaxInt64, Int64Marker},
}

var unsignedLadder = []struct {
	max    uint64
	marker byte
}{
	{math.MaxInt8, Int8Marker},
	{math.MaxUint8, Uint8Marker},
	{math.MaxInt16, Int16Marker},
	{math.MaxUint16, Uint16Marker},
	{math.MaxInt32, Int32Marker},
	{math.MaxUint32, Uint32Marker},
	{math.MaxInt64, Int64Marker},
	{math.MaxUint64, Uint64Marker},
}

// IntMarker returns the smallest marker able to represent n.
func IntMarker(n int64) byte {
	for _, r := range signedLadder {
		if n >= r.min && n <= r.max {
			return r.marker
		}
	}

	return Int64Marker
}

// UintMarker returns the smallest marker able to represent n.
func UintMarker(n uint64) byte {
	for _, r := range unsignedLadder {
		if n <= r.max {
			return r.marker
		}
	}

	return Uint64Marker
}

// EncodeInt appends the smallest marker able to represent n followed by n.
func EncodeInt(dst []byte, n int64) []byte {
	m := IntMarker(n)
	return AppendFixed(append(dst, m), Width(m), n)
}

// EncodeUint appends the smallest marker able to represent n followed by n.
func EncodeUint(dst []byte, n uint64) []byte {
	m := UintMarker(n)
	return AppendFixed(append(dst, m), Width(m), n)
}

// EncodeFloat64 appends a D marker followed by f.
func EncodeFloat64(dst []byte, f float64) []byte {
	return AppendFloat64(append(dst, Float64Marker), f)
}

// AppendFixed appends the width lowest bytes of n, little-endian.
// Negative numbers are written in two's complement.
func AppendFixed[T constraints.Integer](dst []byte, width int, n T) []byte {
	u := uint64(n)
	for i := 0; i < width; i++ {
		dst = append(dst, byte(u>>(8*i)))
	}
	return dst
}

// AppendFloat64 appends the IEEE 754 representation of f, little-endian.
func AppendFloat64(dst []byte, f float64) []byte {
	return AppendFixed(dst, 8, math.Float64bits(f))
}

// AppendFloat32 appends the single precision representation of f, little-endian.
func AppendFloat32(dst []byte, f float32) []byte {
	return AppendFixed(dst, 4, math.Float32bits(f))
}

// DecodeFixed reads b as a little-endian unsigned integer.
func DecodeFixed(b []byte) uint64 {
	var u uint64
	for i := len(b) - 1; i >= 0; i-- {
		u = u<<8 | uint64(b[i])
	}
	return u
}

// DecodeSigned reads b as a little-endian two's complement integer.
func DecodeSigned(b []byte) int64 {
	shift := 64 - 8*uint(len(b))
	return int64(DecodeFixed(b)<<shift) >> shift
}

// DecodeFloat32 reads 4 bytes as a single precision float and widens it.
func DecodeFloat32(b []byte) float64 {
	return float64(math.Float32frombits(uint32(DecodeFixed(b[:4]))))
}

// DecodeFloat64 reads 8 bytes as a double precision float.
func DecodeFloat64(b []byte) float64 {
	return math.Float64frombits(DecodeFixed(b[:8]))
}

package encoding_test

import (
	"math"
	"testing"

	"github.com/chaisql/bjdata/internal/encoding"
	"github.com/stretchr/testify/require"
)

func TestHalfToFloat64(t *testing.T) {
	tests := []struct {
		bits uint16
		want float64
	}{
		{0x0000, 0},
		{0x3C00, 1},
		{0xC000, -2},
		{0x3555, 0.333251953125},
		{0x7BFF, 65504},
		{0x0400, math.Ldexp(1, -14)},
		{0x0001, math.Ldexp(1, -24)},
		{0x7C00, math.Inf(1)},
		{0xFC00, math.Inf(-1)},
	}

	for _, test := range tests {
		require.Equal(t, test.want, encoding.HalfToFloat64(test.bits), "%#04x", test.bits)
	}

	require.True(t, math.IsNaN(encoding.HalfToFloat64(0x7E00)))
	require.True(t, math.Signbit(encoding.HalfToFloat64(0x8000)))
}

func TestDecodeFloat16(t *testing.T) {
	require.Equal(t, 1.0, encoding.DecodeFloat16([]byte{0x00, 0x3C}))
	require.Equal(t, -2.0, encoding.DecodeFloat16([]byte{0x00, 0xC0}))
}

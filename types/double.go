package types

import (
	"math"
	"strconv"
)

var _ Value = NewDoubleValue(0)

type DoubleValue float64

// NewDoubleValue returns a double value.
func NewDoubleValue(x float64) DoubleValue {
	return DoubleValue(x)
}

func (v DoubleValue) V() any {
	return float64(v)
}

func (v DoubleValue) Type() Type {
	return TypeDouble
}

func (v DoubleValue) String() string {
	data, _ := v.MarshalJSON()
	return string(data)
}

// MarshalJSON writes NaN and infinities as null, JSON has no literal for them.
func (v DoubleValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}

	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 {
		if abs < 1e-6 || abs >= 1e21 {
			fmt = 'e'
		}
	}

	// By default the precision is -1 to use the smallest number of digits.
	// See https://pkg.go.dev/strconv#FormatFloat
	prec := -1
	b := strconv.AppendFloat(nil, f, fmt, prec, 64)
	if fmt == 'f' && math.Trunc(f) == f {
		// keep doubles distinguishable from integers once printed
		b = append(b, ".0"...)
	}
	return b, nil
}

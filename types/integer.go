package types

import (
	"strconv"
)

var _ Value = NewIntegerValue(0)

// IntegerValue is a signed 64-bit integer.
type IntegerValue int64

// NewIntegerValue returns a signed integer value.
func NewIntegerValue(x int64) IntegerValue {
	return IntegerValue(x)
}

func (v IntegerValue) V() any {
	return int64(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v IntegerValue) MarshalText() ([]byte, error) {
	return strconv.AppendInt(nil, int64(v), 10), nil
}

func (v IntegerValue) MarshalJSON() ([]byte, error) {
	return v.MarshalText()
}

var _ Value = NewUnsignedValue(0)

// UnsignedValue is an unsigned 64-bit integer.
type UnsignedValue uint64

// NewUnsignedValue returns an unsigned integer value.
func NewUnsignedValue(x uint64) UnsignedValue {
	return UnsignedValue(x)
}

func (v UnsignedValue) V() any {
	return uint64(v)
}

func (v UnsignedValue) Type() Type {
	return TypeUnsigned
}

func (v UnsignedValue) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

func (v UnsignedValue) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(v), 10), nil
}

func (v UnsignedValue) MarshalJSON() ([]byte, error) {
	return v.MarshalText()
}

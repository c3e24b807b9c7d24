package types

import (
	"fmt"
	"math"
)

// A Value is one node of a value tree.
type Value interface {
	Type() Type
	V() any
	String() string
	MarshalJSON() ([]byte, error)
}

func AsBool(v Value) bool {
	return v.V().(bool)
}

// AsInt64 returns the value of a signed or unsigned integer as an int64.
// It panics if an unsigned value doesn't fit.
func AsInt64(v Value) int64 {
	switch x := v.(type) {
	case IntegerValue:
		return int64(x)
	case UnsignedValue:
		if x > math.MaxInt64 {
			panic(fmt.Errorf("value %d out of range for int64", uint64(x)))
		}
		return int64(x)
	}

	return v.V().(int64)
}

// AsUint64 returns the value of a signed or unsigned integer as an uint64.
// It panics if a signed value is negative.
func AsUint64(v Value) uint64 {
	switch x := v.(type) {
	case UnsignedValue:
		return uint64(x)
	case IntegerValue:
		if x < 0 {
			panic(fmt.Errorf("value %d out of range for uint64", int64(x)))
		}
		return uint64(x)
	}

	return v.V().(uint64)
}

// AsFloat64 returns the value of any number as a float64.
func AsFloat64(v Value) float64 {
	switch x := v.(type) {
	case DoubleValue:
		return float64(x)
	case IntegerValue:
		return float64(x)
	case UnsignedValue:
		return float64(x)
	}

	return v.V().(float64)
}

func AsString(v Value) string {
	tv, ok := v.(TextValue)
	if !ok {
		return v.V().(string)
	}

	return string(tv)
}

func AsByteSlice(v Value) []byte {
	bv, ok := v.(BlobValue)
	if !ok {
		return v.V().([]byte)
	}

	return bv.Data
}

func AsArray(v Value) *ArrayValue {
	return v.(*ArrayValue)
}

func AsObject(v Value) *ObjectValue {
	return v.(*ObjectValue)
}

func IsNull(v Value) bool {
	return v == nil || v.Type() == TypeNull
}

// IsDiscarded reports whether v is the sentinel returned by failed non-throwing decodes.
func IsDiscarded(v Value) bool {
	return v != nil && v.Type() == TypeDiscarded
}

// FitsInt64 reports whether the integer v can be represented as an int64.
func FitsInt64(v Value) bool {
	switch x := v.(type) {
	case IntegerValue:
		return true
	case UnsignedValue:
		return x <= math.MaxInt64
	}
	return false
}

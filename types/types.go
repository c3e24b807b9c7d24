// Package types defines the values handled by the BJData codec.
//
// Each kind of value is represented by its own Go type implementing the Value interface.
// Integers keep track of their signedness: a value read from an unsigned marker is an
// UnsignedValue, a value read from a signed marker is an IntegerValue.
package types

import "fmt"

// Type represents the kind of a value.
type Type uint8

// List of supported types.
const (
	// TypeDiscarded marks the result of a parse that failed in non-throwing mode.
	TypeDiscarded Type = iota
	TypeNull
	TypeBoolean
	TypeInteger
	TypeUnsigned
	TypeDouble
	TypeText
	TypeBlob
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeDiscarded:
		return "discarded"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeUnsigned:
		return "unsigned"
	case TypeDouble:
		return "double"
	case TypeText:
		return "text"
	case TypeBlob:
		return "blob"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// IsNumber returns true if t is either an integer, an unsigned integer or a double.
func (t Type) IsNumber() bool {
	return t == TypeInteger || t == TypeUnsigned || t == TypeDouble
}

// IsInteger returns true if t is a signed or unsigned integer.
func (t Type) IsInteger() bool {
	return t == TypeInteger || t == TypeUnsigned
}

// IsContainer returns true if t is an array or an object.
func (t Type) IsContainer() bool {
	return t == TypeArray || t == TypeObject
}

package types

import (
	"bytes"
)

var _ Value = NewArrayValue()

// ArrayValue is an ordered list of values.
type ArrayValue struct {
	values []Value
}

// NewArrayValue returns an array holding the given values.
func NewArrayValue(values ...Value) *ArrayValue {
	if values == nil {
		// If called with no values keep a non-nil slice.
		values = []Value{}
	}
	return &ArrayValue{values: values}
}

// NewArrayValueWithCapacity returns an empty array with room for n values.
func NewArrayValueWithCapacity(n int) *ArrayValue {
	return &ArrayValue{values: make([]Value, 0, n)}
}

func (v *ArrayValue) V() any {
	return v.values
}

func (v *ArrayValue) Type() Type {
	return TypeArray
}

// Len returns the number of values of the array.
func (v *ArrayValue) Len() int {
	return len(v.values)
}

// At returns the value stored at index i.
func (v *ArrayValue) At(i int) Value {
	return v.values[i]
}

// Values returns the underlying slice.
func (v *ArrayValue) Values() []Value {
	return v.values
}

// Append adds x at the end of the array.
func (v *ArrayValue) Append(x Value) *ArrayValue {
	v.values = append(v.values, x)
	return v
}

// Iterate goes through all the values of the array and calls fn for each of them.
// If fn returns an error, the iteration stops.
func (v *ArrayValue) Iterate(fn func(i int, value Value) error) error {
	for i, x := range v.values {
		err := fn(i, x)
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *ArrayValue) String() string {
	data, _ := v.MarshalJSON()
	return string(data)
}

func (v *ArrayValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')
	for i, x := range v.values {
		if i > 0 {
			buf.WriteString(", ")
		}

		data, err := x.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

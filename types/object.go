package types

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// ErrFieldNotFound is returned by ObjectValue.Get when the key doesn't exist.
var ErrFieldNotFound = errors.New("field not found")

var _ Value = NewObjectValue()

// ObjectValue maps keys to values. Keys are unique and kept in insertion order.
type ObjectValue struct {
	fields []fieldValue
	index  map[string]int
}

type fieldValue struct {
	Key   string
	Value Value
}

// NewObjectValue creates an empty object.
func NewObjectValue() *ObjectValue {
	return new(ObjectValue)
}

func (o *ObjectValue) V() any {
	return o
}

func (o *ObjectValue) Type() Type {
	return TypeObject
}

// Len returns the number of fields.
func (o *ObjectValue) Len() int {
	return len(o.fields)
}

// Add sets the value of key. An existing key keeps its position
// and gets its value replaced.
func (o *ObjectValue) Add(key string, v Value) *ObjectValue {
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = v
		return o
	}

	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, fieldValue{key, v})
	return o
}

// Get returns the value associated with key or ErrFieldNotFound.
func (o *ObjectValue) Get(key string) (Value, error) {
	i, ok := o.index[key]
	if !ok {
		return nil, errors.WithStack(ErrFieldNotFound)
	}

	return o.fields[i].Value, nil
}

// Has reports whether key is set.
func (o *ObjectValue) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Field returns the key and the value of the i-th field.
func (o *ObjectValue) Field(i int) (string, Value) {
	return o.fields[i].Key, o.fields[i].Value
}

// Keys returns the keys in insertion order.
func (o *ObjectValue) Keys() []string {
	keys := make([]string, len(o.fields))
	for i := range o.fields {
		keys[i] = o.fields[i].Key
	}
	return keys
}

// Iterate goes through all the fields of the object in insertion order.
// If fn returns an error, the iteration stops.
func (o *ObjectValue) Iterate(fn func(key string, value Value) error) error {
	for _, fv := range o.fields {
		err := fn(fv.Key, fv.Value)
		if err != nil {
			return err
		}
	}

	return nil
}

func (o *ObjectValue) String() string {
	data, _ := o.MarshalJSON()
	return string(data)
}

func (o *ObjectValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, fv := range o.fields {
		if i > 0 {
			buf.WriteString(", ")
		}

		buf.Write(appendQuoted(nil, fv.Key))
		buf.WriteString(": ")

		data, err := fv.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

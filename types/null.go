package types

var _ Value = NewNullValue()

type NullValue struct{}

// NewNullValue returns a null value.
func NewNullValue() NullValue {
	return NullValue{}
}

func (v NullValue) V() any {
	return nil
}

func (v NullValue) Type() Type {
	return TypeNull
}

func (v NullValue) String() string {
	return "null"
}

func (v NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

var _ Value = NewDiscardedValue()

// DiscardedValue is returned in place of a value tree when a decode
// fails and errors were disabled.
type DiscardedValue struct{}

func NewDiscardedValue() DiscardedValue {
	return DiscardedValue{}
}

func (v DiscardedValue) V() any {
	return nil
}

func (v DiscardedValue) Type() Type {
	return TypeDiscarded
}

func (v DiscardedValue) String() string {
	return "<discarded>"
}

func (v DiscardedValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

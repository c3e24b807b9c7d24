package bjdata

import (
	"github.com/chaisql/bjdata/types"
)

// UnknownSize is passed to StartArray and StartObject when the input
// doesn't announce the number of elements.
const UnknownSize = -1

// A Handler receives the events produced by DecodeSAX.
// Returning false from any method stops decoding immediately. This
// is not treated as an error.
type Handler interface {
	Null() bool
	Boolean(v bool) bool
	NumberInteger(v int64) bool
	NumberUnsigned(v uint64) bool
	NumberFloat(v float64) bool
	String(v string) bool
	Binary(v []byte) bool
	// StartObject is called with the announced number of pairs, or UnknownSize.
	StartObject(size int) bool
	Key(k string) bool
	EndObject() bool
	// StartArray is called with the announced number of elements, or UnknownSize.
	StartArray(size int) bool
	EndArray() bool
}

var _ Handler = new(TreeBuilder)

// TreeBuilder is a Handler building a value tree.
type TreeBuilder struct {
	root  types.Value
	stack []frame
}

type frame struct {
	arr *types.ArrayValue
	obj *types.ObjectValue
	key string
}

// maxPrealloc caps the capacity reserved from an announced size,
// which comes from untrusted input.
const maxPrealloc = 1024

// Value returns the root of the tree, or nil if nothing was built yet.
func (b *TreeBuilder) Value() types.Value {
	return b.root
}

// Reset prepares the builder for a new tree.
func (b *TreeBuilder) Reset() {
	b.root = nil
	b.stack = b.stack[:0]
}

func (b *TreeBuilder) add(v types.Value) bool {
	if len(b.stack) == 0 {
		b.root = v
		return true
	}

	f := &b.stack[len(b.stack)-1]
	if f.arr != nil {
		f.arr.Append(v)
	} else {
		f.obj.Add(f.key, v)
	}
	return true
}

func (b *TreeBuilder) Null() bool                   { return b.add(types.NewNullValue()) }
func (b *TreeBuilder) Boolean(v bool) bool          { return b.add(types.NewBooleanValue(v)) }
func (b *TreeBuilder) NumberInteger(v int64) bool   { return b.add(types.NewIntegerValue(v)) }
func (b *TreeBuilder) NumberUnsigned(v uint64) bool { return b.add(types.NewUnsignedValue(v)) }
func (b *TreeBuilder) NumberFloat(v float64) bool   { return b.add(types.NewDoubleValue(v)) }
func (b *TreeBuilder) String(v string) bool         { return b.add(types.NewTextValue(v)) }

func (b *TreeBuilder) Binary(v []byte) bool {
	return b.add(types.NewBlobValue(append([]byte(nil), v...)))
}

func (b *TreeBuilder) StartObject(size int) bool {
	obj := types.NewObjectValue()
	b.add(obj)
	b.stack = append(b.stack, frame{obj: obj})
	return true
}

func (b *TreeBuilder) Key(k string) bool {
	b.stack[len(b.stack)-1].key = k
	return true
}

func (b *TreeBuilder) EndObject() bool {
	b.stack = b.stack[:len(b.stack)-1]
	return true
}

func (b *TreeBuilder) StartArray(size int) bool {
	arr := types.NewArrayValueWithCapacity(min(max(size, 0), maxPrealloc))
	b.add(arr)
	b.stack = append(b.stack, frame{arr: arr})
	return true
}

func (b *TreeBuilder) EndArray() bool {
	b.stack = b.stack[:len(b.stack)-1]
	return true
}

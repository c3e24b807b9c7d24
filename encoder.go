package bjdata

import (
	"io"

	"github.com/chaisql/bjdata/internal/encoding"
	"github.com/chaisql/bjdata/types"
	"github.com/cockroachdb/errors"
)

// Marshal returns the BJData encoding of v.
// A discarded value is encoded as an empty slice.
func Marshal(v types.Value, opts ...EncodeOption) ([]byte, error) {
	return AppendValue(nil, v, opts...)
}

// AppendValue appends the BJData encoding of v to dst.
func AppendValue(dst []byte, v types.Value, opts ...EncodeOption) ([]byte, error) {
	e := encoder{opts: newEncodeOptions(opts)}
	if types.IsDiscarded(v) {
		return dst, nil
	}
	return e.appendValue(dst, v, true, 0)
}

// An Encoder writes BJData values to an output stream.
type Encoder struct {
	w   io.Writer
	e   encoder
	buf []byte
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	return &Encoder{
		w: w,
		e: encoder{opts: newEncodeOptions(opts)},
	}
}

// Encode writes the encoding of v to the stream.
func (enc *Encoder) Encode(v types.Value) error {
	if types.IsDiscarded(v) {
		return nil
	}

	var err error
	enc.buf, err = enc.e.appendValue(enc.buf[:0], v, true, 0)
	if err != nil {
		return err
	}

	_, err = enc.w.Write(enc.buf)
	return errors.Wrap(err, "failed to write value")
}

type encoder struct {
	opts encodeOptions
}

// marker returns the marker v is written with.
func marker(v types.Value) byte {
	switch v.Type() {
	case types.TypeNull:
		return encoding.NullMarker
	case types.TypeBoolean:
		if types.AsBool(v) {
			return encoding.TrueMarker
		}
		return encoding.FalseMarker
	case types.TypeInteger:
		return encoding.IntMarker(types.AsInt64(v))
	case types.TypeUnsigned:
		return encoding.UintMarker(types.AsUint64(v))
	case types.TypeDouble:
		return encoding.Float64Marker
	case types.TypeText:
		return encoding.StringMarker
	case types.TypeBlob, types.TypeArray:
		return encoding.ArrayStart
	case types.TypeObject:
		return encoding.ObjectStart
	}

	return encoding.NoopMarker
}

// appendValue writes v. When prefix is false, v belongs to a container
// with a declared element type and only its payload is written.
func (e *encoder) appendValue(dst []byte, v types.Value, prefix bool, depth int) ([]byte, error) {
	if depth > e.opts.maxDepth {
		return nil, errors.WithStack(ErrMaxDepth)
	}

	switch v.Type() {
	case types.TypeNull, types.TypeBoolean:
		if prefix {
			dst = append(dst, marker(v))
		}
		return dst, nil
	case types.TypeInteger:
		n := types.AsInt64(v)
		if prefix {
			return encoding.EncodeInt(dst, n), nil
		}
		return encoding.AppendFixed(dst, encoding.Width(encoding.IntMarker(n)), n), nil
	case types.TypeUnsigned:
		n := types.AsUint64(v)
		if prefix {
			return encoding.EncodeUint(dst, n), nil
		}
		return encoding.AppendFixed(dst, encoding.Width(encoding.UintMarker(n)), n), nil
	case types.TypeDouble:
		if prefix {
			return encoding.EncodeFloat64(dst, types.AsFloat64(v)), nil
		}
		return encoding.AppendFloat64(dst, types.AsFloat64(v)), nil
	case types.TypeText:
		s := types.AsString(v)
		if prefix {
			dst = append(dst, encoding.StringMarker)
		}
		dst = encoding.EncodeUint(dst, uint64(len(s)))
		return append(dst, s...), nil
	case types.TypeBlob:
		return e.appendBlob(dst, types.AsByteSlice(v)), nil
	case types.TypeArray:
		return e.appendArray(dst, types.AsArray(v), depth)
	case types.TypeObject:
		return e.appendObject(dst, types.AsObject(v), depth)
	}

	return nil, errors.WithStack(ErrDiscardedValue)
}

// appendBlob writes bytes as an array of uint8.
func (e *encoder) appendBlob(dst []byte, data []byte) []byte {
	typed := e.opts.typePrefix && len(data) > 0

	dst = append(dst, encoding.ArrayStart)
	if typed {
		dst = append(dst, encoding.ContainerTypeMarker, encoding.Uint8Marker)
	}
	if e.opts.sizePrefix {
		dst = append(dst, encoding.ContainerCountMarker)
		dst = encoding.EncodeUint(dst, uint64(len(data)))
	}

	if typed {
		dst = append(dst, data...)
	} else {
		for _, b := range data {
			dst = append(dst, encoding.Uint8Marker, b)
		}
	}

	if !e.opts.sizePrefix {
		dst = append(dst, encoding.ArrayEnd)
	}
	return dst
}

// elementType returns the marker shared by the n values returned by at,
// if it can be declared after a '$'.
func (e *encoder) elementType(n int, at func(i int) types.Value) (byte, bool) {
	if !e.opts.typePrefix || n == 0 {
		return 0, false
	}

	first := marker(at(0))
	if !encoding.IsOptimizableType(first) {
		return 0, false
	}
	for i := 1; i < n; i++ {
		if marker(at(i)) != first {
			return 0, false
		}
	}

	return first, true
}

// appendHeader writes the optional type and count of a container.
func (e *encoder) appendHeader(dst []byte, typ byte, typed bool, n int) []byte {
	if typed {
		dst = append(dst, encoding.ContainerTypeMarker, typ)
	}
	if e.opts.sizePrefix {
		dst = append(dst, encoding.ContainerCountMarker)
		dst = encoding.EncodeUint(dst, uint64(n))
	}
	return dst
}

func (e *encoder) appendArray(dst []byte, arr *types.ArrayValue, depth int) ([]byte, error) {
	typ, typed := e.elementType(arr.Len(), arr.At)

	dst = append(dst, encoding.ArrayStart)
	dst = e.appendHeader(dst, typ, typed, arr.Len())

	var err error
	for _, v := range arr.Values() {
		dst, err = e.appendValue(dst, v, !typed, depth+1)
		if err != nil {
			return nil, err
		}
	}

	if !e.opts.sizePrefix {
		dst = append(dst, encoding.ArrayEnd)
	}
	return dst, nil
}

func (e *encoder) appendObject(dst []byte, obj *types.ObjectValue, depth int) ([]byte, error) {
	if nd, ok := asNDArray(obj); ok {
		return e.appendNDArray(dst, nd, depth)
	}

	typ, typed := e.elementType(obj.Len(), func(i int) types.Value {
		_, v := obj.Field(i)
		return v
	})

	dst = append(dst, encoding.ObjectStart)
	dst = e.appendHeader(dst, typ, typed, obj.Len())

	err := obj.Iterate(func(k string, v types.Value) error {
		dst = encoding.EncodeUint(dst, uint64(len(k)))
		dst = append(dst, k...)

		var err error
		dst, err = e.appendValue(dst, v, !typed, depth+1)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !e.opts.sizePrefix {
		dst = append(dst, encoding.ObjectEnd)
	}
	return dst, nil
}

// appendNDArray writes an annotated object as [$type#[extents]payload.
// The extents follow the encoder options, the payload is always typed.
func (e *encoder) appendNDArray(dst []byte, nd *ndarray, depth int) ([]byte, error) {
	dst = append(dst, encoding.ArrayStart, encoding.ContainerTypeMarker, nd.marker, encoding.ContainerCountMarker)

	dst, err := e.appendArray(dst, nd.size, depth+1)
	if err != nil {
		return nil, err
	}

	for _, v := range nd.data.Values() {
		dst = nd.appendElement(dst, v)
	}
	return dst, nil
}

package bjdata

import (
	"math/bits"

	"github.com/chaisql/bjdata/internal/encoding"
	"github.com/chaisql/bjdata/types"
)

// Keys of the objects representing N-dimensional arrays.
const (
	ArraySizeKey = "_ArraySize_"
	ArrayTypeKey = "_ArrayType_"
	ArrayDataKey = "_ArrayData_"
)

// ndarray element types, by name.
var ndarrayTypes = []struct {
	name   string
	marker byte
}{
	{"uint8", encoding.Uint8Marker},
	{"int8", encoding.Int8Marker},
	{"uint16", encoding.Uint16Marker},
	{"int16", encoding.Int16Marker},
	{"uint32", encoding.Uint32Marker},
	{"int32", encoding.Int32Marker},
	{"uint64", encoding.Uint64Marker},
	{"int64", encoding.Int64Marker},
	{"single", encoding.Float32Marker},
	{"double", encoding.Float64Marker},
	{"char", encoding.CharMarker},
}

// NDArrayMarker returns the marker of the ndarray element type name.
func NDArrayMarker(name string) (byte, bool) {
	for _, t := range ndarrayTypes {
		if t.name == name {
			return t.marker, true
		}
	}
	return 0, false
}

// NDArrayTypeName returns the name of the ndarray element type marker.
func NDArrayTypeName(marker byte) (string, bool) {
	for _, t := range ndarrayTypes {
		if t.marker == marker {
			return t.name, true
		}
	}
	return "", false
}

// ndarray is an annotated object that can be written in the optimized form.
type ndarray struct {
	marker byte
	size   *types.ArrayValue
	data   *types.ArrayValue
}

// asNDArray checks whether obj is a well formed ndarray annotation.
// Objects with extra keys, an unknown type, no extents, negative or non integer extents,
// non numeric data or a data length not matching the extents are not.
func asNDArray(obj *types.ObjectValue) (*ndarray, bool) {
	if obj.Len() != 3 {
		return nil, false
	}

	tv, err := obj.Get(ArrayTypeKey)
	if err != nil || tv.Type() != types.TypeText {
		return nil, false
	}
	marker, ok := NDArrayMarker(types.AsString(tv))
	if !ok {
		return nil, false
	}

	sv, err := obj.Get(ArraySizeKey)
	if err != nil || sv.Type() != types.TypeArray {
		return nil, false
	}
	dv, err := obj.Get(ArrayDataKey)
	if err != nil || dv.Type() != types.TypeArray {
		return nil, false
	}
	size, data := types.AsArray(sv), types.AsArray(dv)

	if size.Len() == 0 {
		return nil, false
	}

	total := uint64(1)
	for _, d := range size.Values() {
		if !d.Type().IsInteger() {
			return nil, false
		}
		if d.Type() == types.TypeInteger && types.AsInt64(d) < 0 {
			return nil, false
		}

		hi, lo := bits.Mul64(total, types.AsUint64(d))
		if hi != 0 {
			return nil, false
		}
		total = lo
	}
	if uint64(data.Len()) != total {
		return nil, false
	}

	for _, v := range data.Values() {
		if !v.Type().IsNumber() {
			return nil, false
		}
	}

	return &ndarray{marker: marker, size: size, data: data}, true
}

// appendElement writes v without marker, converted to the element type.
func (nd *ndarray) appendElement(dst []byte, v types.Value) []byte {
	switch nd.marker {
	case encoding.Float32Marker:
		return encoding.AppendFloat32(dst, float32(types.AsFloat64(v)))
	case encoding.Float64Marker:
		return encoding.AppendFloat64(dst, types.AsFloat64(v))
	}

	var n uint64
	switch v.Type() {
	case types.TypeInteger:
		n = uint64(types.AsInt64(v))
	case types.TypeUnsigned:
		n = types.AsUint64(v)
	default:
		n = uint64(int64(types.AsFloat64(v)))
	}
	return encoding.AppendFixed(dst, encoding.Width(nd.marker), n)
}

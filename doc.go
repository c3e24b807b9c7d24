/*
Package bjdata implements an encoder and a decoder for BJData, the Binary JData format,
a binary representation of JSON derived from UBJSON.

Every value is written as a one byte marker followed by its payload. Integers use the smallest
marker able to represent them, doubles are always written with the D marker and strings are
prefixed by their length, itself written as an integer.

	v, err := types.ParseJSON([]byte(`{"lat": 29.976, "long": 31.131}`))
	data, err := bjdata.Marshal(v, bjdata.WithTypePrefix())

Containers can be optimized: WithSizePrefix writes their length upfront and WithTypePrefix
declares the type of homogeneous elements once, dropping the per-element markers.

# N-dimensional arrays

Objects with exactly the keys _ArrayType_, _ArraySize_ and _ArrayData_ describe N-dimensional
arrays. The encoder writes them as a typed array whose count is the list of extents, and the decoder
turns such arrays back into the annotated object.

	{"_ArrayType_": "int32", "_ArraySize_": [2, 3], "_ArrayData_": [1, 2, 3, 4, 5, 6]}

# Decoding

Unmarshal and Decode build a value tree. DecodeSAX reports values to a Handler as they are read,
which can stop decoding at any time by returning false. UBJSON input is read with the same decoder
using WithFormat(FormatUBJSON), which rejects the markers only BJData knows about.
*/
package bjdata

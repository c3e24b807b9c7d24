package types

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

var _ Value = NewBlobValue(nil)

// BlobValue is a sequence of bytes with an optional subtype tag.
type BlobValue struct {
	Data       []byte
	Subtype    uint8
	HasSubtype bool
}

// NewBlobValue returns a blob value without subtype.
func NewBlobValue(x []byte) BlobValue {
	return BlobValue{Data: x}
}

// NewBlobValueWithSubtype returns a blob value tagged with the given subtype.
func NewBlobValueWithSubtype(x []byte, subtype uint8) BlobValue {
	return BlobValue{Data: x, Subtype: subtype, HasSubtype: true}
}

func (v BlobValue) V() any {
	return v.Data
}

func (v BlobValue) Type() Type {
	return TypeBlob
}

func (v BlobValue) String() string {
	if v.HasSubtype {
		return fmt.Sprintf("\\x%x (subtype %d)", v.Data, v.Subtype)
	}
	return fmt.Sprintf("\\x%x", v.Data)
}

func (v BlobValue) MarshalJSON() ([]byte, error) {
	dst := make([]byte, base64.StdEncoding.EncodedLen(len(v.Data))+2)
	dst[0] = '"'
	dst[len(dst)-1] = '"'
	base64.StdEncoding.Encode(dst[1:], v.Data)
	return dst, nil
}

func (v BlobValue) equal(other BlobValue) bool {
	if v.HasSubtype != other.HasSubtype || v.Subtype != other.Subtype {
		return false
	}
	return bytes.Equal(v.Data, other.Data)
}

package bjdata

import (
	"bytes"
	"io"

	"github.com/chaisql/bjdata/types"
	"github.com/cockroachdb/errors"
)

// Unmarshal decodes a single BJData value.
func Unmarshal(data []byte, opts ...DecodeOption) (types.Value, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// UnmarshalUBJSON decodes a single UBJSON value. BJData extensions are rejected.
func UnmarshalUBJSON(data []byte, opts ...DecodeOption) (types.Value, error) {
	return Unmarshal(data, append(opts, WithFormat(FormatUBJSON))...)
}

// Decode reads a single value from r and builds its tree.
// Unless AllowTrailingData is set, r must not contain anything else.
// With WithoutErrors, malformed input returns a discarded value and a nil error.
func Decode(r io.Reader, opts ...DecodeOption) (types.Value, error) {
	var b TreeBuilder

	ok, err := DecodeSAX(r, &b, opts...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return types.NewDiscardedValue(), nil
	}

	return b.Value(), nil
}

// DecodeUBJSON is the UBJSON counterpart of Decode.
func DecodeUBJSON(r io.Reader, opts ...DecodeOption) (types.Value, error) {
	return Decode(r, append(opts, WithFormat(FormatUBJSON))...)
}

// DecodeSAX reads a single value from r and reports it to h.
// It returns false if h stopped the decoding or if the input is malformed.
// Syntax and range errors are returned unless WithoutErrors is set.
// Read errors are always returned.
func DecodeSAX(r io.Reader, h Handler, opts ...DecodeOption) (bool, error) {
	o := newDecodeOptions(opts)
	d := newDecoder(r, h, o)

	return d.result(d.parse())
}

// result converts the outcome of a parse according to the error mode.
func (d *decoder) result(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errAbort):
		return false, nil
	case !d.opts.throwing && isParseError(err):
		return false, nil
	}

	return false, err
}

// A Decoder reads a sequence of values from an input stream.
type Decoder struct {
	d *decoder
	b TreeBuilder
}

// NewDecoder returns a decoder reading from r. Values may follow each other
// without separator, no-op markers between them are skipped.
func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	o := newDecodeOptions(opts)
	o.strict = false

	var dec Decoder
	dec.d = newDecoder(r, &dec.b, o)
	return &dec
}

// Decode returns the next value of the stream, or io.EOF once the stream
// is exhausted.
func (dec *Decoder) Decode() (types.Value, error) {
	dec.b.Reset()
	dec.d.depth = 0

	dec.d.getIgnoreNoop()
	if dec.d.current == eof && dec.d.ioErr == nil {
		return nil, io.EOF
	}

	ok, err := dec.d.result(dec.d.parseValue(dec.d.current))
	if err != nil {
		return nil, err
	}
	if !ok {
		return types.NewDiscardedValue(), nil
	}

	return dec.b.Value(), nil
}

// InputOffset returns the number of bytes read so far.
func (dec *Decoder) InputOffset() int {
	return dec.d.offset
}

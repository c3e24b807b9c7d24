package bjdata

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"github.com/chaisql/bjdata/internal/encoding"
	"github.com/cockroachdb/errors"
)

// eof is stored in decoder.current once the input is exhausted.
const eof = -1

// maxPayloadFree caps the count of typed containers whose elements
// take no space on the wire, such as [$T#.
const maxPayloadFree = 1 << 24

// errAbort is returned internally when a Handler asks to stop.
var errAbort = errors.New("aborted by handler")

// decoder is the state machine shared by both formats.
// It reads one byte at a time to keep track of the exact offset
// reported by errors.
type decoder struct {
	r    io.ByteReader
	h    Handler
	opts decodeOptions

	current int
	offset  int
	depth   int
	ioErr   error
	scratch [8]byte
}

func newDecoder(r io.Reader, h Handler, opts decodeOptions) *decoder {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &decoder{r: br, h: h, opts: opts}
}

func (d *decoder) ubjson() bool {
	return d.opts.format == FormatUBJSON
}

// get reads the next byte into d.current.
func (d *decoder) get() int {
	d.offset++
	if d.ioErr != nil {
		d.current = eof
		return eof
	}

	c, err := d.r.ReadByte()
	if err != nil {
		if err != io.EOF {
			d.ioErr = err
		}
		d.current = eof
		return eof
	}

	d.current = int(c)
	return d.current
}

// getIgnoreNoop reads the next byte that is not a no-op.
func (d *decoder) getIgnoreNoop() int {
	for d.get() == int(encoding.NoopMarker) {
	}
	return d.current
}

func (d *decoder) lastByte() string {
	return fmt.Sprintf("%02X", byte(d.current))
}

func (d *decoder) syntaxError(context, detail string) error {
	return errors.WithStack(&SyntaxError{
		Offset:  d.offset,
		Format:  d.opts.format,
		Context: context,
		Detail:  detail,
	})
}

func (d *decoder) rangeError(kind string, size uint64) error {
	return errors.WithStack(&RangeError{
		Offset: d.offset,
		Kind:   kind,
		Size:   size,
	})
}

// unexpectEOF returns an error if the input is exhausted.
func (d *decoder) unexpectEOF(context string) error {
	if d.current != eof {
		return nil
	}
	if d.ioErr != nil {
		return errors.Wrap(d.ioErr, "read failed")
	}
	return d.syntaxError(context, "unexpected end of input")
}

func (d *decoder) emit(ok bool) error {
	if !ok {
		return errAbort
	}
	return nil
}

// parse decodes one top-level value.
func (d *decoder) parse() error {
	d.getIgnoreNoop()
	err := d.parseValue(d.current)
	if err != nil {
		return err
	}

	if d.opts.strict {
		d.getIgnoreNoop()
		if d.current != eof {
			return d.syntaxError("value", "expected end of input; last byte: 0x"+d.lastByte())
		}
		if d.ioErr != nil {
			return errors.Wrap(d.ioErr, "read failed")
		}
	}

	return nil
}

// readFixed reads the n bytes of a fixed size payload.
func (d *decoder) readFixed(n int) ([]byte, error) {
	b := d.scratch[:n]
	for i := range b {
		d.get()
		if err := d.unexpectEOF("number"); err != nil {
			return nil, err
		}
		b[i] = byte(d.current)
	}
	return b, nil
}

// parseValue decodes the value introduced by marker, which has already been read.
func (d *decoder) parseValue(marker int) error {
	switch marker {
	case eof:
		return d.unexpectEOF("value")
	case 'T':
		return d.emit(d.h.Boolean(true))
	case 'F':
		return d.emit(d.h.Boolean(false))
	case 'Z':
		return d.emit(d.h.Null())
	case 'h':
		if d.ubjson() {
			break
		}
		b, err := d.readFixed(2)
		if err != nil {
			return err
		}
		return d.emit(d.h.NumberFloat(encoding.DecodeFloat16(b)))
	case 'U', 'i', 'u', 'I', 'm', 'l', 'M', 'L':
		if d.ubjson() && encoding.IsBJDataOnly(byte(marker)) {
			break
		}
		return d.parseInteger(byte(marker))
	case 'd':
		b, err := d.readFixed(4)
		if err != nil {
			return err
		}
		return d.emit(d.h.NumberFloat(encoding.DecodeFloat32(b)))
	case 'D':
		b, err := d.readFixed(8)
		if err != nil {
			return err
		}
		return d.emit(d.h.NumberFloat(encoding.DecodeFloat64(b)))
	case 'H':
		return d.parseHighPrecision()
	case 'C':
		d.get()
		if err := d.unexpectEOF("char"); err != nil {
			return err
		}
		if d.current > 0x7F {
			return d.syntaxError("char", "byte after 'C' must be in range 0x00..0x7F; last byte: 0x"+d.lastByte())
		}
		return d.emit(d.h.String(string(rune(d.current))))
	case 'S':
		s, err := d.readString(true)
		if err != nil {
			return err
		}
		return d.emit(d.h.String(s))
	case '[':
		return d.parseArray()
	case '{':
		return d.parseObject()
	}

	return d.syntaxError("value", fmt.Sprintf("invalid byte: 0x%02X", byte(marker)))
}

func (d *decoder) parseInteger(marker byte) error {
	b, err := d.readFixed(encoding.Width(marker))
	if err != nil {
		return err
	}

	if encoding.IsSignedMarker(marker) {
		return d.emit(d.h.NumberInteger(encoding.DecodeSigned(b)))
	}
	return d.emit(d.h.NumberUnsigned(encoding.DecodeFixed(b)))
}

// readSizeNumber reads the payload of a size marker.
// Negative values are returned in two's complement so that
// they fail the size limit checks.
func (d *decoder) readSizeNumber(marker byte) (uint64, error) {
	b, err := d.readFixed(encoding.Width(marker))
	if err != nil {
		return 0, err
	}

	if encoding.IsSignedMarker(marker) {
		return uint64(encoding.DecodeSigned(b)), nil
	}
	return encoding.DecodeFixed(b), nil
}

// readString reads a length followed by as many bytes. If getChar is false,
// the length marker is the current byte.
func (d *decoder) readString(getChar bool) (string, error) {
	if getChar {
		d.get()
	}
	if err := d.unexpectEOF("value"); err != nil {
		return "", err
	}

	if !encoding.IsSizeMarker(byte(d.current), d.ubjson()) {
		return "", d.syntaxError("string", fmt.Sprintf("expected length type specification (%s); last byte: 0x%s",
			encoding.SizeMarkers(d.ubjson()), d.lastByte()))
	}

	n, err := d.readSizeNumber(byte(d.current))
	if err != nil {
		return "", err
	}
	if n > d.opts.sizeLimit {
		return "", d.rangeError("string", n)
	}

	return d.readText(n, "string")
}

// readText reads n raw bytes. The buffer grows with the input
// rather than with the announced length.
func (d *decoder) readText(n uint64, context string) (string, error) {
	var sb strings.Builder
	sb.Grow(int(min(n, maxPrealloc)))
	for i := uint64(0); i < n; i++ {
		d.get()
		if err := d.unexpectEOF(context); err != nil {
			return "", err
		}
		sb.WriteByte(byte(d.current))
	}
	return sb.String(), nil
}

// readMarker asks readSizeValue to read the marker from the input.
const readMarker = -2

// readSizeValue reads a count. If marker is readMarker, the marker is the next
// byte that is not a no-op, otherwise marker has already been read.
// In BJData, a '[' introduces the extents of an ndarray unless inDims is set.
func (d *decoder) readSizeValue(marker int, inDims bool) (uint64, []uint64, error) {
	if marker == readMarker {
		marker = d.getIgnoreNoop()
	}
	if marker == eof && d.ioErr != nil {
		return 0, nil, errors.Wrap(d.ioErr, "read failed")
	}

	if marker >= 0 && encoding.IsSizeMarker(byte(marker), d.ubjson()) {
		n, err := d.readSizeNumber(byte(marker))
		return n, nil, err
	}

	if marker == '[' && !d.ubjson() {
		if inDims {
			return 0, nil, d.syntaxError("size", "ndarray dimensional vector is not allowed")
		}
		dims, err := d.readDimensions()
		return 0, dims, err
	}

	return 0, nil, d.syntaxError("size", fmt.Sprintf("expected length type specification (%s) after '#'; last byte: 0x%s",
		encoding.SizeMarkers(d.ubjson()), d.lastByte()))
}

// readDimensions reads the array listing the extents of an ndarray.
// The opening bracket has already been read. The returned slice is never nil.
func (d *decoder) readDimensions() ([]uint64, error) {
	h, err := d.readHeader(true, "array")
	if err != nil {
		return nil, err
	}

	dims := make([]uint64, 0, min(h.size, 8))
	if !h.sized {
		for d.current != ']' {
			n, _, err := d.readSizeValue(d.current, true)
			if err != nil {
				return nil, err
			}
			dims = append(dims, n)
			d.getIgnoreNoop()
		}
		return dims, nil
	}

	marker := readMarker
	if h.typ != 0 {
		marker = int(h.typ)
	}
	for i := uint64(0); i < h.size; i++ {
		n, _, err := d.readSizeValue(marker, true)
		if err != nil {
			return nil, err
		}
		dims = append(dims, n)
	}
	return dims, nil
}

// header is the optional type and count following '[' or '{'.
type header struct {
	typ   byte
	size  uint64
	sized bool
	// extents of an ndarray, nil for other containers
	dims []uint64
}

// readHeader reads the optimization markers of a container. On return,
// d.current holds the first byte following the header if the container
// is not sized.
func (d *decoder) readHeader(inDims bool, kind string) (header, error) {
	var h header

	d.getIgnoreNoop()
	if d.current == '$' {
		d.get()
		if !d.ubjson() && d.current != eof && !encoding.IsOptimizableType(byte(d.current)) {
			return h, d.syntaxError("type", fmt.Sprintf("marker 0x%s is not a permitted optimized array type", d.lastByte()))
		}
		if err := d.unexpectEOF("type"); err != nil {
			return h, err
		}
		h.typ = byte(d.current)

		d.getIgnoreNoop()
		switch {
		case d.current == '#':
			return d.readCount(h, inDims, kind, readMarker)
		case d.current == '[' && kind == "array" && !inDims && !d.ubjson():
			return d.readCount(h, inDims, kind, '[')
		}

		if err := d.unexpectEOF("value"); err != nil {
			return h, err
		}
		return h, d.syntaxError("size", "expected '#' after type information; last byte: 0x"+d.lastByte())
	}

	if d.current == '#' {
		return d.readCount(h, inDims, kind, readMarker)
	}

	return h, nil
}

// readCount reads the count of a container and checks it against the size limit.
func (d *decoder) readCount(h header, inDims bool, kind string, marker int) (header, error) {
	n, dims, err := d.readSizeValue(marker, inDims)
	if err != nil {
		return h, err
	}
	h.sized = true

	if dims == nil {
		if n > d.opts.sizeLimit {
			return h, d.rangeError(kind, n)
		}
		h.size = n
		return h, nil
	}

	product := uint64(1)
	for _, dim := range dims {
		product *= dim
	}
	if len(dims) > 0 && product > d.opts.sizeLimit {
		return h, d.rangeError(kind, product)
	}
	for _, dim := range dims {
		if dim > d.opts.sizeLimit {
			return h, d.rangeError(kind, dim)
		}
		if dim == 0 {
			// an empty extent makes an empty container
			return h, nil
		}
	}

	switch len(dims) {
	case 0:
		return h, nil
	case 1:
		h.size = dims[0]
		return h, nil
	}

	if overflows(dims) {
		return h, d.rangeError(kind, product)
	}
	if h.typ == 0 {
		return h, d.syntaxError("size", "ndarray requires both type and size")
	}
	if kind == "object" {
		return h, d.syntaxError("object", "BJData object does not support ND-array size in optimized format")
	}

	h.size = product
	h.dims = dims
	return h, nil
}

// overflows reports whether the product of dims exceeds 64 bits.
func overflows(dims []uint64) bool {
	p := uint64(1)
	for _, dim := range dims {
		hi, lo := bits.Mul64(p, dim)
		if hi != 0 {
			return true
		}
		p = lo
	}
	return false
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > d.opts.maxDepth {
		return errors.Wrapf(ErrMaxDepth, "at byte %d", d.offset)
	}
	return nil
}

func (d *decoder) leave() {
	d.depth--
}

// payloadFree reports whether elements of type typ take no space on the wire.
func payloadFree(typ byte) bool {
	switch typ {
	case 'T', 'F', 'Z', 'N':
		return true
	}
	return false
}

func (d *decoder) parseArray() error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	h, err := d.readHeader(false, "array")
	if err != nil {
		return err
	}

	if h.dims != nil {
		return d.parseNDArray(h)
	}

	if !h.sized {
		if err := d.emit(d.h.StartArray(UnknownSize)); err != nil {
			return err
		}
		for d.current != ']' {
			if err := d.parseValue(d.current); err != nil {
				return err
			}
			d.getIgnoreNoop()
		}
		return d.emit(d.h.EndArray())
	}

	if payloadFree(h.typ) && h.typ != 'N' && h.size > maxPayloadFree {
		return d.rangeError("array", h.size)
	}

	if h.typ == 'N' {
		// no-ops carry no value
		if err := d.emit(d.h.StartArray(0)); err != nil {
			return err
		}
		return d.emit(d.h.EndArray())
	}

	if err := d.emit(d.h.StartArray(int(h.size))); err != nil {
		return err
	}
	switch h.typ {
	case 0:
		for i := uint64(0); i < h.size; i++ {
			if err := d.parseValue(d.getIgnoreNoop()); err != nil {
				return err
			}
		}
	default:
		for i := uint64(0); i < h.size; i++ {
			if err := d.parseValue(int(h.typ)); err != nil {
				return err
			}
		}
	}
	return d.emit(d.h.EndArray())
}

func (d *decoder) parseNDArray(h header) error {
	name, ok := NDArrayTypeName(h.typ)
	if !ok {
		return d.syntaxError("type", fmt.Sprintf("invalid byte: 0x%02X", h.typ))
	}

	if err := d.emit(d.h.StartObject(3)); err != nil {
		return err
	}
	if err := d.emit(d.h.Key(ArraySizeKey)); err != nil {
		return err
	}
	if err := d.emit(d.h.StartArray(len(h.dims))); err != nil {
		return err
	}
	for _, dim := range h.dims {
		if err := d.emit(d.h.NumberUnsigned(dim)); err != nil {
			return err
		}
	}
	if err := d.emit(d.h.EndArray()); err != nil {
		return err
	}

	if err := d.emit(d.h.Key(ArrayTypeKey)); err != nil {
		return err
	}
	if err := d.emit(d.h.String(name)); err != nil {
		return err
	}

	if err := d.emit(d.h.Key(ArrayDataKey)); err != nil {
		return err
	}
	if err := d.emit(d.h.StartArray(int(h.size))); err != nil {
		return err
	}
	typ := h.typ
	if typ == encoding.CharMarker {
		// char payloads are kept as numbers
		typ = encoding.Uint8Marker
	}
	for i := uint64(0); i < h.size; i++ {
		if err := d.parseValue(int(typ)); err != nil {
			return err
		}
	}
	if err := d.emit(d.h.EndArray()); err != nil {
		return err
	}

	return d.emit(d.h.EndObject())
}

func (d *decoder) parseObject() error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	h, err := d.readHeader(false, "object")
	if err != nil {
		return err
	}

	if !h.sized {
		if err := d.emit(d.h.StartObject(UnknownSize)); err != nil {
			return err
		}
		for d.current != '}' {
			if err := d.parseField(false, 0); err != nil {
				return err
			}
			d.getIgnoreNoop()
		}
		return d.emit(d.h.EndObject())
	}

	if h.typ == 'N' {
		return d.syntaxError("type", "marker 0x4E is not a permitted optimized object type")
	}
	if payloadFree(h.typ) && h.size > maxPayloadFree {
		return d.rangeError("object", h.size)
	}

	if err := d.emit(d.h.StartObject(int(h.size))); err != nil {
		return err
	}
	for i := uint64(0); i < h.size; i++ {
		if err := d.parseField(true, h.typ); err != nil {
			return err
		}
	}
	return d.emit(d.h.EndObject())
}

// parseField reads a key and its value. If typ is not 0, the value
// has no marker.
func (d *decoder) parseField(getChar bool, typ byte) error {
	key, err := d.readString(getChar)
	if err != nil {
		return err
	}
	if err := d.emit(d.h.Key(key)); err != nil {
		return err
	}

	if typ != 0 {
		return d.parseValue(int(typ))
	}
	return d.parseValue(d.getIgnoreNoop())
}

func (d *decoder) parseHighPrecision() error {
	n, _, err := d.readSizeValue(readMarker, true)
	if err != nil {
		return err
	}
	if n > d.opts.sizeLimit {
		return d.rangeError("high-precision number", n)
	}

	text, err := d.readText(n, "number")
	if err != nil {
		return err
	}

	isFloat, ok := scanNumeral(text)
	if !ok {
		return d.syntaxError("high-precision number", "invalid number text: "+text)
	}

	if !isFloat {
		if text[0] == '-' {
			if i, err := strconv.ParseInt(text, 10, 64); err == nil {
				return d.emit(d.h.NumberInteger(i))
			}
		} else if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return d.emit(d.h.NumberUnsigned(u))
		}
	}

	// decimals and integers too large for 64 bits
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return d.syntaxError("high-precision number", "invalid number text: "+text)
	}
	return d.emit(d.h.NumberFloat(f))
}

// scanNumeral validates -?[0-9]+(\.[0-9]+)? and reports whether s has a fractional part.
func scanNumeral(s string) (isFloat bool, ok bool) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}

	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i - start
	}

	if digits() == 0 {
		return false, false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if digits() == 0 {
			return false, false
		}
		isFloat = true
	}

	return isFloat, i == len(s)
}

package bjdata

// DefaultMaxDepth is the default nesting limit of encoders and decoders.
const DefaultMaxDepth = 10000

type encodeOptions struct {
	sizePrefix bool
	typePrefix bool
	maxDepth   int
}

// An EncodeOption configures Marshal, AppendValue and Encoder.
type EncodeOption func(*encodeOptions)

// WithSizePrefix writes the number of elements of every container
// after a '#' instead of closing it with a terminator.
func WithSizePrefix() EncodeOption {
	return func(o *encodeOptions) {
		o.sizePrefix = true
	}
}

// WithTypePrefix writes the element type of homogeneous containers
// once after a '$' and omits the per-element markers.
// It implies WithSizePrefix.
func WithTypePrefix() EncodeOption {
	return func(o *encodeOptions) {
		o.typePrefix = true
		o.sizePrefix = true
	}
}

// WithMaxEncodeDepth sets the maximum nesting level of encoded values.
func WithMaxEncodeDepth(n int) EncodeOption {
	return func(o *encodeOptions) {
		o.maxDepth = n
	}
}

func newEncodeOptions(opts []EncodeOption) encodeOptions {
	o := encodeOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type decodeOptions struct {
	format    Format
	strict    bool
	throwing  bool
	maxDepth  int
	sizeLimit uint64
}

// A DecodeOption configures Unmarshal, Decode, DecodeSAX and Decoder.
type DecodeOption func(*decodeOptions)

// WithFormat selects the dialect of the input.
func WithFormat(f Format) DecodeOption {
	return func(o *decodeOptions) {
		o.format = f
	}
}

// AllowTrailingData stops decoding after the first value instead of
// requiring the whole input to be consumed.
func AllowTrailingData() DecodeOption {
	return func(o *decodeOptions) {
		o.strict = false
	}
}

// WithoutErrors reports malformed input with a discarded value
// (or a false return in SAX mode) instead of an error.
func WithoutErrors() DecodeOption {
	return func(o *decodeOptions) {
		o.throwing = false
	}
}

// WithMaxDecodeDepth sets the maximum nesting level of decoded containers.
func WithMaxDecodeDepth(n int) DecodeOption {
	return func(o *decodeOptions) {
		o.maxDepth = n
	}
}

// WithMaxContainerSize lowers the largest count accepted for containers and strings.
// Larger counts are reported as a RangeError.
func WithMaxContainerSize(n uint64) DecodeOption {
	return func(o *decodeOptions) {
		if n < MaxContainerSize {
			o.sizeLimit = n
		}
	}
}

func newDecodeOptions(opts []DecodeOption) decodeOptions {
	o := decodeOptions{
		format:    FormatBJData,
		strict:    true,
		throwing:  true,
		maxDepth:  DefaultMaxDepth,
		sizeLimit: MaxContainerSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

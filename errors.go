package bjdata

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// MaxContainerSize is the largest count accepted for containers and strings.
const MaxContainerSize = uint64(math.MaxInt)

var (
	// ErrMaxDepth is returned when a value is nested deeper than the configured limit.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")

	// ErrDiscardedValue is returned when encoding a container holding a discarded value.
	ErrDiscardedValue = errors.New("cannot encode a discarded value")
)

// Format identifies the dialect being decoded.
type Format uint8

const (
	FormatBJData Format = iota
	FormatUBJSON
)

func (f Format) String() string {
	if f == FormatUBJSON {
		return "UBJSON"
	}
	return "BJData"
}

// SyntaxError is returned when the input is malformed.
type SyntaxError struct {
	// Offset counts the bytes read so far, including the failed read
	// at the end of the input.
	Offset int
	Format Format
	// Context names what was being parsed: value, number, string, char, type, size...
	Context string
	Detail  string
}

// Message returns the error without its position.
func (e *SyntaxError) Message() string {
	return fmt.Sprintf("syntax error while parsing %s %s: %s", e.Format, e.Context, e.Detail)
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse error at byte %d: %s", e.Offset, e.Message())
}

// RangeError is returned when a count read from the input is negative
// or too large to be held in memory.
type RangeError struct {
	Offset int
	// Kind is either array, object, string or high-precision number.
	Kind string
	Size uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("excessive %s size: %d", e.Kind, e.Size)
}

// isParseError reports whether err is caused by malformed input,
// as opposed to a failing reader.
func isParseError(err error) bool {
	var se *SyntaxError
	var re *RangeError
	return errors.As(err, &se) || errors.As(err, &re) || errors.Is(err, ErrMaxDepth)
}

package bjutil

import (
	"fmt"
	"io"
	"strconv"

	"github.com/chaisql/bjdata"
)

var _ bjdata.Handler = new(EventPrinter)

// EventPrinter is a bjdata.Handler writing one line per event.
// Once Limit events have been written, it stops the decoding.
type EventPrinter struct {
	W     io.Writer
	Limit int

	count int
	err   error
}

// Count returns the number of events written.
func (p *EventPrinter) Count() int {
	return p.count
}

// Err returns the first write error.
func (p *EventPrinter) Err() error {
	return p.err
}

func (p *EventPrinter) print(format string, args ...any) bool {
	if p.err != nil || (p.Limit > 0 && p.count >= p.Limit) {
		return false
	}

	_, p.err = fmt.Fprintf(p.W, format+"\n", args...)
	p.count++
	return p.err == nil
}

func size(n int) string {
	if n == bjdata.UnknownSize {
		return "?"
	}
	return strconv.Itoa(n)
}

func (p *EventPrinter) Null() bool                   { return p.print("null()") }
func (p *EventPrinter) Boolean(v bool) bool          { return p.print("boolean(%t)", v) }
func (p *EventPrinter) NumberInteger(v int64) bool   { return p.print("number_integer(%d)", v) }
func (p *EventPrinter) NumberUnsigned(v uint64) bool { return p.print("number_unsigned(%d)", v) }
func (p *EventPrinter) NumberFloat(v float64) bool   { return p.print("number_float(%g)", v) }
func (p *EventPrinter) String(v string) bool         { return p.print("string(%q)", v) }
func (p *EventPrinter) Binary(v []byte) bool         { return p.print("binary(%x)", v) }
func (p *EventPrinter) StartObject(n int) bool       { return p.print("start_object(%s)", size(n)) }
func (p *EventPrinter) Key(k string) bool            { return p.print("key(%q)", k) }
func (p *EventPrinter) EndObject() bool              { return p.print("end_object()") }
func (p *EventPrinter) StartArray(n int) bool        { return p.print("start_array(%s)", size(n)) }
func (p *EventPrinter) EndArray() bool               { return p.print("end_array()") }

// Events prints the events of the value read from r. It returns false
// if the printer stopped before the end of the value.
func Events(r io.Reader, w io.Writer, ubjson bool, limit int) (bool, error) {
	var opts []bjdata.DecodeOption
	if ubjson {
		opts = append(opts, bjdata.WithFormat(bjdata.FormatUBJSON))
	}

	p := EventPrinter{W: w, Limit: limit}
	ok, err := bjdata.DecodeSAX(r, &p, opts...)
	if err != nil {
		return false, err
	}
	if p.Err() != nil {
		return false, p.Err()
	}
	return ok, nil
}

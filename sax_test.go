package bjdata_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/chaisql/bjdata"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// recorder records events and stops at event number stopAt, if set.
type recorder struct {
	events []string
	stopAt int
}

func (r *recorder) add(format string, args ...any) bool {
	r.events = append(r.events, fmt.Sprintf(format, args...))
	return r.stopAt <= 0 || len(r.events) < r.stopAt
}

func (r *recorder) Null() bool                   { return r.add("null") }
func (r *recorder) Boolean(v bool) bool          { return r.add("bool %t", v) }
func (r *recorder) NumberInteger(v int64) bool   { return r.add("int %d", v) }
func (r *recorder) NumberUnsigned(v uint64) bool { return r.add("uint %d", v) }
func (r *recorder) NumberFloat(v float64) bool   { return r.add("float %g", v) }
func (r *recorder) String(v string) bool         { return r.add("string %s", v) }
func (r *recorder) Binary(v []byte) bool         { return r.add("binary %x", v) }
func (r *recorder) StartObject(n int) bool       { return r.add("start object %d", n) }
func (r *recorder) Key(k string) bool            { return r.add("key %s", k) }
func (r *recorder) EndObject() bool              { return r.add("end object") }
func (r *recorder) StartArray(n int) bool        { return r.add("start array %d", n) }
func (r *recorder) EndArray() bool               { return r.add("end array") }

func TestDecodeSAX(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		events []string
	}{
		{"scalar", "D\x00\x00\x00\x00\x00\x00\xf8\x3f", []string{"float 1.5"}},
		{"unsized array", "[TZ]", []string{"start array -1", "bool true", "null", "end array"}},
		{"sized array", "[#i\x01U\x05", []string{"start array 1", "uint 5", "end array"}},
		{"object", "{#i\x01i\x01aCb", []string{"start object 1", "key a", "string b", "end object"}},
		{"ndarray", "[$i#[i\x01i\x02]\x01\xff", []string{
			"start object 3",
			"key _ArraySize_", "start array 2", "uint 1", "uint 2", "end array",
			"key _ArrayType_", "string int8",
			"key _ArrayData_", "start array 2", "int 1", "int -1", "end array",
			"end object",
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var r recorder
			ok, err := bjdata.DecodeSAX(bytes.NewReader([]byte(test.data)), &r)
			require.NoError(t, err)
			require.True(t, ok)

			if diff := cmp.Diff(test.events, r.events); diff != "" {
				t.Errorf("unexpected events (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeSAXAbort(t *testing.T) {
	data := []byte("{i\x01a[$i#[i\x01i\x02]\x01\x02i\x01bSi\x01c}")

	var full recorder
	ok, err := bjdata.DecodeSAX(bytes.NewReader(data), &full)
	require.NoError(t, err)
	require.True(t, ok)

	for n := 1; n <= len(full.events); n++ {
		r := recorder{stopAt: n}
		ok, err := bjdata.DecodeSAX(bytes.NewReader(data), &r)
		require.NoError(t, err)
		require.False(t, ok, "stop at %d", n)
		require.Equal(t, full.events[:n], r.events)
	}
}

func TestDecodeSAXMalformed(t *testing.T) {
	var r recorder
	ok, err := bjdata.DecodeSAX(bytes.NewReader([]byte("[TTx")), &r, bjdata.WithoutErrors())
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []string{"start array -1", "bool true", "bool true"}, r.events)

	_, err = bjdata.DecodeSAX(bytes.NewReader([]byte("[TTx")), &r)
	require.Error(t, err)
}

func TestTreeBuilderReset(t *testing.T) {
	var b bjdata.TreeBuilder

	ok, err := bjdata.DecodeSAX(bytes.NewReader([]byte("[T")), &b, bjdata.WithoutErrors())
	require.NoError(t, err)
	require.False(t, ok)

	b.Reset()
	require.Nil(t, b.Value())

	ok, err = bjdata.DecodeSAX(bytes.NewReader([]byte("i\x07")), &b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "7", b.Value().String())
}

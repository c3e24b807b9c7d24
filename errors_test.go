package bjdata_test

import (
	"testing"

	"github.com/chaisql/bjdata"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		offset  int
		context string
		message string
	}{
		{"empty input", "", 1, "value", "unexpected end of input"},
		{"truncated half", "h", 2, "number", "unexpected end of input"},
		{"truncated half payload", "h\x00", 3, "number", "unexpected end of input"},
		{"missing string length", "S", 2, "value", "unexpected end of input"},
		{"bad string length", "Sd", 2, "string", "expected length type specification (U, i, u, I, m, l, M, L); last byte: 0x64"},
		{"truncated string", "Si\x03ab", 6, "string", "unexpected end of input"},
		{"truncated count", "[#i", 4, "number", "unexpected end of input"},
		{"bad count", "[#S", 3, "size", "expected length type specification (U, i, u, I, m, l, M, L) after '#'; last byte: 0x53"},
		{"trailing data", "ZZ", 2, "value", "expected end of input; last byte: 0x5A"},
		{"container type", "[$[", 3, "type", "marker 0x5B is not a permitted optimized array type"},
		{"string type", "[$S#i\x01", 3, "type", "marker 0x53 is not a permitted optimized array type"},
		{"noop type", "{$N#i\x01", 3, "type", "marker 0x4E is not a permitted optimized array type"},
		{"type without count", "[$i\x02", 4, "size", "expected '#' after type information; last byte: 0x02"},
		{"truncated type", "[$", 3, "type", "unexpected end of input"},
		{"bad high precision", "Hi\x021A", 5, "high-precision number", "invalid number text: 1A"},
		{"empty high precision", "Hi\x00", 3, "high-precision number", "invalid number text: "},
		{"high precision fraction", "Hi\x021.", 5, "high-precision number", "invalid number text: 1."},
		{"char out of range", "C\x82", 2, "char", "byte after 'C' must be in range 0x00..0x7F; last byte: 0x82"},
		{"truncated char", "C", 2, "char", "unexpected end of input"},
		{"unterminated array", "[i\x01", 4, "value", "unexpected end of input"},
		{"bad key", "{Z}", 2, "string", "expected length type specification (U, i, u, I, m, l, M, L); last byte: 0x5A"},
		{"ndarray without type", "[#[i\x02i\x03]", 8, "size", "ndarray requires both type and size"},
		{"ndarray object", "{$i#[$i#i\x02\x02\x03", 12, "object", "BJData object does not support ND-array size in optimized format"},
		{"nested dimensions", "[$i#[[", 6, "size", "ndarray dimensional vector is not allowed"},
		{"half ndarray", "[$h#[$i#i\x02\x01\x01", 12, "type", "invalid byte: 0x68"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := bjdata.Unmarshal([]byte(test.data))

			var se *bjdata.SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
			require.Equal(t, test.offset, se.Offset)
			require.Equal(t, test.context, se.Context)
			require.Equal(t, test.message, se.Detail)
			require.Equal(t, bjdata.FormatBJData, se.Format)
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := bjdata.Unmarshal([]byte("h\x00"))
	require.EqualError(t, err, "parse error at byte 3: syntax error while parsing BJData number: unexpected end of input")

	_, err = bjdata.UnmarshalUBJSON([]byte("S"))
	require.EqualError(t, err, "parse error at byte 2: syntax error while parsing UBJSON value: unexpected end of input")

	var se *bjdata.SyntaxError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "syntax error while parsing UBJSON value: unexpected end of input", se.Message())
}

func TestRangeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  bjdata.Format
		message string
	}{
		{"negative count", "[#i\xf1", bjdata.FormatBJData, "excessive array size: 18446744073709551601"},
		{"negative object count", "{#I\x00\x80", bjdata.FormatBJData, "excessive object size: 18446744073709518848"},
		{"negative string length", "Si\xff", bjdata.FormatBJData, "excessive string size: 18446744073709551615"},
		{"negative high precision length", "Hi\xfe", bjdata.FormatBJData, "excessive high-precision number size: 18446744073709551614"},
		{"huge count", "[#M\xff\xff\xff\xff\xff\xff\xff\xff", bjdata.FormatBJData, "excessive array size: 18446744073709551615"},
		{"huge extent", "[$i#[M\x00\x00\x00\x00\x00\x00\x00\x80i\x01]", bjdata.FormatBJData, "excessive array size: 9223372036854775808"},
		{"overflowing extents", "[$i#[M\x00\x00\x00\x00\x00\x00\x00\x40M\x00\x00\x00\x00\x00\x00\x00\x40]", bjdata.FormatBJData, "excessive array size: 0"},
		{"payload free", "[$T#l\x00\x00\x00\x02", bjdata.FormatUBJSON, "excessive array size: 33554432"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := bjdata.Unmarshal([]byte(test.data), bjdata.WithFormat(test.format))

			var re *bjdata.RangeError
			require.True(t, errors.As(err, &re), "got %v", err)
			require.EqualError(t, err, test.message)
		})
	}
}

package bjutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaisql/bjdata/cmd/bjdata/bjutil"
	"github.com/chaisql/bjdata/cmd/bjdata/iox"
	"github.com/chaisql/bjdata/cmd/bjdata/render"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	in := `{
		// comments are allowed
		"a": [1, 2,],
	}`

	var buf bytes.Buffer
	err := bjutil.Encode(strings.NewReader(in), &buf, bjutil.EncodeOptions{TypePrefix: true})
	require.NoError(t, err)
	require.Equal(t, "{#i\x01i\x01a[$i#i\x02\x01\x02", buf.String())

	err = bjutil.Encode(strings.NewReader(`{`), &buf, bjutil.EncodeOptions{})
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	err := bjutil.Decode(strings.NewReader("{i\x01aT}"), &buf, bjutil.DecodeOptions{Format: render.FormatJSON})
	require.NoError(t, err)
	require.Equal(t, "{\"a\": true}\n", buf.String())

	buf.Reset()
	err = bjutil.Decode(strings.NewReader("TZ"), &buf, bjutil.DecodeOptions{Format: render.FormatJSON})
	require.Error(t, err)

	err = bjutil.Decode(strings.NewReader("TNZ"), &buf, bjutil.DecodeOptions{Lenient: true, Format: render.FormatYAML})
	require.NoError(t, err)
	require.Equal(t, "true\nnull\n", buf.String())

	err = bjutil.Decode(strings.NewReader("u\x01\x00"), &buf, bjutil.DecodeOptions{UBJSON: true})
	require.Error(t, err)
}

func TestEvents(t *testing.T) {
	var buf bytes.Buffer
	done, err := bjutil.Events(strings.NewReader("[#i\x02CaZ"), &buf, false, 0)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "start_array(2)\nstring(\"a\")\nnull()\nend_array()\n", buf.String())

	buf.Reset()
	done, err = bjutil.Events(strings.NewReader("{i\x01ah\x00\x3c}"), &buf, false, 2)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, "start_object(?)\nkey(\"a\")\n", buf.String())
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path     string
		opt      bjutil.ConvertOptions
		expected string
	}{
		{"a.json", bjutil.ConvertOptions{To: bjutil.ToBJData, Compression: iox.Auto}, "a.bjd"},
		{"a.json", bjutil.ConvertOptions{To: bjutil.ToBJData, Compression: iox.Zstd}, "a.bjd.zst"},
		{"dir.v1/a", bjutil.ConvertOptions{To: bjutil.ToBJData, Compression: iox.LZ4}, "dir.v1/a.bjd.lz4"},
		{"a.bjd.s2", bjutil.ConvertOptions{To: bjutil.ToJSON, Compression: iox.Auto}, "a.json"},
	}

	for _, test := range tests {
		require.Equal(t, test.expected, bjutil.OutputPath(test.path, test.opt))
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for _, name := range []string{"a", "b", "c"} {
		p := filepath.Join(dir, name+".json")
		require.NoError(t, os.WriteFile(p, []byte(`{"name": "`+name+`", "n": [1, 2, 3]}`), 0o644))
		paths = append(paths, p)
	}

	err := bjutil.Convert(context.Background(), paths, bjutil.ConvertOptions{
		To:          bjutil.ToBJData,
		Jobs:        2,
		Compression: iox.Zstd,
		Encode:      bjutil.EncodeOptions{TypePrefix: true},
	})
	require.NoError(t, err)

	var compressed []string
	for _, name := range []string{"a", "b", "c"} {
		compressed = append(compressed, filepath.Join(dir, name+".bjd.zst"))
		require.NoError(t, os.Remove(filepath.Join(dir, name+".json")))
	}

	err = bjutil.Convert(context.Background(), compressed, bjutil.ConvertOptions{
		To:          bjutil.ToJSON,
		Jobs:        2,
		Compression: iox.Auto,
		Decode:      bjutil.DecodeOptions{Format: render.FormatJSON},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "b.json"))
	require.NoError(t, err)
	require.Equal(t, "{\"name\": \"b\", \"n\": [1, 2, 3]}\n", string(data))
}

func TestConvertError(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`nope`), 0o644))

	err := bjutil.Convert(context.Background(), []string{p}, bjutil.ConvertOptions{To: bjutil.ToBJData, Jobs: 1})
	require.ErrorContains(t, err, "failed to convert")
}

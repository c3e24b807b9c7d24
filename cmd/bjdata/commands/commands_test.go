package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaisql/bjdata/cmd/bjdata/commands"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()

	app := commands.NewApp()
	app.Writer = new(bytes.Buffer)
	return app.Run(context.Background(), append([]string{"bjdata"}, args...))
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	bjd := filepath.Join(dir, "out.bjd.lz4")
	out := filepath.Join(dir, "out.yaml")

	require.NoError(t, os.WriteFile(in, []byte(`{"a": [1, 2], /* c */ "b": "x"}`), 0o644))

	require.NoError(t, run(t, "encode", "-t", "-o", bjd, in))
	require.NoError(t, run(t, "decode", "-f", "yaml", "-o", out, bjd))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "a:\n  - 1\n  - 2\nb: x\n", string(data))
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(in, []byte(`[true, null]`), 0o644))

	require.NoError(t, run(t, "convert", "-z", "s2", in))
	_, err := os.Stat(filepath.Join(dir, "doc.bjd.s2"))
	require.NoError(t, err)

	require.Error(t, run(t, "convert"))
	require.Error(t, run(t, "convert", "--to", "xml", in))
}

func TestInvalidFlags(t *testing.T) {
	require.Error(t, run(t, "decode", "-z", "gzip", "file"))
	require.Error(t, run(t, "decode", "-f", "toml", "file"))
}

func TestVersion(t *testing.T) {
	app := commands.NewApp()
	var buf bytes.Buffer
	app.Writer = &buf

	require.NoError(t, app.Run(context.Background(), []string{"bjdata", "version"}))
	require.Contains(t, buf.String(), "bjdata")
}

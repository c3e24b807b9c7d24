// Package iox opens the inputs and outputs of the bjdata command,
// optionally compressed.
package iox

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression names a stream compression codec.
type Compression string

const (
	None Compression = "none"
	// Auto selects the codec from the file extension.
	Auto Compression = "auto"
	Zstd Compression = "zstd"
	S2   Compression = "s2"
	LZ4  Compression = "lz4"
)

// ParseCompression validates a codec name.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(s)); c {
	case "":
		return Auto, nil
	case None, Auto, Zstd, S2, LZ4:
		return c, nil
	}

	return "", errors.Errorf("unknown compression %q", s)
}

// Detect returns the codec matching the extension of path.
func Detect(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".s2":
		return S2
	case ".lz4":
		return LZ4
	}
	return None
}

// Extension returns the file extension of c, including the dot.
func (c Compression) Extension() string {
	switch c {
	case Zstd:
		return ".zst"
	case S2:
		return ".s2"
	case LZ4:
		return ".lz4"
	}
	return ""
}

func (c Compression) resolve(path string) Compression {
	if c == Auto || c == "" {
		return Detect(path)
	}
	return c
}

// NewReader returns a reader decompressing r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case None, Auto, "":
		return io.NopCloser(r), nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create zstd reader")
		}
		return zr.IOReadCloser(), nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}

	return nil, errors.Errorf("unknown compression %q", c)
}

// NewWriter returns a writer compressing to w.
// Closing it flushes the compressed stream but doesn't close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None, Auto, "":
		return nopWriteCloser{w}, nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create zstd writer")
		}
		return zw, nil
	case S2:
		return s2.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}

	return nil, errors.Errorf("unknown compression %q", c)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Open opens path for reading. An empty path or "-" reads the standard input.
func Open(path string, c Compression) (io.ReadCloser, error) {
	var f io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", path)
		}
		f = file
	}

	r, err := NewReader(f, c.resolve(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &readCloser{ReadCloser: r, under: f}, nil
}

// Create creates path for writing. An empty path or "-" writes to the standard output.
func Create(path string, c Compression) (io.WriteCloser, error) {
	var f io.WriteCloser = nopWriteCloser{os.Stdout}
	if path != "" && path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", path)
		}
		f = file
	}

	w, err := NewWriter(f, c.resolve(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &writeCloser{WriteCloser: w, under: f}, nil
}

type readCloser struct {
	io.ReadCloser
	under io.Closer
}

func (r *readCloser) Close() error {
	err := r.ReadCloser.Close()
	return errors.CombineErrors(err, r.under.Close())
}

type writeCloser struct {
	io.WriteCloser
	under io.Closer
}

func (w *writeCloser) Close() error {
	err := w.WriteCloser.Close()
	return errors.CombineErrors(err, w.under.Close())
}

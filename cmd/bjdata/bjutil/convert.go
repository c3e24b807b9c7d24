package bjutil

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/chaisql/bjdata"
	"github.com/chaisql/bjdata/cmd/bjdata/iox"
	"github.com/chaisql/bjdata/cmd/bjdata/render"
	"github.com/chaisql/bjdata/types"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/jsonc"
	"golang.org/x/sync/errgroup"
)

type EncodeOptions struct {
	SizePrefix bool
	TypePrefix bool
}

func (o EncodeOptions) encodeOptions() []bjdata.EncodeOption {
	var opts []bjdata.EncodeOption
	if o.SizePrefix {
		opts = append(opts, bjdata.WithSizePrefix())
	}
	if o.TypePrefix {
		opts = append(opts, bjdata.WithTypePrefix())
	}
	return opts
}

// Encode reads a JSON document from r and writes its BJData encoding to w.
// Comments and trailing commas are accepted.
func Encode(r io.Reader, w io.Writer, opt EncodeOptions) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	v, err := types.ParseJSON(jsonc.ToJSON(data))
	if err != nil {
		return err
	}

	return bjdata.NewEncoder(w, opt.encodeOptions()...).Encode(v)
}

type DecodeOptions struct {
	UBJSON bool
	// Lenient reads a sequence of values instead of a single one.
	Lenient bool
	Format  render.Format
}

func (o DecodeOptions) decodeOptions() []bjdata.DecodeOption {
	if o.UBJSON {
		return []bjdata.DecodeOption{bjdata.WithFormat(bjdata.FormatUBJSON)}
	}
	return nil
}

// Decode reads BJData from r and prints it to w.
func Decode(r io.Reader, w io.Writer, opt DecodeOptions) error {
	if !opt.Lenient {
		v, err := bjdata.Decode(r, opt.decodeOptions()...)
		if err != nil {
			return err
		}
		return render.Write(w, opt.Format, v)
	}

	dec := bjdata.NewDecoder(r, opt.decodeOptions()...)
	for {
		v, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := render.Write(w, opt.Format, v); err != nil {
			return err
		}
	}
}

// Target is the format produced by Convert.
type Target string

const (
	ToBJData Target = "bjdata"
	ToJSON   Target = "json"
)

type ConvertOptions struct {
	To          Target
	Jobs        int
	Compression iox.Compression
	Encode      EncodeOptions
	Decode      DecodeOptions
}

// OutputPath returns the name of the file converting path produces.
// The extension of path is replaced by the one of the target.
func OutputPath(path string, opt ConvertOptions) string {
	base := path
	if c := iox.Detect(base); c != iox.None {
		base = strings.TrimSuffix(base, c.Extension())
	}
	if i := strings.LastIndexByte(base, '.'); i > strings.LastIndexByte(base, '/') {
		base = base[:i]
	}

	if opt.To == ToJSON {
		return base + ".json"
	}

	c := opt.Compression
	if c == iox.Auto {
		c = iox.None
	}
	return base + ".bjd" + c.Extension()
}

// Convert converts each file next to its input, running up to opt.Jobs conversions at once.
// The first failure cancels the conversions that haven't started yet.
func Convert(ctx context.Context, paths []string, opt ConvertOptions) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opt.Jobs, 1))

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out := OutputPath(path, opt)
			slog.Info("converting", "from", path, "to", out)

			err := convertFile(path, out, opt)
			return errors.Wrapf(err, "failed to convert %s", path)
		})
	}

	return g.Wait()
}

func convertFile(in, out string, opt ConvertOptions) (err error) {
	inCompression, outCompression := iox.None, iox.None
	if opt.To == ToJSON {
		inCompression = opt.Compression
	} else {
		outCompression = opt.Compression
		if outCompression == iox.Auto {
			outCompression = iox.None
		}
	}

	r, err := iox.Open(in, inCompression)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := iox.Create(out, outCompression)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, w.Close())
	}()

	if opt.To == ToJSON {
		return Decode(r, w, opt.Decode)
	}
	return Encode(r, w, opt.Encode)
}

package commands

import (
	"context"
	"runtime"

	"github.com/chaisql/bjdata/cmd/bjdata/bjutil"
	"github.com/chaisql/bjdata/cmd/bjdata/iox"
	"github.com/chaisql/bjdata/cmd/bjdata/render"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewConvertCommand returns a cli.Command for "bjdata convert".
func NewConvertCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "convert",
		Usage:     "Convert files between JSON and BJData",
		UsageText: `bjdata convert [options] file...`,
		Description: `The convert command converts every file and writes the result next to it,
replacing its extension:

$ bjdata convert --to bjdata -z zstd a.json b.json
$ ls
a.bjd.zst a.json b.bjd.zst b.json

Files are converted concurrently.`,
		Flags: []cli.Flag{
			compressionFlag(),
			ubjsonFlag(),
			&cli.StringFlag{
				Name:  "to",
				Usage: "target format: bjdata or json",
				Value: string(bjutil.ToBJData),
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "number of files converted at once",
				Value:   int64(runtime.GOMAXPROCS(0)),
			},
			&cli.BoolFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "use optimized containers when encoding",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		paths := cmd.Args().Slice()
		if len(paths) == 0 {
			return errors.New(cmd.UsageText)
		}

		c, err := iox.ParseCompression(cmd.String("compression"))
		if err != nil {
			return err
		}

		to := bjutil.Target(cmd.String("to"))
		if to != bjutil.ToBJData && to != bjutil.ToJSON {
			return errors.Errorf("unknown target format %q", to)
		}

		return bjutil.Convert(ctx, paths, bjutil.ConvertOptions{
			To:          to,
			Jobs:        int(cmd.Int("jobs")),
			Compression: c,
			Encode:      bjutil.EncodeOptions{TypePrefix: cmd.Bool("type")},
			Decode: bjutil.DecodeOptions{
				UBJSON: cmd.Bool("ubjson"),
				Format: render.FormatJSON,
			},
		})
	}

	return &cmd
}

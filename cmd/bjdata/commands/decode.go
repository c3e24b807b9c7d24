package commands

import (
	"context"

	"github.com/chaisql/bjdata/cmd/bjdata/bjutil"
	"github.com/chaisql/bjdata/cmd/bjdata/iox"
	"github.com/chaisql/bjdata/cmd/bjdata/render"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewDecodeCommand returns a cli.Command for "bjdata decode".
func NewDecodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "decode",
		Usage:     "Decode BJData and print it as JSON or YAML",
		UsageText: `bjdata decode [options] [file]`,
		Description: `The decode command reads a BJData value and prints it.

$ bjdata decode a.bjd
{"a": [1, 2, 3]}

With --lenient, the input may contain a sequence of values, each printed on its own:

$ cat a.bjd b.bjd | bjdata decode --lenient -f yaml`,
		Flags: []cli.Flag{
			outputFlag(),
			compressionFlag(),
			ubjsonFlag(),
			&cli.BoolFlag{
				Name:  "lenient",
				Usage: "read a sequence of values instead of exactly one",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: json or yaml",
				Value:   string(render.FormatJSON),
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) (err error) {
		c, err := iox.ParseCompression(cmd.String("compression"))
		if err != nil {
			return err
		}
		f, err := render.ParseFormat(cmd.String("format"))
		if err != nil {
			return err
		}

		r, err := iox.Open(cmd.Args().First(), c)
		if err != nil {
			return err
		}
		defer r.Close()

		w, err := iox.Create(cmd.String("output"), iox.None)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.CombineErrors(err, w.Close())
		}()

		return bjutil.Decode(r, w, bjutil.DecodeOptions{
			UBJSON:  cmd.Bool("ubjson"),
			Lenient: cmd.Bool("lenient"),
			Format:  f,
		})
	}

	return &cmd
}

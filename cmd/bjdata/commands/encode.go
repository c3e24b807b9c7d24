package commands

import (
	"context"

	"github.com/chaisql/bjdata/cmd/bjdata/bjutil"
	"github.com/chaisql/bjdata/cmd/bjdata/iox"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewEncodeCommand returns a cli.Command for "bjdata encode".
func NewEncodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "encode",
		Usage:     "Encode a JSON document as BJData",
		UsageText: `bjdata encode [options] [file]`,
		Description: `The encode command reads a JSON document and writes its BJData encoding.

Comments and trailing commas are accepted in the input.
By default, the document is read from the standard input and written to the standard output:

$ echo '{"a": [1, 2, 3]}' | bjdata encode -t -o a.bjd

The output is compressed when the name of the output file ends with .zst, .s2 or .lz4,
or when the --compression flag says so.`,
		Flags: []cli.Flag{
			outputFlag(),
			compressionFlag(),
			&cli.BoolFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Usage:   "prefix containers with their element count",
			},
			&cli.BoolFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "prefix containers with their element type when it is shared. Implies --size",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) (err error) {
		c, err := iox.ParseCompression(cmd.String("compression"))
		if err != nil {
			return err
		}

		r, err := iox.Open(cmd.Args().First(), iox.None)
		if err != nil {
			return err
		}
		defer r.Close()

		w, err := iox.Create(cmd.String("output"), c)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.CombineErrors(err, w.Close())
		}()

		return bjutil.Encode(r, w, bjutil.EncodeOptions{
			SizePrefix: cmd.Bool("size"),
			TypePrefix: cmd.Bool("type"),
		})
	}

	return &cmd
}

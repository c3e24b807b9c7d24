package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/chaisql/bjdata/cmd/bjdata/bjutil"
	"github.com/chaisql/bjdata/cmd/bjdata/iox"
	"github.com/urfave/cli/v3"
)

// NewEventsCommand returns a cli.Command for "bjdata events".
func NewEventsCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "events",
		Usage:     "Print the parsing events of a BJData value",
		UsageText: `bjdata events [options] [file]`,
		Description: `The events command prints one line per event reported by the decoder:

$ bjdata events a.bjd
start_object(?)
key("a")
start_array(3)
...`,
		Flags: []cli.Flag{
			compressionFlag(),
			ubjsonFlag(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "stop after this many events. 0 means no limit",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		c, err := iox.ParseCompression(cmd.String("compression"))
		if err != nil {
			return err
		}

		r, err := iox.Open(cmd.Args().First(), c)
		if err != nil {
			return err
		}
		defer r.Close()

		done, err := bjutil.Events(r, os.Stdout, cmd.Bool("ubjson"), int(cmd.Int("limit")))
		if err != nil {
			return err
		}
		if !done {
			slog.Debug("stopped before the end of the value", "limit", cmd.Int("limit"))
		}
		return nil
	}

	return &cmd
}

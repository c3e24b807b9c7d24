package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// NewApp creates the bjdata CLI app.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:                  "bjdata",
		Usage:                 "Convert between JSON and BJData",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug information to stderr",
				Sources: cli.EnvVars("BJDATA_VERBOSE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelWarn
			if cmd.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return ctx, nil
		},
		Commands: []*cli.Command{
			NewEncodeCommand(),
			NewDecodeCommand(),
			NewEventsCommand(),
			NewConvertCommand(),
			NewVersionCommand(),
		},
	}
}

func compressionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "compression",
		Aliases: []string{"z"},
		Usage:   "compression of the BJData stream: auto, none, zstd, s2 or lz4",
		Value:   "auto",
		Sources: cli.EnvVars("BJDATA_COMPRESSION"),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "name of the file to output to. Defaults to STDOUT.",
	}
}

func ubjsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "ubjson",
		Usage: "read plain UBJSON, rejecting BJData extensions",
	}
}

package commands

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// NewVersionCommand returns a cli.Command for "bjdata version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows the bjdata CLI version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Fprintln(cmd.Root().Writer, "bjdata version not available")
				return nil
			}

			fmt.Fprintf(cmd.Root().Writer, "bjdata %v (%v)\n", info.Main.Version, info.GoVersion)
			return nil
		},
	}
}

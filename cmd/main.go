package main

import (
	"context"
	"os"

	"github.com/desertthunder/routerdrawer/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newCommand(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func newCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "routerdrawer",
		Usage:   "Router and drawer navigation shell",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   r.loadConfig,
		Commands: r.register(),
	}
}

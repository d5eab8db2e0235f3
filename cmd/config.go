package main

import (
	"context"

	"github.com/desertthunder/routerdrawer/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the embedded default configuration to disk.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("created config file", "path", path)
	return r.writePlain("Wrote %s\n", path)
}

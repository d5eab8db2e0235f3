// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// tuiCommand returns the top-level TUI command for the interactive shell.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive router and drawer shell",
		Action:  r.TUI,
	}
}

// scriptCommand replays a TOML script on a virtual clock.
func scriptCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "script",
		Usage: "Run a scripted session headlessly and print each step",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output one JSON object per step",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Transcript format: text, json, csv or markdown",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the transcript to a file instead of stdout",
			},
		},
		Action: r.Script,
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a config.toml populated with the default timings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}

// screensCommand lists every screen with the actions it offers.
func screensCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "screens",
		Usage: "List screens and the actions each one offers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Screens,
	}
}

// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// syncCommand runs one synchronization pass
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Fetch feeds and create tasks for new entries",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report what would be created without calling the task API",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run report as JSON",
			},
		},
		Action: r.Sync,
	}
}

// sourcesCommand inspects the configured sources
func sourcesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sources",
		Usage: "List configured feed sources",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Sources,
	}
}

// watermarkCommand handles watermark operations
func watermarkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watermark",
		Usage: "Inspect or override the synchronization watermark",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current watermark",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.WatermarkShow,
			},
			{
				Name:  "set",
				Usage: "Override the watermark with an RFC 3339 timestamp",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "timestamp"},
				},
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.WatermarkSet,
			},
		},
	}
}

// historyCommand lists past runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent synchronization runs",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// setupCommand initializes configuration and database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the database",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Setup,
	}
}

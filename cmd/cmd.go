// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes configuration and the local database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent schema migration instead",
			},
		},
		Action: r.Setup,
	}
}

// migrateCommand moves a submission's assets onto the media host
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"mig"},
		Usage:   "Upload a submission's assets to the media host",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "submission",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output result as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Migrate,
	}
}

// moderateCommand applies a moderation decision to a batch of assets
func moderateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "moderate",
		Aliases: []string{"mod"},
		Usage:   "Apply a moderation status to hosted assets",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "ids",
				Usage:    "Comma-separated asset ids",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "status",
				Aliases:  []string{"s"},
				Usage:    "Target status: unreviewed, approved, or rejected",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output result as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Moderate,
	}
}

// serveCommand runs the HTTP task worker
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the task worker HTTP server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Override the configured listen port",
			},
		},
		Action: r.Serve,
	}
}

package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "codehub.toml",
			Usage:   "Path of the toml config file, environment variables override it",
		},
	}

	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "codehub"
	app.Usage = "Social platform backend for developers"
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       flags,
			Category:    "Api",
			Description: `Used to start the http api serving every endpoint.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database",
			Flags:       flags,
			Category:    "Database",
			Description: `Used to create or update the tables and their indexes.`,
		},
	}

	s.app = app
}

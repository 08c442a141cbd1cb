// Package main provides the vgdb command: schema management, dataset
// ingestion and reports over the popular video games database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "vgdb",
		Version: version,
		Usage:   "Load and query the popular video games dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: ".",
				Usage: "directory holding the .env file",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "database driver (postgres, mysql, sqlite); overrides DATABASE_DRIVER",
			},
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "database connection string; overrides DATABASE_URL",
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			resetCommand(),
			ingestCommand(),
			reportCommand(),
			hashKeyCommand(),
		},
	}
}

func main() {
	app := newApp()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

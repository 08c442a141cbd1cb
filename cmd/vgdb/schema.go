package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"popularvideogames/backend/internal/database"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create missing tables",
		Action: func(_ context.Context, cmd *cli.Command) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.Migrate(e.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, "Schema is up to date.")
			return nil
		},
	}
}

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Drop every table and recreate the empty schema",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "confirm dropping all data",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if !cmd.Bool("yes") {
				return errors.New("refusing to drop all data without --yes")
			}
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.Reset(e.db); err != nil {
				return err
			}
			if err := database.Migrate(e.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, "Database reset.")
			return nil
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"popularvideogames/backend/internal/auth"
)

func hashKeyCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-key",
		Usage:     "Print the bcrypt hash of an admin key for ADMIN_KEY_HASH",
		ArgsUsage: "<key>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("usage: vgdb hash-key <key>")
			}
			hash, err := auth.HashAdminKey(cmd.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, hash)
			return nil
		},
	}
}

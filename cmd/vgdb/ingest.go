package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"popularvideogames/backend/internal/database"
	"popularvideogames/backend/internal/ingest"
	"popularvideogames/backend/internal/store"
)

func ingestCommand() *cli.Command {
	return &cli.Command{
		Name:  "ingest",
		Usage: "Load a dataset file in one transaction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "dataset CSV; defaults to DATASET_PATH",
			},
			&cli.StringFlag{
				Name:  "layout",
				Usage: "column layout (standard, source); defaults to DATASET_LAYOUT",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "drop and recreate all tables before loading",
			},
		},
		Action: runIngest,
	}
}

func runIngest(ctx context.Context, cmd *cli.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	path := cmd.String("file")
	if path == "" {
		path = e.cfg.DatasetPath
	}
	layoutName := cmd.String("layout")
	if layoutName == "" {
		layoutName = e.cfg.DatasetLayout
	}
	layout, err := ingest.LayoutByName(layoutName)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if cmd.Bool("reset") {
		if err := database.Reset(e.db); err != nil {
			return err
		}
	}
	if err := database.Migrate(e.db); err != nil {
		return err
	}

	ing := ingest.New(ingest.GormRunner(store.New(e.db, e.log)), e.log)
	stats, err := ing.Run(ctx, ingest.NewCSVSource(f, path), layout)
	if err != nil {
		return err
	}

	label := lipgloss.NewStyle().Bold(true)
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		label = lipgloss.NewStyle()
	}
	w := cmd.Root().Writer
	fmt.Fprintf(w, "%s %d\n", label.Render("Rows read:    "), stats.Read)
	fmt.Fprintf(w, "%s %d\n", label.Render("Rows inserted:"), stats.Inserted)
	fmt.Fprintf(w, "%s %d\n", label.Render("Rows skipped: "), stats.Skipped())
	return nil
}

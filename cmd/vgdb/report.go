package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"popularvideogames/backend/internal/report"
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "List or run the fixed reports",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Show the report catalog",
				Action: runReportList,
			},
			{
				Name:      "run",
				Usage:     "Run one report",
				ArgsUsage: "<category> <report>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   string(report.FormatTable),
						Usage:   "output format (table, json, yaml)",
					},
				},
				Action: runReport,
			},
		},
	}
}

func runReportList(_ context.Context, cmd *cli.Command) error {
	heading := lipgloss.NewStyle().Bold(true)
	slug := lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		heading, slug = lipgloss.NewStyle(), lipgloss.NewStyle()
	}

	w := cmd.Root().Writer
	for _, c := range report.Categories() {
		fmt.Fprintln(w, heading.Render(string(c)))
		for _, d := range report.InCategory(c) {
			fmt.Fprintf(w, "  %-22s %s\n", slug.Render(d.Slug), d.Title)
		}
	}
	return nil
}

func runReport(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return errors.New("usage: vgdb report run <category> <report>")
	}
	format, err := report.ParseFormat(cmd.String("output"))
	if err != nil {
		return err
	}
	def, err := report.Lookup(cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return err
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	table, err := def.Run(ctx, e.db)
	if err != nil {
		return err
	}
	return report.Render(cmd.Root().Writer, table, format, isatty.IsTerminal(os.Stdout.Fd()))
}

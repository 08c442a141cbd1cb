package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

var (
	colorBorder = lipgloss.Color("#374151")
	colorHeader = lipgloss.Color("#3b82f6")
	colorMuted  = lipgloss.Color("#9ca3af")
)

// Render writes t to w. Color only affects the table format.
func Render(w io.Writer, t Table, f Format, color bool) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		_, err := fmt.Fprintln(w, renderTable(t, color))
		return err
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

func renderTable(t Table, color bool) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	body := lipgloss.NewStyle().Padding(0, 1)
	null := body
	border := lipgloss.NewStyle()
	if color {
		header = header.Foreground(colorHeader)
		null = null.Foreground(colorMuted)
		border = border.Foreground(colorBorder)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers(t.Columns...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row >= 0 && row < len(t.Rows) && col < len(t.Rows[row]) && t.Rows[row][col] == Null {
				return null
			}
			return body
		})

	out := tbl.String()
	if t.Title != "" {
		title := lipgloss.NewStyle().Bold(true)
		out = title.Render(t.Title) + "\n" + out
	}
	return fmt.Sprintf("%s\n%d row(s)", out, len(t.Rows))
}

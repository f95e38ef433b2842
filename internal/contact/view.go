package contact

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

var (
	gutterStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#c0c0c0")).
			Foreground(lipgloss.Color("#000000")).
			Align(lipgloss.Center)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a1a")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3b82f6")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	thanksStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#15803d")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b91c1c"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280")).
			Italic(true)
)

// Columns and rows of the grid frame.
var (
	ColumnLetters = []string{"A", "B", "C"}
	RowCount      = 4
)

// View renders the sheet to fit width columns.
func (s *Sheet) View(width int) string {
	if s.editing && s.form != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.form.View(),
			hintStyle.Render("esc: stop editing"),
		)
	}

	var b strings.Builder
	b.WriteString(s.grid(width))
	b.WriteString("\n")

	switch {
	case s.Err != nil:
		b.WriteString(errorStyle.Render(ansi.Truncate(s.Err.Error(), width, "…")))
	case s.Submitted:
		b.WriteString(thanksStyle.Render(ansi.Truncate(
			fmt.Sprintf("Thank you for your message! %s will get back to you soon.", s.FirstName()),
			width, "…")))
	default:
		b.WriteString(hintStyle.Render("enter: edit sheet"))
	}
	return b.String()
}

func (s *Sheet) grid(width int) string {
	valueWidth := width - 32
	if valueWidth < 8 {
		valueWidth = 8
	}
	clip := func(v string) string {
		v = strings.ReplaceAll(v, "\n", " ")
		return ansi.Truncate(v, valueWidth, "…")
	}

	rows := [][]string{
		{"1", "Your Name:", clip(s.Name), ""},
		{"2", "Your Email:", clip(s.Email), ""},
		{"3", fmt.Sprintf("Message for %s:", s.FirstName()), clip(s.Message), ""},
		{"4", buttonStyle.Render(fmt.Sprintf("Send to %s", s.FirstName())), "", ""},
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))).
		Headers(append([]string{""}, ColumnLetters...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow, col == 0:
				return gutterStyle
			case col == 1:
				return labelStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

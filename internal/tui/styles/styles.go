// Package styles provides shared lipgloss styles for command output.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
)

// Color palette using ANSI colors for broad terminal compatibility.
var (
	Primary   = lipgloss.Color("4")   // Blue
	Secondary = lipgloss.Color("245") // Light gray (visible on dark backgrounds)
	Success   = lipgloss.Color("2")   // Green
	Warning   = lipgloss.Color("3")   // Yellow
	Error     = lipgloss.Color("1")   // Red
	Highlight = lipgloss.Color("12")  // Bright blue
	Muted     = lipgloss.Color("245") // Light gray (visible on dark backgrounds)
)

// Text styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	Value = lipgloss.NewStyle().
		Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Success)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// Layout styles.
var (
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(0, 1)
)

// difficultyColors gives each tier its own color, from calm to loud.
var difficultyColors = map[challenge.Difficulty]lipgloss.Color{
	challenge.Easy:   Success,
	challenge.Normal: Highlight,
	challenge.Hard:   Warning,
	challenge.Wild:   Error,
	challenge.Zen:    lipgloss.Color("5"), // Magenta
}

// Difficulty returns the style used to print a difficulty name.
func Difficulty(d challenge.Difficulty) lipgloss.Style {
	color, ok := difficultyColors[d]
	if !ok {
		color = Muted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// Row is one label/value line of a summary box.
type Row struct {
	Label string
	Value string
}

// Summary renders a titled box of aligned label/value rows.
func Summary(title string, rows []Row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Title.Render(title))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r.Label))
		lines = append(lines, Label.Render(r.Label+":"+pad)+" "+Value.Render(r.Value))
	}
	return Box.Render(strings.Join(lines, "\n"))
}

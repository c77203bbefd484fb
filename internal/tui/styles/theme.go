package styles

import (
	"github.com/charmbracelet/lipgloss"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/tui/colors"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Blue)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0)

	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Green)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)

	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve)
)

// VariantStyle renders a variant name in its accent color.
func VariantStyle(v board.Variant) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colors.Variant(v)).Bold(true)
}

// Mark renders a check or a cross.
func Mark(ok bool) string {
	s := lipgloss.NewStyle().Foreground(colors.Accepted(ok))
	if ok {
		return s.Render("✓")
	}
	return s.Render("✗")
}

package colors

import (
	"github.com/charmbracelet/lipgloss"

	board "github.com/allbin/go-board"
)

// Catppuccin Mocha
var (
	Base     = lipgloss.Color("#1e1e2e")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70")
	Overlay0 = lipgloss.Color("#6c7086")
	Subtext0 = lipgloss.Color("#a6adc8")
	Subtext1 = lipgloss.Color("#bac2de")
	Text     = lipgloss.Color("#cdd6f4")

	Lavender = lipgloss.Color("#b4befe")
	Blue     = lipgloss.Color("#89b4fa")
	Sky      = lipgloss.Color("#89dceb")
	Teal     = lipgloss.Color("#94e2d5")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Mauve    = lipgloss.Color("#cba6f7")
)

// Variant returns the accent used for a serial variant.
func Variant(v board.Variant) lipgloss.Color {
	switch v {
	case board.VariantUART:
		return Peach
	case board.VariantUSART:
		return Teal
	case board.VariantUSBCDC:
		return Lavender
	default:
		return Overlay0
	}
}

// Accepted returns green for true and red for false.
func Accepted(ok bool) lipgloss.Color {
	if ok {
		return Green
	}
	return Red
}

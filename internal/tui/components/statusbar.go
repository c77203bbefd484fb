package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/tui/colors"
	"github.com/allbin/go-board/internal/tui/styles"
)

// PortInfo is the port state shown in the status bar.
type PortInfo struct {
	Board   string
	Port    string
	Variant board.Variant
	Open    bool
	Baud    uint32
	Format  board.SerialConfig
}

type StatusBar struct {
	info    PortInfo
	message string
	err     error
	width   int
}

func NewStatusBar(info PortInfo) *StatusBar {
	return &StatusBar{info: info}
}

func (sb *StatusBar) SetInfo(info PortInfo) { sb.info = info }
func (sb *StatusBar) SetWidth(width int)    { sb.width = width }

// SetMessage shows a transient message. A non-nil err marks it as failed.
func (sb *StatusBar) SetMessage(msg string, err error) {
	sb.message = msg
	sb.err = err
}

func (sb *StatusBar) Message() (string, error) { return sb.message, sb.err }

func segment(fg, bg lipgloss.Color, bold bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(fg).Padding(0, 1).Bold(bold)
	if bg != "" {
		s = s.Background(bg)
	}
	return s
}

// View renders the bar. mode is the editor mode label and sending the
// sending mode shown while typing.
func (sb *StatusBar) View(mode, sending, clock string) string {
	width := sb.width
	if width <= 0 {
		width = 80
	}

	modeBG := colors.Blue
	switch mode {
	case "INSERT":
		modeBG = colors.Green
	case "COMMAND":
		modeBG = colors.Mauve
	}
	left := []string{
		segment(colors.Base, modeBG, true).Render(mode),
		segment(colors.Mauve, "", true).Render(sb.info.Board + ":" + sb.info.Port),
		styles.VariantStyle(sb.info.Variant).Render(sb.info.Variant.String()),
	}

	indicator := lipgloss.NewStyle().Foreground(colors.Red).Render(" ○")
	if sb.err != nil {
		indicator = lipgloss.NewStyle().Foreground(colors.Red).Render(" ✗")
	} else if sb.info.Open {
		indicator = lipgloss.NewStyle().Foreground(colors.Green).Render(" ●")
	}
	left = append(left, indicator)
	if mode == "INSERT" {
		left = append(left, segment(colors.Peach, "", true).Render("["+sending+"] Tab to toggle"))
	}
	if sb.message != "" {
		fg := colors.Subtext1
		if sb.err != nil {
			fg = colors.Red
		}
		left = append(left, segment(fg, "", false).Render(sb.message))
	}

	settings := "⚡ closed"
	if sb.info.Open {
		settings = fmt.Sprintf("⚡ %d baud %s", sb.info.Baud, sb.info.Format)
	}
	divider := segment(colors.Surface2, "", false).Render("│")
	right := lipgloss.JoinHorizontal(lipgloss.Left,
		segment(colors.Subtext0, "", false).Render(settings),
		divider,
		segment(colors.Subtext1, "", false).Render(clock),
	)

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, left...)
	gap := max(width-lipgloss.Width(leftSide)-lipgloss.Width(right), 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(width).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, right))
}

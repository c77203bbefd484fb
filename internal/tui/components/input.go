package components

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-board/internal/tui/colors"
	"github.com/allbin/go-board/internal/tui/styles"
)

type SendingMode int

const (
	SendingModeASCII SendingMode = iota
	SendingModeHex
)

func (s SendingMode) String() string {
	if s == SendingModeHex {
		return "HEX"
	}
	return "ASCII"
}

const historyLimit = 100

var errEmptyHex = errors.New("empty input")

// ParseHex decodes hex digits, ignoring spaces and 0x prefixes.
func ParseHex(s string) ([]byte, error) {
	clean := strings.NewReplacer(" ", "", "0x", "", "0X", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return nil, errEmptyHex
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex string must have even number of digits (got %d)", len(clean))
	}
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

// Input is the single line editor under the terminal. It holds a send
// line and a separate ':' command line, each with its own history.
type Input struct {
	text        textinput.Model
	sendingMode SendingMode
	command     bool

	history      map[bool][]string
	historyIndex int
	stash        string
	width        int
}

func NewInput() *Input {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Placeholder = "Type message and press Enter to send..."
	return &Input{
		text:         ti,
		history:      map[bool][]string{},
		historyIndex: -1,
	}
}

func (i *Input) SetWidth(width int) {
	i.width = width
	i.text.Width = max(width-6, 20)
}

func (i *Input) Focus()                   { i.text.Focus() }
func (i *Input) Blur()                    { i.text.Blur() }
func (i *Input) Value() string            { return i.text.Value() }
func (i *Input) SetValue(v string)        { i.text.SetValue(v) }
func (i *Input) SendingMode() SendingMode { return i.sendingMode }
func (i *Input) InCommandMode() bool      { return i.command }

// SetCommandMode switches between the send line and the command line.
// The current text is discarded.
func (i *Input) SetCommandMode(on bool) {
	i.command = on
	i.historyIndex = -1
	i.stash = ""
	i.text.SetValue("")
	i.updatePlaceholder()
}

func (i *Input) ToggleSendingMode() {
	if i.sendingMode == SendingModeASCII {
		i.sendingMode = SendingModeHex
	} else {
		i.sendingMode = SendingModeASCII
	}
	i.updatePlaceholder()
}

func (i *Input) updatePlaceholder() {
	switch {
	case i.command:
		i.text.Placeholder = "begin 9600 8N1 | end | timeout 500ms | flush | role console"
	case i.sendingMode == SendingModeHex:
		i.text.Placeholder = "Enter hex (e.g. 48656C6C6F or 48 65 6C 6C 6F)..."
	default:
		i.text.Placeholder = "Type message and press Enter to send..."
	}
}

// Payload returns the bytes to send for the current line.
func (i *Input) Payload() ([]byte, error) {
	if i.sendingMode == SendingModeHex {
		return ParseHex(i.text.Value())
	}
	return []byte(i.text.Value()), nil
}

func (i *Input) Update(msg tea.Msg) (*Input, tea.Cmd) {
	var cmd tea.Cmd
	i.text, cmd = i.text.Update(msg)
	return i, cmd
}

func (i *Input) View(insert bool) string {
	symbol, color := ">", colors.Green
	switch {
	case i.command:
		symbol, color = ":", colors.Mauve
	case i.sendingMode == SendingModeHex:
		symbol, color = "#", colors.Yellow
	}
	prompt := lipgloss.NewStyle().Foreground(color).Bold(true).Render(symbol)

	var content string
	if insert {
		content = lipgloss.JoinHorizontal(lipgloss.Left, prompt, " ", i.text.View())
	} else {
		hint := styles.MutedStyle.Render("Press 'i' to type, ':' for a port command")
		content = lipgloss.JoinHorizontal(lipgloss.Left, prompt, " ", hint)
	}

	style := styles.InputStyle.
		Width(max(i.width-4, 10)).
		AlignHorizontal(lipgloss.Left)
	if insert {
		style = style.BorderForeground(color)
	}
	return style.Render(content)
}

// AddToHistory records line unless it is blank or repeats the last entry.
func (i *Input) AddToHistory(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h := i.history[i.command]
	if len(h) > 0 && h[len(h)-1] == line {
		return
	}
	h = append(h, line)
	if len(h) > historyLimit {
		h = h[1:]
	}
	i.history[i.command] = h
	i.historyIndex = -1
	i.stash = ""
}

func (i *Input) HistoryUp() {
	h := i.history[i.command]
	if len(h) == 0 {
		return
	}
	if i.historyIndex == -1 {
		i.stash = i.text.Value()
		i.historyIndex = len(h) - 1
	} else if i.historyIndex > 0 {
		i.historyIndex--
	}
	i.text.SetValue(h[i.historyIndex])
}

func (i *Input) HistoryDown() {
	h := i.history[i.command]
	if len(h) == 0 || i.historyIndex == -1 {
		return
	}
	if i.historyIndex < len(h)-1 {
		i.historyIndex++
		i.text.SetValue(h[i.historyIndex])
		return
	}
	i.historyIndex = -1
	i.text.SetValue(i.stash)
	i.stash = ""
}

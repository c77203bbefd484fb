package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Terminal shows formatted records in a scrolling viewport.
type Terminal struct {
	viewport  viewport.Model
	formatter *Formatter
	lines     []string
	follow    bool
}

func NewTerminal(width, height int, formatter *Formatter) *Terminal {
	return &Terminal{
		viewport:  viewport.New(width, height),
		formatter: formatter,
		follow:    true,
	}
}

func (t *Terminal) SetSize(width, height int) {
	t.viewport.Width = width
	t.viewport.Height = height
}

func (t *Terminal) Add(r Record) {
	t.lines = append(t.lines, t.formatter.Format(r))
	t.render()
}

// Refresh reformats every record, e.g. after the display mode changed.
func (t *Terminal) Refresh(records []Record) {
	t.lines = t.formatter.FormatAll(records)
	t.render()
}

func (t *Terminal) Clear() {
	t.lines = nil
	t.viewport.SetContent("")
}

func (t *Terminal) render() {
	t.viewport.SetContent(strings.Join(t.lines, "\n"))
	if t.follow {
		t.viewport.GotoBottom()
	}
}

func (t *Terminal) ScrollUp() {
	t.follow = false
	t.viewport.LineUp(1)
}

func (t *Terminal) ScrollDown() {
	t.viewport.LineDown(1)
	t.follow = t.viewport.AtBottom()
}

func (t *Terminal) Top() {
	t.follow = false
	t.viewport.GotoTop()
}

func (t *Terminal) Bottom() {
	t.follow = true
	t.viewport.GotoBottom()
}

// Update only forwards resize messages; keys are handled by the caller.
func (t *Terminal) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.WindowSizeMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return cmd
}

func (t *Terminal) View() string {
	return t.viewport.View()
}

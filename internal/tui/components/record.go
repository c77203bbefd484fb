package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-board/internal/tui/colors"
)

// Direction tells received data from sent data and local notes.
type Direction int

const (
	DirRX Direction = iota
	DirTX
	DirNote
)

// TxStatus is the outcome of a send.
type TxStatus int

const (
	TxNone TxStatus = iota
	TxWritten
	TxPartial
	TxFailed
)

func (s TxStatus) String() string {
	switch s {
	case TxWritten:
		return "WRITTEN"
	case TxPartial:
		return "PARTIAL"
	case TxFailed:
		return "ERROR"
	default:
		return ""
	}
}

// Record is one line in the connect terminal.
type Record struct {
	Timestamp time.Time
	Dir       Direction
	Data      []byte
	Status    TxStatus
	Note      string
}

type DisplayMode struct {
	ShowHex   bool
	ShowASCII bool
}

// Formatter renders records according to a display mode.
type Formatter struct {
	mode DisplayMode
}

func NewFormatter(showHex, showASCII bool) *Formatter {
	return &Formatter{mode: DisplayMode{ShowHex: showHex, ShowASCII: showASCII}}
}

func (f *Formatter) Mode() DisplayMode { return f.mode }
func (f *Formatter) ToggleHex()        { f.mode.ShowHex = !f.mode.ShowHex }
func (f *Formatter) ToggleASCII()      { f.mode.ShowASCII = !f.mode.ShowASCII }

// Hex renders data as upper case space separated bytes.
func Hex(data []byte) string {
	return fmt.Sprintf("% X", data)
}

// Printable replaces every byte outside printable ASCII with a dot.
func Printable(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Indicator returns the arrow and label of a record, and its color.
func Indicator(r Record) (string, lipgloss.Color) {
	switch r.Dir {
	case DirRX:
		return "↙ RX", colors.Sky
	case DirNote:
		return "• --", colors.Mauve
	}
	switch r.Status {
	case TxWritten:
		return "↗ TX ✓", colors.Green
	case TxPartial:
		return "↗ TX ◐", colors.Yellow
	case TxFailed:
		return "↗ TX ✗", colors.Red
	default:
		return "↗ TX", colors.Peach
	}
}

// Body returns the payload text of r without timestamp or indicator.
func (f *Formatter) Body(r Record) string {
	if r.Dir == DirNote {
		return r.Note
	}
	var parts []string
	if f.mode.ShowHex {
		parts = append(parts, "HEX: "+Hex(r.Data))
	}
	if f.mode.ShowASCII {
		parts = append(parts, "ASCII: "+Printable(r.Data))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("BYTES: %d", len(r.Data)))
	}
	if r.Note != "" {
		parts = append(parts, "("+r.Note+")")
	}
	return strings.Join(parts, "  ")
}

// Format renders one record as a styled line.
func (f *Formatter) Format(r Record) string {
	label, color := Indicator(r)
	indicator := lipgloss.NewStyle().Foreground(color).Bold(true).Render(label)
	ts := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Render("[" + r.Timestamp.Format("15:04:05.000") + "]")
	return fmt.Sprintf("%s %s: %s", ts, indicator, f.Body(r))
}

func (f *Formatter) FormatAll(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = f.Format(r)
	}
	return out
}

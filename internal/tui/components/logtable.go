package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-board/internal/tui/colors"
)

const (
	timeWidth  = 12
	dirWidth   = 8
	bytesWidth = 6
)

// LogTable shows records as rows of a navigable table.
type LogTable struct {
	table     table.Model
	formatter *Formatter
	records   []Record
	width     int
}

func NewLogTable(width, height int, formatter *Formatter) *LogTable {
	t := table.New(
		table.WithHeight(height),
		table.WithWidth(width),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colors.Surface1).
		BorderBottom(true).
		Foreground(colors.Blue).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colors.Base).
		Background(colors.Mauve)
	t.SetStyles(s)

	lt := &LogTable{table: t, formatter: formatter}
	lt.SetSize(width, height)
	return lt
}

func (lt *LogTable) SetSize(width, height int) {
	lt.width = width
	lt.table.SetWidth(width)
	lt.table.SetHeight(height)
	lt.layout()
}

// layout splits the free width between the hex and ASCII columns that
// the display mode shows.
func (lt *LogTable) layout() {
	mode := lt.formatter.Mode()
	free := max(lt.width-timeWidth-dirWidth-bytesWidth-8, 20)

	cols := []table.Column{
		{Title: "Time", Width: timeWidth},
		{Title: "↕", Width: dirWidth},
	}
	switch {
	case mode.ShowHex && mode.ShowASCII:
		cols = append(cols,
			table.Column{Title: "Hex", Width: free * 2 / 3},
			table.Column{Title: "ASCII", Width: free - free*2/3},
		)
	case mode.ShowHex:
		cols = append(cols, table.Column{Title: "Hex", Width: free})
	case mode.ShowASCII:
		cols = append(cols, table.Column{Title: "ASCII", Width: free})
	default:
		cols = append(cols, table.Column{Title: "Data", Width: free})
	}
	cols = append(cols, table.Column{Title: "Bytes", Width: bytesWidth})

	// Rows must match the new column count before the columns are set.
	lt.table.SetRows(nil)
	lt.table.SetColumns(cols)
	lt.refresh()
}

func (lt *LogTable) row(r Record) table.Row {
	label, _ := Indicator(r)
	row := table.Row{r.Timestamp.Format("15:04:05.000"), label}
	mode := lt.formatter.Mode()
	switch {
	case r.Dir == DirNote:
		row = append(row, r.Note)
		if mode.ShowHex && mode.ShowASCII {
			row = append(row, "")
		}
	case mode.ShowHex && mode.ShowASCII:
		row = append(row, Hex(r.Data), Printable(r.Data))
	case mode.ShowHex:
		row = append(row, Hex(r.Data))
	case mode.ShowASCII:
		row = append(row, Printable(r.Data))
	default:
		row = append(row, strconv.Itoa(len(r.Data))+" bytes")
	}
	return append(row, strconv.Itoa(len(r.Data)))
}

func (lt *LogTable) refresh() {
	rows := make([]table.Row, len(lt.records))
	for i, r := range lt.records {
		rows[i] = lt.row(r)
	}
	lt.table.SetRows(rows)
	lt.table.GotoBottom()
}

func (lt *LogTable) Add(r Record) {
	lt.records = append(lt.records, r)
	lt.table.SetRows(append(lt.table.Rows(), lt.row(r)))
	lt.table.GotoBottom()
}

// Refresh replaces the rows, e.g. after the display mode changed.
func (lt *LogTable) Refresh(records []Record) {
	lt.records = records
	lt.layout()
}

func (lt *LogTable) Clear() {
	lt.records = nil
	lt.table.SetRows(nil)
}

func (lt *LogTable) Len() int { return len(lt.table.Rows()) }

func (lt *LogTable) MoveUp()   { lt.table.MoveUp(1) }
func (lt *LogTable) MoveDown() { lt.table.MoveDown(1) }
func (lt *LogTable) Top()      { lt.table.GotoTop() }
func (lt *LogTable) Bottom()   { lt.table.GotoBottom() }

func (lt *LogTable) View() string {
	return lt.table.View()
}

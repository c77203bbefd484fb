package cmd

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/sim"
	"github.com/allbin/go-board/internal/tui/components"
	"github.com/allbin/go-board/internal/tui/models"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *connectModel, s string) {
	for _, r := range s {
		m.Update(runes(string(r)))
	}
}

func newTestConnect(t *testing.T, name string) (*connectModel, *sim.Driver) {
	t.Helper()
	profile, err := board.LookupProfile(name)
	if err != nil {
		t.Fatal(err)
	}
	b, drv := sim.NewBoard(profile)
	console, _ := b.Console()
	u, _ := drv.UART(console.Name())
	u.SetLoopback(true)

	m := newConnectModel(b, console)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, drv
}

func TestConnectSendEcho(t *testing.T) {
	m, _ := newTestConnect(t, "leonardo")
	m.exec("begin 115200")
	if !m.session.Port().IsOpen() {
		t.Fatal("port not open after begin")
	}

	m.Update(runes("i"))
	if m.session.Mode() != models.InputModeInsert {
		t.Fatalf("mode = %v, want INSERT", m.session.Mode())
	}
	typeText(m, "hi")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(pollMsg(time.Now()))

	records := m.session.Records()
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3 (note, tx, rx)", len(records))
	}
	tx, rx := records[1], records[2]
	if tx.Dir != components.DirTX || tx.Status != components.TxWritten || string(tx.Data) != "hi\n" {
		t.Errorf("tx record = %+v", tx)
	}
	if rx.Dir != components.DirRX || string(rx.Data) != "hi\n" {
		t.Errorf("rx record = %+v", rx)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestConnectCommandMode(t *testing.T) {
	m, drv := newTestConnect(t, "due")

	m.Update(runes(":"))
	if m.session.Mode() != models.InputModeCommand {
		t.Fatalf("mode = %v, want COMMAND", m.session.Mode())
	}
	typeText(m, "begin 9600 7E1")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.session.Mode() != models.InputModeNormal {
		t.Errorf("mode after command = %v, want NORMAL", m.session.Mode())
	}
	msg, err := m.statusBar.Message()
	if err == nil {
		t.Fatalf("UART accepted 7E1: %q", msg)
	}
	if u, _ := drv.UART("Serial"); u.IsOpen() {
		t.Error("peripheral opened for a rejected format")
	}

	m.Update(runes(":"))
	typeText(m, "begin 9600 8E1")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, err := m.statusBar.Message(); err != nil {
		t.Fatalf("begin 8E1 error = %v", err)
	}
	if info := m.session.Info(); !info.Open || info.Format != board.Serial8E1 {
		t.Errorf("Info() = %+v, want open 8E1", info)
	}
}

func TestConnectHexSend(t *testing.T) {
	m, _ := newTestConnect(t, "uno")
	m.exec("begin")

	m.Update(runes("i"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.input.SendingMode() != components.SendingModeHex {
		t.Fatalf("SendingMode() = %v, want HEX", m.input.SendingMode())
	}
	typeText(m, "4142")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	records := m.session.Records()
	last := records[len(records)-1]
	if string(last.Data) != "AB" {
		t.Errorf("sent %q, want AB", last.Data)
	}

	typeText(m, "4")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	records = m.session.Records()
	if last := records[len(records)-1]; last.Dir != components.DirNote {
		t.Errorf("odd hex input recorded as %+v, want a note", last)
	}
}

func TestConnectNormalKeys(t *testing.T) {
	m, _ := newTestConnect(t, "uno")
	m.session.Note("one")

	m.Update(runes("t"))
	if !m.tableView {
		t.Error("t did not switch to the table view")
	}
	m.Update(runes("h"))
	if m.formatter.Mode().ShowHex {
		t.Error("h did not toggle hex off")
	}
	m.Update(runes("c"))
	if len(m.session.Records()) != 0 {
		t.Error("c did not clear the records")
	}
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

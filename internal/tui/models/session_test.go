package models

import (
	"errors"
	"testing"
	"time"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/sim"
	"github.com/allbin/go-board/internal/tui/components"
)

func newSession(t *testing.T, name string) (*Session, *sim.Driver) {
	t.Helper()
	profile, err := board.LookupProfile(name)
	if err != nil {
		t.Fatalf("LookupProfile(%q) error = %v", name, err)
	}
	b, drv := sim.NewBoard(profile)
	console, ok := b.Console()
	if !ok {
		t.Fatalf("%s has no console", name)
	}
	s := NewSession(b, console)
	s.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }
	return s, drv
}

func TestExecBegin(t *testing.T) {
	tests := []struct {
		name    string
		board   string
		line    string
		baud    uint32
		format  board.SerialConfig
		wantErr error
	}{
		{"defaults", "uno", "begin", 9600, board.Serial8N1, nil},
		{"baud only", "uno", "begin 115200", 115200, board.Serial8N1, nil},
		{"usart seven bits", "uno", "begin 9600 7E1", 9600, board.Serial7E1, nil},
		{"uart even parity", "due", "open 19200 8E1", 19200, board.Serial8E1, nil},
		{"uart rejects 7E1", "due", "begin 9600 7E1", 0, 0, board.ErrUnsupportedSerialMode},
		{"bad baud", "uno", "begin fast", 0, 0, board.ErrInvalidBaudRate},
		{"zero baud", "uno", "begin 0", 0, 0, board.ErrInvalidBaudRate},
		{"bad format", "uno", "begin 9600 9X1", 0, 0, board.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t, tt.board)
			_, err := s.Exec(tt.line)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Exec(%q) error = %v, want %v", tt.line, err, tt.wantErr)
				}
				if s.Port().IsOpen() {
					t.Error("port opened after a failed begin")
				}
				return
			}
			if err != nil {
				t.Fatalf("Exec(%q) error = %v", tt.line, err)
			}
			info := s.Info()
			if !info.Open || info.Baud != tt.baud || info.Format != tt.format {
				t.Errorf("Info() = %+v, want open at %d %v", info, tt.baud, tt.format)
			}
		})
	}
}

func TestExecCommands(t *testing.T) {
	s, drv := newSession(t, "leonardo")

	if _, err := s.Exec("begin 9600"); err != nil {
		t.Fatalf("begin error = %v", err)
	}
	if _, err := s.Exec("timeout 250ms"); err != nil {
		t.Fatalf("timeout error = %v", err)
	}
	if got := s.Port().Timeout(); got != 250*time.Millisecond {
		t.Errorf("Timeout() = %v, want 250ms", got)
	}
	if u, _ := drv.UART("Serial"); u.TimeoutMs() != 250 {
		t.Errorf("peripheral timeout = %d, want 250", u.TimeoutMs())
	}
	if _, err := s.Exec("timeout -1s"); !errors.Is(err, board.ErrInvalidConfig) {
		t.Errorf("negative timeout error = %v, want ErrInvalidConfig", err)
	}

	if _, err := s.Exec("role linux-bridge"); err != nil {
		t.Fatalf("role error = %v", err)
	}
	if got := s.Port().Name(); got != "Serial1" {
		t.Errorf("after role linux-bridge port = %s, want Serial1", got)
	}
	if _, err := s.Exec("port Serial"); err != nil {
		t.Fatalf("port error = %v", err)
	}
	if got := s.Port().Name(); got != "Serial" {
		t.Errorf("after port Serial port = %s, want Serial", got)
	}

	msg, err := s.Exec("ports")
	if err != nil || msg != "Serial(usb-cdc) Serial1(usart)" {
		t.Errorf("ports = %q, %v", msg, err)
	}

	if _, err := s.Exec("end"); err != nil {
		t.Fatalf("end error = %v", err)
	}
	if s.Port().IsOpen() {
		t.Error("port still open after end")
	}
}

func TestExecErrors(t *testing.T) {
	s, _ := newSession(t, "uno")

	tests := []struct {
		line    string
		wantErr error
	}{
		{"reboot", ErrUnknownCommand},
		{"role usb-virtual", board.ErrPortNotFound},
		{"role sideways", board.ErrInvalidProfile},
		{"port Serial5", board.ErrPortNotFound},
	}
	for _, tt := range tests {
		if _, err := s.Exec(tt.line); !errors.Is(err, tt.wantErr) {
			t.Errorf("Exec(%q) error = %v, want %v", tt.line, err, tt.wantErr)
		}
	}

	if _, err := s.Exec(`begin "9600`); err == nil {
		t.Error("expected error for unterminated quote")
	}
	if msg, err := s.Exec("   "); msg != "" || err != nil {
		t.Errorf("blank line = %q, %v", msg, err)
	}
}

func TestSendAndPoll(t *testing.T) {
	s, drv := newSession(t, "uno")
	u, _ := drv.UART("Serial")
	u.SetLoopback(true)

	r := s.Send([]byte("x"))
	if r.Status != components.TxFailed || r.Note != "port closed" {
		t.Errorf("send on closed port = %+v", r)
	}

	if _, err := s.Exec("begin 9600"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Poll(); ok {
		t.Error("Poll() on empty port returned a record")
	}

	r = s.Send([]byte("ping"))
	if r.Status != components.TxWritten {
		t.Errorf("Send status = %v, want WRITTEN", r.Status)
	}
	rx, ok := s.Poll()
	if !ok || string(rx.Data) != "ping" || rx.Dir != components.DirRX {
		t.Errorf("Poll() = %+v, %v, want RX ping", rx, ok)
	}

	s.Note("hello %d", 1)
	if got := len(s.Records()); got != 4 {
		t.Errorf("len(Records()) = %d, want 4", got)
	}
	s.Clear()
	if got := len(s.Records()); got != 0 {
		t.Errorf("len(Records()) after Clear = %d, want 0", got)
	}
}

func TestSendPartial(t *testing.T) {
	s, drv := newSession(t, "uno")
	u, _ := drv.UART("Serial")
	u.SetStalled(true)
	if _, err := s.Exec("begin"); err != nil {
		t.Fatal(err)
	}

	// The uno transmit buffer holds 64 bytes.
	r := s.Send(make([]byte, 80))
	if r.Status != components.TxPartial || r.Note != "64 of 80 bytes" {
		t.Errorf("Send = %v %q, want PARTIAL 64 of 80", r.Status, r.Note)
	}
	r = s.Send([]byte{1})
	if r.Status != components.TxFailed {
		t.Errorf("Send on full buffer = %v, want ERROR", r.Status)
	}
}

func TestInputModeString(t *testing.T) {
	tests := map[InputMode]string{
		InputModeNormal:  "NORMAL",
		InputModeInsert:  "INSERT",
		InputModeCommand: "COMMAND",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("InputMode(%d).String() = %q, want %q", m, got, want)
		}
	}
}

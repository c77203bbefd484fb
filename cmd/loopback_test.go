package cmd

import (
	"errors"
	"io"
	"testing"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/sim"
)

func TestLoopback(t *testing.T) {
	profile, err := board.LookupProfile("due")
	if err != nil {
		t.Fatal(err)
	}
	b, drv := sim.NewBoard(profile)
	for _, p := range b.Ports() {
		u, _ := drv.UART(p.Name())
		u.SetLoopback(true)
	}
	console, _ := b.Console()
	usb, _ := b.USBVirtual()

	tests := []struct {
		name    string
		port    *board.SerialPort
		format  board.SerialConfig
		wantErr error
	}{
		{"uart 8N1", console, board.Serial8N1, nil},
		{"uart 8O1", console, board.Serial8O1, nil},
		{"uart rejects 7E1", console, board.Serial7E1, board.ErrUnsupportedSerialMode},
		{"uart rejects 8N2", console, board.Serial8N2, board.ErrUnsupportedSerialMode},
		{"usb 5O2", usb, board.Serial5O2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := loopback(tt.port, 115200, tt.format, []byte("ping"))
			if tt.wantErr == nil && r.err != nil {
				t.Fatalf("loopback() error = %v", r.err)
			}
			if tt.wantErr != nil && !errors.Is(r.err, tt.wantErr) {
				t.Fatalf("loopback() error = %v, want %v", r.err, tt.wantErr)
			}
			if tt.port.IsOpen() {
				t.Error("port left open after loopback")
			}
		})
	}
}

func TestLoopbackMissingEcho(t *testing.T) {
	profile, _ := board.LookupProfile("uno")
	b, _ := sim.NewBoard(profile)
	console, _ := b.Console()

	r := loopback(console, 9600, board.Serial8N1, []byte("x"))
	if !errors.Is(r.err, io.ErrUnexpectedEOF) {
		t.Errorf("loopback() without wiring error = %v, want io.ErrUnexpectedEOF", r.err)
	}
}

func TestBoardPins(t *testing.T) {
	profile, _ := board.LookupProfile("due")
	pins := boardPins(profile)
	if got := len(pins); got != 68 {
		t.Errorf("len(boardPins(due)) = %d, want 68", got)
	}

	label, ok := pinLabel(profile.Pins(), 54)
	if !ok || label != "A0" {
		t.Errorf("pinLabel(54) = %q, %v, want A0", label, ok)
	}
	label, ok = pinLabel(profile.Pins(), 67)
	if !ok || label != "DAC1" {
		t.Errorf("pinLabel(67) = %q, %v, want DAC1", label, ok)
	}

	zero, _ := board.LookupProfile("zero")
	if label, _ := pinLabel(zero.Pins(), 14); label != "A0/DAC0" {
		t.Errorf("zero pinLabel(14) = %q, want A0/DAC0", label)
	}
}

func TestAcceptedFormats(t *testing.T) {
	tests := map[board.Variant]int{
		board.VariantUART:   3,
		board.VariantUSART:  24,
		board.VariantUSBCDC: 24,
	}
	for v, want := range tests {
		if got := acceptedFormats(v); got != want {
			t.Errorf("acceptedFormats(%v) = %d, want %d", v, got, want)
		}
	}
}

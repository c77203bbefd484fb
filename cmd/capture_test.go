package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/sim"
)

func TestCapture(t *testing.T) {
	profile, _ := board.LookupProfile("uno")
	b, drv := sim.NewBoard(profile)
	console, _ := b.Console()
	if err := console.Open(board.WithTimeout(10 * time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	u, _ := drv.UART(console.Name())
	u.Inject([]byte("temp=21.5\n"))

	var out, echo bytes.Buffer
	n, err := capture(context.Background(), console, &out, &echo, 4, 10)
	if err != nil {
		t.Fatalf("capture() error = %v", err)
	}
	if n != 10 {
		t.Errorf("capture() = %d, want 10", n)
	}
	if out.String() != "temp=21.5\n" {
		t.Errorf("output = %q, want %q", out.String(), "temp=21.5\n")
	}
	if echo.String() != out.String() {
		t.Errorf("console = %q, want %q", echo.String(), out.String())
	}
}

func TestCaptureStopsOnCancel(t *testing.T) {
	profile, _ := board.LookupProfile("uno")
	b, _ := sim.NewBoard(profile)
	console, _ := b.Console()
	if err := console.Open(board.WithTimeout(time.Millisecond)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	n, err := capture(ctx, console, &out, nil, 64, 0)
	if err != nil || n != 0 {
		t.Errorf("capture() = %d, %v, want 0, nil", n, err)
	}
}

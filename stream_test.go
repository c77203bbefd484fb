package board_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	board "github.com/allbin/go-board"
)

func TestWriteAll(t *testing.T) {
	b, drv := newBoard(t, "uno")
	p, u := port(t, b, drv, "Serial")
	p.Begin(9600, board.Serial8N1)

	data := bytes.Repeat([]byte("0123456789"), 50)
	if err := p.WriteAll(data); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if got := u.Transmitted(); !bytes.Equal(got, data) {
		t.Errorf("Transmitted() = %d bytes, want %d", len(got), len(data))
	}
}

func TestWriteAllZero(t *testing.T) {
	b, drv := newBoard(t, "uno")
	p, u := port(t, b, drv, "Serial")
	p.Begin(9600, board.Serial8N1)
	u.SetStalled(true)

	err := p.WriteAll(make([]byte, 100))
	if !errors.Is(err, board.ErrWriteZero) {
		t.Errorf("WriteAll() error = %v, want %v", err, board.ErrWriteZero)
	}
}

func TestWriteShort(t *testing.T) {
	b, drv := newBoard(t, "uno")
	p, u := port(t, b, drv, "Serial")
	p.Begin(9600, board.Serial8N1)
	u.SetStalled(true)

	n, err := p.Write(make([]byte, 100))
	if n != 64 || !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("Write() = %d, %v, want 64, %v", n, err, io.ErrShortWrite)
	}
}

func TestReadFull(t *testing.T) {
	b, drv := newBoard(t, "uno")
	p, u := port(t, b, drv, "Serial")
	p.Begin(9600, board.Serial8N1)

	u.Inject([]byte("hello"))
	buf := make([]byte, 5)
	if err := p.ReadFull(buf); err != nil || string(buf) != "hello" {
		t.Errorf("ReadFull() = %q, %v, want \"hello\", nil", buf, err)
	}

	u.Inject([]byte("hi"))
	err := p.ReadFull(buf)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadFull() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestReadTimeout(t *testing.T) {
	b, drv := newBoard(t, "uno")
	p, _ := port(t, b, drv, "Serial")
	p.Begin(9600, board.Serial8N1)

	n, err := p.Read(make([]byte, 4))
	if n != 0 || !errors.Is(err, board.ErrReadTimeout) {
		t.Errorf("Read() = %d, %v, want 0, %v", n, err, board.ErrReadTimeout)
	}
	if n, err := p.Read(nil); n != 0 || err != nil {
		t.Errorf("Read(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestReadImmediately(t *testing.T) {
	b, drv := newBoard(t, "uno")
	p, u := port(t, b, drv, "Serial")
	p.Begin(9600, board.Serial8N1)

	before := b.Millis()
	buf := make([]byte, 8)
	if n := p.ReadImmediately(buf); n != 0 {
		t.Errorf("ReadImmediately() on empty port = %d, want 0", n)
	}
	u.Inject([]byte("abcdefghij"))
	if n := p.ReadImmediately(buf); n != 8 || string(buf) != "abcdefgh" {
		t.Errorf("ReadImmediately() = %d %q, want 8 \"abcdefgh\"", n, buf)
	}
	if n := p.ReadImmediately(buf); n != 2 || string(buf[:2]) != "ij" {
		t.Errorf("ReadImmediately() = %d %q, want 2 \"ij\"", n, buf[:n])
	}
	if b.Millis() != before {
		t.Errorf("ReadImmediately waited %dms", b.Millis()-before)
	}
}

func TestPrintf(t *testing.T) {
	b, drv := newBoard(t, "leonardo")
	p, ok := b.Monitor()
	if !ok {
		t.Fatalf("Monitor() ok = false")
	}
	u, _ := drv.UART(p.Name())
	p.Begin(9600, board.Serial8N1)

	if err := p.Printf("a0=%d", 512); err != nil {
		t.Fatalf("Printf() error = %v", err)
	}
	if err := p.Println(" v", 1); err != nil {
		t.Fatalf("Println() error = %v", err)
	}
	if got, want := string(u.Transmitted()), "a0=512 v 1\r\n"; got != want {
		t.Errorf("Transmitted() = %q, want %q", got, want)
	}
}

func TestStdlibInterop(t *testing.T) {
	b, drv := newBoard(t, "zero")
	p, u := port(t, b, drv, "Serial")
	p.Begin(115200, board.Serial8N1)
	u.SetLoopback(true)

	if _, err := io.Copy(p, strings.NewReader("line one\nline two\n")); err != nil {
		t.Fatalf("io.Copy() error = %v", err)
	}
	if got := p.Buffered(); got != 18 {
		t.Errorf("Buffered() = %d, want 18", got)
	}

	sc := bufio.NewScanner(p)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) != 2 || lines[1] != "line two" {
		t.Errorf("scanned %q, want two lines", lines)
	}
	if !errors.Is(sc.Err(), board.ErrReadTimeout) {
		t.Errorf("scanner error = %v, want %v", sc.Err(), board.ErrReadTimeout)
	}
}

package hostserial

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	board "github.com/allbin/go-board"
)

func TestBaudConstant(t *testing.T) {
	tests := []struct {
		rate    uint32
		want    uint32
		wantErr bool
	}{
		{9600, unix.B9600, false},
		{115200, unix.B115200, false},
		{1200, unix.B1200, false},
		{4000000, unix.B4000000, false},
		{0, 0, true},
		{12345, 0, true},
	}
	for _, tt := range tests {
		got, err := baudConstant(tt.rate)
		if (err != nil) != tt.wantErr {
			t.Errorf("baudConstant(%d) error = %v, wantErr %v", tt.rate, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, board.ErrInvalidBaudRate) {
			t.Errorf("baudConstant(%d) error = %v, want %v", tt.rate, err, board.ErrInvalidBaudRate)
		}
		if got != tt.want {
			t.Errorf("baudConstant(%d) = %#x, want %#x", tt.rate, got, tt.want)
		}
	}
}

func TestFrameFlags(t *testing.T) {
	tests := []struct {
		config board.SerialConfig
		want   uint32
	}{
		{board.Serial8N1, unix.CS8},
		{board.Serial7E1, unix.CS7 | unix.PARENB},
		{board.Serial5O2, unix.CS5 | unix.PARENB | unix.PARODD | unix.CSTOPB},
		{board.Serial6N2, unix.CS6 | unix.CSTOPB},
		{board.Serial8O1, unix.CS8 | unix.PARENB | unix.PARODD},
	}
	for _, tt := range tests {
		if got := frameFlags(tt.config.Format()); got != tt.want {
			t.Errorf("frameFlags(%v) = %#o, want %#o", tt.config, got, tt.want)
		}
	}
}

func native(t *testing.T, c board.SerialConfig) board.NativeConfig {
	t.Helper()
	n, ok := board.FamilyAVR.NativeSerialConfig(c)
	if !ok {
		t.Fatalf("no native encoding for %v", c)
	}
	return n
}

func TestBeginMissingDevice(t *testing.T) {
	tty := NewTTY("/nonexistent/ttyUSB9", board.FamilyAVR, 64, nil)
	tty.Begin(9600, native(t, board.Serial8N1))

	if !errors.Is(tty.Err(), ErrDeviceNotFound) {
		t.Errorf("Err() = %v, want %v", tty.Err(), ErrDeviceNotFound)
	}
	if tty.Ready() {
		t.Error("Ready() = true for a missing device")
	}
	if n := tty.ReadBytes(make([]byte, 4)); n != 0 {
		t.Errorf("ReadBytes() = %d, want 0", n)
	}
	if n := tty.WriteBytes([]byte("x")); n != 0 {
		t.Errorf("WriteBytes() = %d, want 0", n)
	}
	if tty.Available() != 0 || tty.AvailableForWrite() != 0 {
		t.Error("closed device reports buffered data")
	}
	if err := tty.SetDTR(true); !errors.Is(err, ErrPortClosed) {
		t.Errorf("SetDTR() error = %v, want %v", err, ErrPortClosed)
	}
	tty.End()
}

func TestBeginInvalidNative(t *testing.T) {
	tty := NewTTY("/dev/null", board.FamilyAVR, 64, nil)
	tty.Begin(9600, board.NativeConfig(0xFFFF))
	if !errors.Is(tty.Err(), board.ErrInvalidConfig) {
		t.Errorf("Err() = %v, want %v", tty.Err(), board.ErrInvalidConfig)
	}
}

// openPTY returns the master side of a new pseudo-terminal and the path of
// its slave.
func openPTY(t *testing.T) (int, string) {
	t.Helper()
	master, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		t.Skipf("no pseudo-terminals: %v", err)
	}
	t.Cleanup(func() { unix.Close(master) })

	if err := unix.IoctlSetPointerInt(master, unix.TIOCSPTLCK, 0); err != nil {
		t.Skipf("cannot unlock pty: %v", err)
	}
	n, err := unix.IoctlGetUint32(master, unix.TIOCGPTN)
	if err != nil {
		t.Skipf("cannot get pty number: %v", err)
	}
	return master, fmt.Sprintf("/dev/pts/%d", n)
}

func TestTTYOverPTY(t *testing.T) {
	master, slave := openPTY(t)

	tty := NewTTY(slave, board.FamilyAVR, 4096, nil)
	tty.Begin(115200, native(t, board.Serial8N1))
	if err := tty.Err(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	defer tty.End()
	tty.SetTimeout(1000)

	if _, err := unix.Write(master, []byte("hello")); err != nil {
		t.Fatalf("master write: %v", err)
	}
	buf := make([]byte, 5)
	if n := tty.ReadBytes(buf); n != 5 || string(buf) != "hello" {
		t.Errorf("ReadBytes() = %d %q, want 5 %q", n, buf[:n], "hello")
	}

	if _, err := unix.Write(master, []byte("xyz")); err != nil {
		t.Fatalf("master write: %v", err)
	}
	if n := tty.ReadBytes(buf[:1]); n != 1 || buf[0] != 'x' {
		t.Fatalf("ReadBytes(1) = %d %q", n, buf[:n])
	}
	if b, ok := tty.PeekByte(); !ok || b != 'y' {
		t.Errorf("PeekByte() = %q, %v, want 'y'", b, ok)
	}
	if n := tty.Available(); n != 2 {
		t.Errorf("Available() = %d, want 2", n)
	}
	if b, ok := tty.Receive(); !ok || b != 'y' {
		t.Errorf("Receive() = %q, %v, want 'y'", b, ok)
	}
	if b, ok := tty.Receive(); !ok || b != 'z' {
		t.Errorf("Receive() = %q, %v, want 'z'", b, ok)
	}

	if n := tty.WriteBytes([]byte("ping")); n != 4 {
		t.Errorf("WriteBytes() = %d, want 4", n)
	}
	tty.Flush()
	out := make([]byte, 16)
	n, err := unix.Read(master, out)
	if err != nil || string(out[:n]) != "ping" {
		t.Errorf("master read = %q, %v, want %q", out[:n], err, "ping")
	}
	if tty.AvailableForWrite() <= 0 {
		t.Errorf("AvailableForWrite() = %d, want > 0", tty.AvailableForWrite())
	}
}

func TestTTYReadTimeout(t *testing.T) {
	_, slave := openPTY(t)

	tty := NewTTY(slave, board.FamilyAVR, 4096, nil)
	tty.Begin(9600, native(t, board.Serial7E2))
	if err := tty.Err(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	defer tty.End()

	tty.SetTimeout(50)
	start := time.Now()
	if n := tty.ReadBytes(make([]byte, 8)); n != 0 {
		t.Errorf("ReadBytes() = %d, want 0", n)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("ReadBytes() returned after %v, want about 50ms", elapsed)
	}

	tty.SetTimeout(0)
	if n := tty.ReadBytes(make([]byte, 8)); n != 0 {
		t.Errorf("ReadBytes() with zero timeout = %d, want 0", n)
	}
}

func TestBeginInvalidBaud(t *testing.T) {
	_, slave := openPTY(t)

	tty := NewTTY(slave, board.FamilyAVR, 4096, nil)
	tty.Begin(12345, native(t, board.Serial8N1))
	if !errors.Is(tty.Err(), board.ErrInvalidBaudRate) {
		t.Errorf("Err() = %v, want %v", tty.Err(), board.ErrInvalidBaudRate)
	}
	if tty.Ready() {
		t.Error("Ready() = true after a failed Begin")
	}
}

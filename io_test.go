package board_test

import (
	"testing"
	"time"

	board "github.com/allbin/go-board"
)

func TestSetPinMode(t *testing.T) {
	tests := []struct {
		board string
		mode  board.PinMode
		code  uint8
		ok    bool
	}{
		{"uno", board.ModeInput, 0, true},
		{"uno", board.ModeOutput, 1, true},
		{"uno", board.ModeInputPullup, 2, true},
		{"uno", board.ModeInputPulldown, 0, false},
		{"due", board.ModeInputPulldown, 0, false},
		{"zero", board.ModeInputPulldown, 3, true},
	}
	for _, tt := range tests {
		b, drv := newBoard(t, tt.board)
		b.SetPinMode(7, tt.mode)

		code, set := drv.PinModeOf(7)
		if set != tt.ok || code != tt.code {
			t.Errorf("%s: SetPinMode(%v) native = %d, %v, want %d, %v", tt.board, tt.mode, code, set, tt.code, tt.ok)
		}
		if !tt.ok && len(drv.Calls()) != 0 {
			t.Errorf("%s: SetPinMode(%v) reached the driver: %v", tt.board, tt.mode, drv.Calls())
		}
		if tt.ok {
			if got, ok := b.PinMode(7); !ok || got != tt.mode {
				t.Errorf("%s: PinMode(7) = %v, %v, want %v", tt.board, got, ok, tt.mode)
			}
		}
	}
}

func TestDigitalWriteRead(t *testing.T) {
	b, drv := newBoard(t, "uno")
	b.DigitalWrite(13, board.High)
	if drv.Level(13) != 1 {
		t.Errorf("Level(13) = %d, want 1", drv.Level(13))
	}
	if got := b.DigitalRead(13); got != board.High {
		t.Errorf("DigitalRead(13) = %v, want %v", got, board.High)
	}

	drv.SetLevel(2, 0)
	if got := b.DigitalRead(2); got != board.Low {
		t.Errorf("DigitalRead(2) = %v, want %v", got, board.Low)
	}
}

func TestAnalogReference(t *testing.T) {
	tests := []struct {
		board string
		ref   board.AnalogReference
		want  int // -1 means ignored
	}{
		{"uno", board.RefDefault, 1},
		{"uno", board.RefExternal, 0},
		{"uno", board.RefInternal, 3},
		{"uno", board.RefInternal1v1, -1},
		{"mega2560", board.RefInternal, 2},
		{"mega2560", board.RefInternal1v1, 2},
		{"mega2560", board.RefInternal2v56, 3},
		{"due", board.RefDefault, 0},
		{"due", board.RefExternal, -1},
		{"zero", board.RefInternal1v65, 4},
		{"zero", board.RefInternal2v56, -1},
	}
	for _, tt := range tests {
		b, drv := newBoard(t, tt.board)
		b.SetAnalogReference(tt.ref)
		if got := drv.Reference(); got != tt.want {
			t.Errorf("%s: SetAnalogReference(%v) native = %d, want %d", tt.board, tt.ref, got, tt.want)
		}
	}
}

func TestAnalogResolution(t *testing.T) {
	b, _ := newBoard(t, "zero")
	if b.AnalogReadResolution() != 10 || b.AnalogWriteResolution() != 8 {
		t.Fatalf("default resolution = %d/%d, want 10/8", b.AnalogReadResolution(), b.AnalogWriteResolution())
	}
	if got := b.MaxAnalogWrite(); got != 255 {
		t.Errorf("MaxAnalogWrite() = %d, want 255", got)
	}

	b.SetAnalogReadResolution(12)
	b.SetAnalogWriteResolution(10)
	if got := b.MaxAnalogRead(); got != 4095 {
		t.Errorf("MaxAnalogRead() = %d, want 4095", got)
	}
	if got := b.MaxAnalogWrite(); got != 1023 {
		t.Errorf("MaxAnalogWrite() = %d, want 1023", got)
	}
}

func TestToneIgnoredOnSAM(t *testing.T) {
	b, drv := newBoard(t, "due")
	b.Tone(8, 440, 100*time.Millisecond)
	if _, ok := drv.ToneOn(8); ok {
		t.Errorf("tone playing on due")
	}
	b.NoTone(8)
	if n := len(drv.Calls()); n != 0 {
		t.Errorf("driver saw %d calls, want 0", n)
	}

	b, drv = newBoard(t, "uno")
	b.Tone(8, 440, 250*time.Millisecond)
	tone, ok := drv.ToneOn(8)
	if !ok || tone.Frequency != 440 || tone.DurationMs != 250 {
		t.Errorf("ToneOn(8) = %+v, %v, want 440Hz for 250ms", tone, ok)
	}
	b.NoTone(8)
	if _, ok := drv.ToneOn(8); ok {
		t.Errorf("tone still playing after NoTone")
	}
}

func TestShift(t *testing.T) {
	b, drv := newBoard(t, "uno")
	b.ShiftOut(11, 13, board.LSBFirst, 0xA5)
	b.ShiftOut(11, 13, board.MSBFirst, 0x5A)

	shifts := drv.Shifts()
	if len(shifts) != 2 {
		t.Fatalf("len(Shifts()) = %d, want 2", len(shifts))
	}
	if shifts[0].Order != 0 || shifts[0].Value != 0xA5 {
		t.Errorf("Shifts()[0] = %+v, want LSB-first 0xA5", shifts[0])
	}
	if shifts[1].Order != 1 || shifts[1].Value != 0x5A {
		t.Errorf("Shifts()[1] = %+v, want MSB-first 0x5A", shifts[1])
	}

	drv.QueueShiftIn(0x01, 0x01)
	if got := b.ShiftIn(12, 13, board.MSBFirst); got != 0x01 {
		t.Errorf("ShiftIn(MSBFirst) = %#x, want 0x01", got)
	}
	if got := b.ShiftIn(12, 13, board.LSBFirst); got != 0x80 {
		t.Errorf("ShiftIn(LSBFirst) = %#x, want 0x80", got)
	}
}

func TestPulseIn(t *testing.T) {
	b, drv := newBoard(t, "uno")
	drv.SetPulse(7, 1500)

	if got := b.PulseIn(7, board.High, time.Second); got != 1500*time.Microsecond {
		t.Errorf("PulseIn() = %v, want 1.5ms", got)
	}
	if got := b.PulseIn(7, board.High, time.Millisecond); got != 0 {
		t.Errorf("PulseIn() past timeout = %v, want 0", got)
	}
	if got := b.PulseIn(6, board.Low, time.Millisecond); got != 0 {
		t.Errorf("PulseIn() without pulse = %v, want 0", got)
	}
}

func TestClock(t *testing.T) {
	b, _ := newBoard(t, "uno")
	start := b.Millis()
	b.Delay(1500 * time.Microsecond)
	if got := b.Millis() - start; got != 1 {
		t.Errorf("Delay(1.5ms) advanced %dms, want 1", got)
	}
	us := b.Micros()
	b.DelayMicroseconds(250)
	if got := b.Micros() - us; got != 250 {
		t.Errorf("DelayMicroseconds(250) advanced %dus, want 250", got)
	}
	b.Delay(-time.Second)
}

func TestRandom(t *testing.T) {
	b, _ := newBoard(t, "uno")
	b.RandomSeed(42)
	for i := 0; i < 200; i++ {
		if got := b.Random(-5, 5); got < -5 || got >= 5 {
			t.Fatalf("Random(-5, 5) = %d, out of range", got)
		}
	}
	if got := b.Random(3, 3); got != 3 {
		t.Errorf("Random(3, 3) = %d, want 3", got)
	}
	if got := b.Random(9, 1); got != 9 {
		t.Errorf("Random(9, 1) = %d, want 9", got)
	}

	b.RandomSeed(7)
	first := b.Random(0, 1000)
	b.RandomSeed(7)
	if got := b.Random(0, 1000); got != first {
		t.Errorf("Random after reseed = %d, want %d", got, first)
	}
}

func TestDigitalPinHandle(t *testing.T) {
	b, drv := newBoard(t, "uno")
	if _, ok := b.DigitalPin(20); ok {
		t.Errorf("DigitalPin(20) ok = true on a 20-pin board")
	}
	if _, ok := b.DigitalPin(-1); ok {
		t.Errorf("DigitalPin(-1) ok = true")
	}

	p, ok := b.DigitalPin(13)
	if !ok {
		t.Fatal("DigitalPin(13) ok = false")
	}
	p.SetMode(board.ModeOutput)
	if m, ok := p.Mode(); !ok || m != board.ModeOutput {
		t.Errorf("Mode() = %v, %v, want %v", m, ok, board.ModeOutput)
	}
	p.Toggle()
	if drv.Level(13) != 1 {
		t.Errorf("Toggle() from low left level %d", drv.Level(13))
	}
	p.Toggle()
	if drv.Level(13) != 0 {
		t.Errorf("Toggle() from high left level %d", drv.Level(13))
	}
	if _, ok := p.ToPWM(); ok {
		t.Errorf("pin 13 ToPWM() ok = true on uno")
	}
	if _, ok := p.InterruptLine(); ok {
		t.Errorf("pin 13 InterruptLine() ok = true on uno")
	}

	p3, _ := b.DigitalPin(3)
	if line, ok := p3.InterruptLine(); !ok || line != 1 {
		t.Errorf("pin 3 InterruptLine() = %d, %v, want 1", line, ok)
	}
	pwm, ok := p3.ToPWM()
	if !ok || pwm.Kind() != board.OutputPWM {
		t.Fatalf("pin 3 ToPWM() = %v, %v", pwm.Kind(), ok)
	}
	pwm.Write(1000)
	if got := drv.AnalogOutput(3); got != 255 {
		t.Errorf("PWM Write(1000) = %d, want clamp to 255", got)
	}
}

func TestAnalogPinHandles(t *testing.T) {
	b, drv := newBoard(t, "due")

	a0, ok := b.AnalogInputPin(0)
	if !ok || a0.Pin() != 54 {
		t.Fatalf("AnalogInputPin(0) = %d, %v, want 54", a0.Pin(), ok)
	}
	drv.SetAnalog(54, 777)
	if got := a0.Read(); got != 777 {
		t.Errorf("A0.Read() = %d, want 777", got)
	}
	if _, ok := b.AnalogInputPin(12); ok {
		t.Errorf("AnalogInputPin(12) ok = true on due")
	}

	dac1, ok := b.AnalogOutputPin(1)
	if !ok || dac1.Pin() != 67 || dac1.Kind() != board.OutputDAC {
		t.Fatalf("AnalogOutputPin(1) = %d %v, %v, want DAC on 67", dac1.Pin(), dac1.Kind(), ok)
	}
	b.SetAnalogWriteResolution(12)
	dac1.Write(4095)
	if got := drv.AnalogOutput(67); got != 4095 {
		t.Errorf("DAC1 Write(4095) = %d, want 4095", got)
	}
	if _, ok := b.AnalogOutputPin(2); ok {
		t.Errorf("AnalogOutputPin(2) ok = true on due")
	}
}

package board

import "time"

// Millis returns milliseconds since the board started. It wraps after
// about 49 days.
func (b *Board) Millis() uint32 { return b.drv.Millis() }

// Micros returns microseconds since the board started. It wraps after
// about 71 minutes.
func (b *Board) Micros() uint32 { return b.drv.Micros() }

// Delay busy-waits for d, rounded down to whole milliseconds.
func (b *Board) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	b.drv.Delay(durationUnits(d, time.Millisecond))
}

// DelayMicroseconds busy-waits for us microseconds.
func (b *Board) DelayMicroseconds(us uint32) {
	b.drv.DelayMicroseconds(us)
}

// Tone generates a square wave of frequency hz on pin. A zero duration
// plays until NoTone. Boards without tone support ignore the call.
func (b *Board) Tone(pin Pin, hz uint32, duration time.Duration) {
	if !b.Family().SupportsTone() {
		b.log.Debug("tone not supported, ignoring", "pin", pin)
		return
	}
	b.drv.Tone(pin, hz, durationUnits(duration, time.Millisecond))
}

// NoTone stops a tone started on pin.
func (b *Board) NoTone(pin Pin) {
	if !b.Family().SupportsTone() {
		return
	}
	b.drv.NoTone(pin)
}

// ShiftOut clocks value out on data, one bit per clock pulse.
func (b *Board) ShiftOut(data, clock Pin, order BitOrder, value byte) {
	b.drv.ShiftOut(data, clock, nativeOrder(order), value)
}

// ShiftIn clocks one byte in from data.
func (b *Board) ShiftIn(data, clock Pin, order BitOrder) byte {
	return b.drv.ShiftIn(data, clock, nativeOrder(order))
}

// PulseIn measures how long pin stays at level, waiting at most timeout
// for the pulse to start. It returns 0 on timeout.
func (b *Board) PulseIn(pin Pin, level PinLevel, timeout time.Duration) time.Duration {
	native := nativeLow
	if level == High {
		native = nativeHigh
	}
	us := b.drv.PulseIn(pin, native, durationUnits(timeout, time.Microsecond))
	return time.Duration(us) * time.Microsecond
}

// RandomSeed seeds the pseudo-random generator.
func (b *Board) RandomSeed(seed uint32) { b.drv.RandomSeed(seed) }

// Random returns a pseudo-random number in [lo, hi). It returns lo when
// the range is empty.
func (b *Board) Random(lo, hi int32) int32 {
	if hi <= lo {
		return lo
	}
	return b.drv.Random(lo, hi)
}

func nativeOrder(o BitOrder) uint8 {
	if o == LSBFirst {
		return nativeLSBFirst
	}
	return nativeMSBFirst
}

func durationUnits(d, unit time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	n := d / unit
	if n > time.Duration(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(n)
}

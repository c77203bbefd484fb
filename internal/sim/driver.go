// Package sim is a deterministic, in-memory implementation of the board
// driver boundary. It backs the package tests and the CLI's simulated
// ports.
package sim

import (
	"math/rand/v2"
	"sync"

	board "github.com/allbin/go-board"
)

// Call records one driver invocation.
type Call struct {
	Op   string
	Pin  board.Pin
	Args []uint32
}

// Tone is an active tone on a pin.
type Tone struct {
	Frequency  uint32
	DurationMs uint32
}

// Shift records one ShiftOut.
type Shift struct {
	Data, Clock board.Pin
	Order       uint8
	Value       byte
}

type isrBinding struct {
	fn   func()
	mode uint8
}

// Driver simulates the pins, timers and peripherals of one board.
type Driver struct {
	mu sync.Mutex

	calls     []Call
	modes     map[board.Pin]uint8
	levels    map[board.Pin]uint8
	wires     map[board.Pin]board.Pin
	analogIn  map[board.Pin]uint16
	analogOut map[board.Pin]uint16
	reference int
	readRes   uint8
	writeRes  uint8
	tones     map[board.Pin]Tone
	shifts    []Shift
	shiftIn   []byte
	pulses    map[board.Pin]uint32

	micros uint64
	rng    *rand.Rand

	isrs    map[uint8]isrBinding
	masked  bool
	pending []uint8

	ports map[string]*UART
}

var (
	_ board.Driver     = (*Driver)(nil)
	_ board.ModeReader = (*Driver)(nil)
)

// NewDriver returns a driver with a peripheral for every port in profile.
func NewDriver(profile board.Profile) *Driver {
	d := &Driver{
		modes:     make(map[board.Pin]uint8),
		levels:    make(map[board.Pin]uint8),
		wires:     make(map[board.Pin]board.Pin),
		analogIn:  make(map[board.Pin]uint16),
		analogOut: make(map[board.Pin]uint16),
		reference: -1,
		readRes:   10,
		writeRes:  8,
		tones:     make(map[board.Pin]Tone),
		pulses:    make(map[board.Pin]uint32),
		rng:       rand.New(rand.NewPCG(0, 0)),
		isrs:      make(map[uint8]isrBinding),
		ports:     make(map[string]*UART),
	}
	for _, spec := range profile.Ports() {
		d.ports[spec.Name] = NewUART(spec.Name, spec.RXBuffer, spec.TXBuffer)
		d.ports[spec.Name].clock = d.advance
	}
	return d
}

// NewBoard is a shortcut for a Board on a fresh simulated driver.
func NewBoard(profile board.Profile, opts ...board.BoardOption) (*board.Board, *Driver) {
	d := NewDriver(profile)
	return board.New(profile, d, opts...), d
}

func (d *Driver) record(op string, pin board.Pin, args ...uint32) {
	d.calls = append(d.calls, Call{Op: op, Pin: pin, Args: args})
}

// Calls returns every driver call made so far.
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// RemovePort makes the driver report the named peripheral as missing.
func (d *Driver) RemovePort(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.ports, name)
}

// UART returns the simulated peripheral called name.
func (d *Driver) UART(name string) (*UART, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.ports[name]
	return u, ok
}

func (d *Driver) SerialPeripheral(name string) (board.Peripheral, bool) {
	u, ok := d.UART(name)
	if !ok {
		return nil, false
	}
	return u, true
}

// GPIO

func (d *Driver) PinMode(pin board.Pin, mode uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("PinMode", pin, uint32(mode))
	d.modes[pin] = mode
}

func (d *Driver) PinModeOf(pin board.Pin) (uint8, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.modes[pin]
	return m, ok
}

func (d *Driver) DigitalWrite(pin board.Pin, level uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DigitalWrite", pin, uint32(level))
	d.levels[pin] = level
}

func (d *Driver) DigitalRead(pin board.Pin) uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if src, ok := d.wires[pin]; ok {
		return d.levels[src]
	}
	return d.levels[pin]
}

// SetLevel drives an input pin from outside the board.
func (d *Driver) SetLevel(pin board.Pin, level uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.levels[pin] = level
}

// Level returns the last level written to pin.
func (d *Driver) Level(pin board.Pin) uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.levels[pin]
}

// Wire connects input to output so reads of input see output's level.
func (d *Driver) Wire(output, input board.Pin) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wires[input] = output
}

// Analog

func (d *Driver) AnalogReference(code uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AnalogReference", 0, uint32(code))
	d.reference = int(code)
}

// Reference returns the last reference code set, or -1.
func (d *Driver) Reference() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reference
}

func (d *Driver) AnalogRead(pin board.Pin) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.analogIn[pin]
}

// SetAnalog sets the value the next AnalogRead of pin returns.
func (d *Driver) SetAnalog(pin board.Pin, value uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.analogIn[pin] = value
}

func (d *Driver) AnalogWrite(pin board.Pin, value uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AnalogWrite", pin, uint32(value))
	d.analogOut[pin] = value
}

// AnalogOutput returns the last value written to pin.
func (d *Driver) AnalogOutput(pin board.Pin) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.analogOut[pin]
}

func (d *Driver) AnalogReadResolution(bits uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AnalogReadResolution", 0, uint32(bits))
	d.readRes = bits
}

func (d *Driver) AnalogWriteResolution(bits uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AnalogWriteResolution", 0, uint32(bits))
	d.writeRes = bits
}

// Clock

func (d *Driver) advance(ms uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.micros += uint64(ms) * 1000
}

func (d *Driver) Millis() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint32(d.micros / 1000)
}

func (d *Driver) Micros() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint32(d.micros)
}

func (d *Driver) Delay(ms uint32) {
	d.advance(ms)
}

func (d *Driver) DelayMicroseconds(us uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.micros += uint64(us)
}

// Waveform

func (d *Driver) Tone(pin board.Pin, frequency uint32, durationMs uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Tone", pin, frequency, durationMs)
	d.tones[pin] = Tone{Frequency: frequency, DurationMs: durationMs}
}

func (d *Driver) NoTone(pin board.Pin) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("NoTone", pin)
	delete(d.tones, pin)
}

// ToneOn returns the tone playing on pin.
func (d *Driver) ToneOn(pin board.Pin) (Tone, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tones[pin]
	return t, ok
}

func (d *Driver) ShiftOut(data, clock board.Pin, order uint8, value byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ShiftOut", data, uint32(clock), uint32(order), uint32(value))
	d.shifts = append(d.shifts, Shift{Data: data, Clock: clock, Order: order, Value: value})
}

// Shifts returns every ShiftOut so far.
func (d *Driver) Shifts() []Shift {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Shift(nil), d.shifts...)
}

// QueueShiftIn sets the bytes subsequent ShiftIn calls return, as seen on
// the wire in MSB-first order.
func (d *Driver) QueueShiftIn(data ...byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shiftIn = append(d.shiftIn, data...)
}

func (d *Driver) ShiftIn(data, clock board.Pin, order uint8) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ShiftIn", data, uint32(clock), uint32(order))
	if len(d.shiftIn) == 0 {
		return 0
	}
	b := d.shiftIn[0]
	d.shiftIn = d.shiftIn[1:]
	if order == 0 { // LSBFIRST
		b = reverseBits(b)
	}
	return b
}

func reverseBits(b byte) byte {
	var r byte
	for i := 0; i < 8; i++ {
		r = r<<1 | b&1
		b >>= 1
	}
	return r
}

// SetPulse sets the pulse width PulseIn reports for pin. Zero simulates a
// timeout.
func (d *Driver) SetPulse(pin board.Pin, us uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pulses[pin] = us
}

func (d *Driver) PulseIn(pin board.Pin, level uint8, timeoutUs uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("PulseIn", pin, uint32(level), timeoutUs)
	us, ok := d.pulses[pin]
	if !ok || us > timeoutUs {
		d.micros += uint64(timeoutUs)
		return 0
	}
	d.micros += uint64(us)
	return us
}

// Entropy

func (d *Driver) RandomSeed(seed uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("RandomSeed", 0, seed)
	d.rng = rand.New(rand.NewPCG(uint64(seed), 0))
}

func (d *Driver) Random(lo, hi int32) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int32(int64(lo) + d.rng.Int64N(int64(hi)-int64(lo)))
}

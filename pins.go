package board

// AnalogOutputKind tells how an AnalogOutputPin produces its level.
type AnalogOutputKind uint8

const (
	// OutputPWM is a digital pin driven with a PWM duty cycle.
	OutputPWM AnalogOutputKind = iota
	// OutputDAC is a true analog output.
	OutputDAC
)

func (k AnalogOutputKind) String() string {
	if k == OutputDAC {
		return "dac"
	}
	return "pwm"
}

// HasPWM reports whether pin can produce PWM.
func (b *Board) HasPWM(pin Pin) bool {
	return b.profile.Pins().HasPWM(pin)
}

// InterruptLineOf returns the interrupt line of pin, or false when the pin
// has none.
func (b *Board) InterruptLineOf(pin Pin) (uint8, bool) {
	return b.profile.Pins().InterruptLineOf(pin)
}

// DigitalPin is a handle on one digital pin.
type DigitalPin struct {
	board *Board
	pin   Pin
}

// DigitalPin returns a handle for pin n, or false when n is beyond the
// board's digital pin count.
func (b *Board) DigitalPin(n int) (DigitalPin, bool) {
	b.checkISR("DigitalPin")
	if n < 0 || n >= b.profile.DigitalPins() {
		return DigitalPin{}, false
	}
	return DigitalPin{board: b, pin: Pin(n)}, true
}

func (p DigitalPin) Pin() Pin                     { return p.pin }
func (p DigitalPin) SetMode(mode PinMode)         { p.board.SetPinMode(p.pin, mode) }
func (p DigitalPin) Write(level PinLevel)         { p.board.DigitalWrite(p.pin, level) }
func (p DigitalPin) Read() PinLevel               { return p.board.DigitalRead(p.pin) }
func (p DigitalPin) HasPWM() bool                 { return p.board.HasPWM(p.pin) }
func (p DigitalPin) InterruptLine() (uint8, bool) { return p.board.InterruptLineOf(p.pin) }

// Mode reads back the pin's mode when the driver supports it.
func (p DigitalPin) Mode() (PinMode, bool) { return p.board.PinMode(p.pin) }

// Toggle inverts the output level.
func (p DigitalPin) Toggle() {
	if p.Read() == High {
		p.Write(Low)
		return
	}
	p.Write(High)
}

// ToPWM returns the pin as a PWM output, or false when it has no PWM.
func (p DigitalPin) ToPWM() (AnalogOutputPin, bool) {
	if !p.HasPWM() {
		return AnalogOutputPin{}, false
	}
	return AnalogOutputPin{board: p.board, pin: p.pin, kind: OutputPWM}, true
}

// AnalogInputPin is a handle on one ADC input.
type AnalogInputPin struct {
	board *Board
	pin   Pin
	index int
}

// AnalogInputPin returns analog input i (A0 is 0), or false when the board
// has fewer inputs.
func (b *Board) AnalogInputPin(i int) (AnalogInputPin, bool) {
	b.checkISR("AnalogInputPin")
	pin, ok := b.profile.Pins().AnalogInput(i)
	if !ok {
		return AnalogInputPin{}, false
	}
	return AnalogInputPin{board: b, pin: pin, index: i}, true
}

func (p AnalogInputPin) Pin() Pin     { return p.pin }
func (p AnalogInputPin) Index() int   { return p.index }
func (p AnalogInputPin) Read() uint16 { return p.board.AnalogRead(p.pin) }

// AnalogOutputPin is a handle on a PWM or DAC output.
type AnalogOutputPin struct {
	board *Board
	pin   Pin
	kind  AnalogOutputKind
}

// AnalogOutputPin returns DAC output i, or false when the board has fewer
// outputs.
func (b *Board) AnalogOutputPin(i int) (AnalogOutputPin, bool) {
	b.checkISR("AnalogOutputPin")
	pin, ok := b.profile.Pins().AnalogOutput(i)
	if !ok {
		return AnalogOutputPin{}, false
	}
	return AnalogOutputPin{board: b, pin: pin, kind: OutputDAC}, true
}

func (p AnalogOutputPin) Pin() Pin               { return p.pin }
func (p AnalogOutputPin) Kind() AnalogOutputKind { return p.kind }

// Write outputs value, clamped to the current write resolution.
func (p AnalogOutputPin) Write(value uint16) {
	p.board.AnalogWrite(p.pin, min(value, p.board.MaxAnalogWrite()))
}

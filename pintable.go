package board

import (
	"fmt"
	"maps"
	"slices"
)

// Upper bounds on the analog pin tables. Profiles that declare more pins
// are truncated to these sizes.
const (
	MaxAnalogInputs  = 16
	MaxAnalogOutputs = 8
)

// NoInterrupt is the out-of-band value returned by InterruptLine for a pin
// without an interrupt line.
const NoInterrupt = -1

// PinTable holds the capability tables of one board. It is resolved once
// when a profile is built and never changes afterwards.
type PinTable struct {
	inputs  [MaxAnalogInputs]Pin
	outputs [MaxAnalogOutputs]Pin
	nIn     uint8
	nOut    uint8

	pwm   [4]uint64  // bit set indexed by pin
	lines [256]uint8 // line+1, 0 means none
}

// NewPinTable builds a table from the given pin lists. Analog lists longer
// than the bounds are truncated, keeping the leading entries. Duplicate
// pins within a list and pins sharing an interrupt line are rejected.
func NewPinTable(inputs, outputs, pwm []Pin, interrupts map[Pin]uint8) (PinTable, error) {
	var t PinTable

	if len(inputs) > MaxAnalogInputs {
		inputs = inputs[:MaxAnalogInputs]
	}
	if len(outputs) > MaxAnalogOutputs {
		outputs = outputs[:MaxAnalogOutputs]
	}
	if d, ok := firstDuplicate(inputs); ok {
		return PinTable{}, fmt.Errorf("%w: analog input pin %d listed twice", ErrInvalidProfile, d)
	}
	if d, ok := firstDuplicate(outputs); ok {
		return PinTable{}, fmt.Errorf("%w: analog output pin %d listed twice", ErrInvalidProfile, d)
	}
	t.nIn = uint8(copy(t.inputs[:], inputs))
	t.nOut = uint8(copy(t.outputs[:], outputs))

	for _, p := range pwm {
		t.pwm[p/64] |= 1 << (p % 64)
	}

	seen := make(map[uint8]Pin, len(interrupts))
	for _, pin := range slices.Sorted(maps.Keys(interrupts)) {
		line := interrupts[pin]
		if line == 0xFF {
			return PinTable{}, fmt.Errorf("%w: interrupt line %d out of range", ErrInvalidProfile, line)
		}
		if other, dup := seen[line]; dup {
			return PinTable{}, fmt.Errorf("%w: pins %d and %d share interrupt line %d", ErrInvalidProfile, other, pin, line)
		}
		seen[line] = pin
		t.lines[pin] = line + 1
	}
	return t, nil
}

// AnalogInputs returns the analog-input pins in order (A0, A1, ...).
func (t *PinTable) AnalogInputs() []Pin {
	return slices.Clone(t.inputs[:t.nIn])
}

// AnalogOutputs returns the analog-output (DAC) pins in order.
func (t *PinTable) AnalogOutputs() []Pin {
	return slices.Clone(t.outputs[:t.nOut])
}

// NumAnalogInputs returns the number of analog-input pins.
func (t *PinTable) NumAnalogInputs() int { return int(t.nIn) }

// NumAnalogOutputs returns the number of analog-output pins.
func (t *PinTable) NumAnalogOutputs() int { return int(t.nOut) }

// AnalogInput returns the pin of analog input i.
func (t *PinTable) AnalogInput(i int) (Pin, bool) {
	if i < 0 || i >= int(t.nIn) {
		return 0, false
	}
	return t.inputs[i], true
}

// AnalogOutput returns the pin of analog output i.
func (t *PinTable) AnalogOutput(i int) (Pin, bool) {
	if i < 0 || i >= int(t.nOut) {
		return 0, false
	}
	return t.outputs[i], true
}

// HasPWM reports whether pin can produce a PWM signal.
func (t *PinTable) HasPWM(pin Pin) bool {
	return t.pwm[pin/64]&(1<<(pin%64)) != 0
}

// PWMPins returns every PWM-capable pin in ascending order.
func (t *PinTable) PWMPins() []Pin {
	var pins []Pin
	for p := 0; p < 256; p++ {
		if t.HasPWM(Pin(p)) {
			pins = append(pins, Pin(p))
		}
	}
	return pins
}

// InterruptLineOf returns the interrupt line wired to pin. ok is false when
// the pin has none.
func (t *PinTable) InterruptLineOf(pin Pin) (line uint8, ok bool) {
	v := t.lines[pin]
	if v == 0 {
		return 0, false
	}
	return v - 1, true
}

// InterruptLine is InterruptLineOf in integer form, returning NoInterrupt
// when the pin has no line.
func (t *PinTable) InterruptLine(pin Pin) int {
	if line, ok := t.InterruptLineOf(pin); ok {
		return int(line)
	}
	return NoInterrupt
}

// InterruptPins returns every pin with an interrupt line in ascending order.
func (t *PinTable) InterruptPins() []Pin {
	var pins []Pin
	for p := 0; p < 256; p++ {
		if t.lines[p] != 0 {
			pins = append(pins, Pin(p))
		}
	}
	return pins
}

func firstDuplicate(pins []Pin) (Pin, bool) {
	var seen [4]uint64
	for _, p := range pins {
		if seen[p/64]&(1<<(p%64)) != 0 {
			return p, true
		}
		seen[p/64] |= 1 << (p % 64)
	}
	return 0, false
}

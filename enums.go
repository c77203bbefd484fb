package board

import (
	"fmt"
	"strings"
)

// Pin identifies a physical pin on the active board.
type Pin uint8

// PinLevel is the logic level of a digital pin.
type PinLevel uint8

const (
	Low PinLevel = iota
	High
)

func (l PinLevel) String() string {
	if l == High {
		return "HIGH"
	}
	return "LOW"
}

// PinMode selects the electrical configuration of a digital pin.
type PinMode uint8

const (
	ModeInput PinMode = iota
	ModeInputPullup
	ModeOutput
	ModeInputPulldown // SAMD only
)

func (m PinMode) String() string {
	switch m {
	case ModeInput:
		return "INPUT"
	case ModeInputPullup:
		return "INPUT_PULLUP"
	case ModeOutput:
		return "OUTPUT"
	case ModeInputPulldown:
		return "INPUT_PULLDOWN"
	default:
		return fmt.Sprintf("PinMode(%d)", uint8(m))
	}
}

// AnalogReference selects the voltage reference used by the ADC. The legal
// members depend on the board family.
type AnalogReference uint8

const (
	RefDefault AnalogReference = iota
	RefExternal
	RefInternal
	RefInternal1v1  // AVR only
	RefInternal2v56 // AVR only
	RefInternal1v0  // SAMD only
	RefInternal1v65 // SAMD only
	RefInternal2v23 // SAMD only
)

var analogReferenceNames = [...]string{
	RefDefault:      "DEFAULT",
	RefExternal:     "EXTERNAL",
	RefInternal:     "INTERNAL",
	RefInternal1v1:  "INTERNAL1V1",
	RefInternal2v56: "INTERNAL2V56",
	RefInternal1v0:  "INTERNAL1V0",
	RefInternal1v65: "INTERNAL1V65",
	RefInternal2v23: "INTERNAL2V23",
}

func (r AnalogReference) String() string {
	if int(r) < len(analogReferenceNames) {
		return analogReferenceNames[r]
	}
	return fmt.Sprintf("AnalogReference(%d)", uint8(r))
}

// ParseAnalogReference accepts the names printed by String, case-insensitive.
func ParseAnalogReference(s string) (AnalogReference, error) {
	for i, name := range analogReferenceNames {
		if strings.EqualFold(s, name) {
			return AnalogReference(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown analog reference %q", ErrInvalidProfile, s)
}

// BitOrder is the bit order used by the shift operations.
type BitOrder uint8

const (
	MSBFirst BitOrder = iota
	LSBFirst
)

func (o BitOrder) String() string {
	if o == LSBFirst {
		return "LSBFIRST"
	}
	return "MSBFIRST"
}

// InterruptTrigger is the edge or level condition that fires an interrupt.
type InterruptTrigger uint8

const (
	TriggerLow InterruptTrigger = iota
	TriggerChange
	TriggerRising
	TriggerFalling
	TriggerHigh // SAMD only
)

func (t InterruptTrigger) String() string {
	switch t {
	case TriggerLow:
		return "LOW"
	case TriggerChange:
		return "CHANGE"
	case TriggerRising:
		return "RISING"
	case TriggerFalling:
		return "FALLING"
	case TriggerHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("InterruptTrigger(%d)", uint8(t))
	}
}

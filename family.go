package board

import (
	"fmt"
	"strings"
)

// Family is the microcontroller architecture family of a board. It decides
// how abstract enumerations translate to the native codes the driver
// expects.
type Family uint8

const (
	FamilyAVR Family = iota + 1
	FamilySAM
	FamilySAMD
)

func (f Family) String() string {
	switch f {
	case FamilyAVR:
		return "avr"
	case FamilySAM:
		return "sam"
	case FamilySAMD:
		return "samd"
	default:
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
}

// ParseFamily accepts the names printed by String.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avr":
		return FamilyAVR, nil
	case "sam":
		return FamilySAM, nil
	case "samd":
		return FamilySAMD, nil
	}
	return 0, fmt.Errorf("%w: unknown family %q", ErrInvalidProfile, s)
}

// Native digital levels, shared by every family.
const (
	nativeLow  uint8 = 0
	nativeHigh uint8 = 1
)

// Native shift orders, shared by every family.
const (
	nativeLSBFirst uint8 = 0
	nativeMSBFirst uint8 = 1
)

// NativePinMode translates m to the family's pinMode code. ok is false when
// the family has no such mode.
func (f Family) NativePinMode(m PinMode) (code uint8, ok bool) {
	switch m {
	case ModeInput:
		return 0x0, true
	case ModeOutput:
		return 0x1, true
	case ModeInputPullup:
		return 0x2, true
	case ModeInputPulldown:
		if f == FamilySAMD {
			return 0x3, true
		}
	}
	return 0, false
}

// PinModeFromNative is the inverse of NativePinMode.
func (f Family) PinModeFromNative(code uint8) (PinMode, bool) {
	for _, m := range []PinMode{ModeInput, ModeInputPullup, ModeOutput, ModeInputPulldown} {
		if c, ok := f.NativePinMode(m); ok && c == code {
			return m, true
		}
	}
	return 0, false
}

// NativeTrigger translates t to the family's attachInterrupt mode.
func (f Family) NativeTrigger(t InterruptTrigger) (code uint8, ok bool) {
	if f == FamilyAVR {
		switch t {
		case TriggerLow:
			return 0, true
		case TriggerChange:
			return 1, true
		case TriggerFalling:
			return 2, true
		case TriggerRising:
			return 3, true
		}
		return 0, false
	}

	switch t {
	case TriggerLow:
		return 0, true
	case TriggerHigh:
		// The SAM core defines HIGH for interrupts but it is not exposed here.
		if f == FamilySAMD {
			return 1, true
		}
		return 0, false
	case TriggerChange:
		return 2, true
	case TriggerFalling:
		return 3, true
	case TriggerRising:
		return 4, true
	}
	return 0, false
}

// DefaultAnalogReferences returns the reference table used when a profile
// does not declare its own.
func (f Family) DefaultAnalogReferences() map[AnalogReference]uint8 {
	switch f {
	case FamilyAVR:
		// ATmega328P / ATmega32U4 layout.
		return map[AnalogReference]uint8{
			RefDefault:  1,
			RefExternal: 0,
			RefInternal: 3,
		}
	case FamilySAM:
		return map[AnalogReference]uint8{
			RefDefault: 0,
		}
	case FamilySAMD:
		return map[AnalogReference]uint8{
			RefDefault:      0,
			RefInternal:     1,
			RefExternal:     2,
			RefInternal1v0:  3,
			RefInternal1v65: 4,
			RefInternal2v23: 5,
		}
	}
	return nil
}

// SupportsTone reports whether tone generation is implemented. The SAM core
// has none, so Tone and NoTone are accepted and ignored there.
func (f Family) SupportsTone() bool {
	return f != FamilySAM
}

// defaultResolution returns the power-on ADC and PWM resolutions in bits.
func (f Family) defaultResolution() (read, write uint8) {
	return 10, 8
}

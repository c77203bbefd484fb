package board

import "golang.org/x/exp/constraints"

// fullScale returns the largest value representable in bits.
func fullScale[T constraints.Unsigned](bits uint8) T {
	return T(1)<<bits - 1
}

// SetPinMode configures pin. A mode the board family lacks is ignored.
func (b *Board) SetPinMode(pin Pin, mode PinMode) {
	code, ok := b.Family().NativePinMode(mode)
	if !ok {
		b.log.Debug("ignoring unsupported pin mode", "pin", pin, "mode", mode)
		return
	}
	b.drv.PinMode(pin, code)
}

// PinMode reads back the mode of pin. ok is false when the driver cannot
// report modes or the pin's mode is unknown.
func (b *Board) PinMode(pin Pin) (PinMode, bool) {
	mr, ok := b.drv.(ModeReader)
	if !ok {
		return 0, false
	}
	code, ok := mr.PinModeOf(pin)
	if !ok {
		return 0, false
	}
	return b.Family().PinModeFromNative(code)
}

// DigitalWrite drives pin to level.
func (b *Board) DigitalWrite(pin Pin, level PinLevel) {
	if level == High {
		b.drv.DigitalWrite(pin, nativeHigh)
		return
	}
	b.drv.DigitalWrite(pin, nativeLow)
}

// DigitalRead samples pin.
func (b *Board) DigitalRead(pin Pin) PinLevel {
	if b.drv.DigitalRead(pin) == nativeHigh {
		return High
	}
	return Low
}

// SetAnalogReference selects the ADC reference. A reference the board
// lacks is ignored.
func (b *Board) SetAnalogReference(ref AnalogReference) {
	code, ok := b.profile.NativeReference(ref)
	if !ok {
		b.log.Debug("ignoring unsupported analog reference", "reference", ref)
		return
	}
	b.drv.AnalogReference(code)
}

// AnalogRead samples pin at the current read resolution.
func (b *Board) AnalogRead(pin Pin) uint16 {
	return b.drv.AnalogRead(pin)
}

// AnalogWrite outputs value on pin as PWM duty or DAC level, at the
// current write resolution.
func (b *Board) AnalogWrite(pin Pin, value uint16) {
	b.drv.AnalogWrite(pin, value)
}

// SetAnalogReadResolution changes the bit width of AnalogRead results.
func (b *Board) SetAnalogReadResolution(bits uint8) {
	b.readRes = bits
	b.drv.AnalogReadResolution(bits)
}

// SetAnalogWriteResolution changes the bit width AnalogWrite expects.
func (b *Board) SetAnalogWriteResolution(bits uint8) {
	b.writeRes = bits
	b.drv.AnalogWriteResolution(bits)
}

// AnalogReadResolution returns the current ADC resolution in bits.
func (b *Board) AnalogReadResolution() uint8 { return b.readRes }

// AnalogWriteResolution returns the current output resolution in bits.
func (b *Board) AnalogWriteResolution() uint8 { return b.writeRes }

// MaxAnalogWrite returns the largest value AnalogWrite accepts at the
// current resolution.
func (b *Board) MaxAnalogWrite() uint16 {
	return fullScale[uint16](b.writeRes)
}

// MaxAnalogRead returns the largest value AnalogRead can return at the
// current resolution.
func (b *Board) MaxAnalogRead() uint16 {
	return fullScale[uint16](b.readRes)
}

package board

import "fmt"

// NativeConfig is a serial configuration in the encoding the family's core
// library expects in its begin call.
type NativeConfig uint32

func (n NativeConfig) String() string {
	return fmt.Sprintf("0x%04X", uint32(n))
}

// AVR UCSRnC bit fields.
const (
	avrCharSizeShift = 1 // UCSZn1:0
	avrStopBit2      = 0x08
	avrParityEven    = 0x20
	avrParityOdd     = 0x30
)

// SAMD core field values.
const (
	samdParityEven = 0x1
	samdParityOdd  = 0x2
	samdParityNone = 0x3
	samdStopBit1   = 0x10
	samdStopBit2   = 0x30
	samdDataShift  = 8 // SERIAL_DATA_5 = 0x100
)

// SAM3X UART/USART mode register fields.
const (
	samCharLengthShift = 6 // US_MR_CHRL
	samParityEven      = 0x000
	samParityOdd       = 0x200
	samParityNone      = 0x800
	samStopBit2        = 0x2000
)

// NativeSerialConfig encodes c for the family. ok is false for values
// outside the enumeration.
func (f Family) NativeSerialConfig(c SerialConfig) (NativeConfig, bool) {
	if !c.Valid() {
		return 0, false
	}
	ff := c.Format()
	bits := uint32(ff.DataBits - 5)

	switch f {
	case FamilyAVR:
		code := bits << avrCharSizeShift
		if ff.StopBits == 2 {
			code |= avrStopBit2
		}
		switch ff.Parity {
		case ParityEven:
			code |= avrParityEven
		case ParityOdd:
			code |= avrParityOdd
		}
		return NativeConfig(code), true

	case FamilySAM:
		code := bits << samCharLengthShift
		if ff.StopBits == 2 {
			code |= samStopBit2
		}
		switch ff.Parity {
		case ParityNone:
			code |= samParityNone
		case ParityEven:
			code |= samParityEven
		case ParityOdd:
			code |= samParityOdd
		}
		return NativeConfig(code), true

	case FamilySAMD:
		code := (bits + 1) << samdDataShift
		if ff.StopBits == 2 {
			code |= samdStopBit2
		} else {
			code |= samdStopBit1
		}
		switch ff.Parity {
		case ParityNone:
			code |= samdParityNone
		case ParityEven:
			code |= samdParityEven
		case ParityOdd:
			code |= samdParityOdd
		}
		return NativeConfig(code), true
	}
	return 0, false
}

// DecodeSerialConfig reverses NativeSerialConfig.
func (f Family) DecodeSerialConfig(n NativeConfig) (SerialConfig, bool) {
	for _, c := range AllSerialConfigs() {
		if code, ok := f.NativeSerialConfig(c); ok && code == n {
			return c, true
		}
	}
	return 0, false
}

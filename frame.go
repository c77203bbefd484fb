package board

import (
	"fmt"
	"strings"
)

// Parity represents the parity mode of a serial frame
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return fmt.Sprintf("Parity(%d)", uint8(p))
	}
}

// letter returns the conventional one-letter parity code used in "8N1".
func (p Parity) letter() byte {
	switch p {
	case ParityEven:
		return 'E'
	case ParityOdd:
		return 'O'
	default:
		return 'N'
	}
}

// FrameFormat describes serial framing: data bits (5-8), parity and stop
// bits (1-2).
type FrameFormat struct {
	DataBits int
	Parity   Parity
	StopBits int
}

// Valid reports whether f names one of the 24 representable formats.
func (f FrameFormat) Valid() bool {
	return f.DataBits >= 5 && f.DataBits <= 8 &&
		f.Parity <= ParityOdd &&
		(f.StopBits == 1 || f.StopBits == 2)
}

func (f FrameFormat) String() string {
	return fmt.Sprintf("%d%c%d", f.DataBits, f.Parity.letter(), f.StopBits)
}

// SerialConfig returns the enumerated configuration for f.
func (f FrameFormat) SerialConfig() (SerialConfig, error) {
	if !f.Valid() {
		return 0, fmt.Errorf("%w: frame format %d/%v/%d", ErrInvalidConfig, f.DataBits, f.Parity, f.StopBits)
	}
	group := int(f.Parity)*2 + (f.StopBits - 1)
	return SerialConfig(group*4 + (f.DataBits - 5)), nil
}

// SerialConfig enumerates every frame format. The numeric values are part
// of the external interface and must not be reordered.
type SerialConfig uint8

const (
	Serial5N1 SerialConfig = iota
	Serial6N1
	Serial7N1
	Serial8N1
	Serial5N2
	Serial6N2
	Serial7N2
	Serial8N2
	Serial5E1
	Serial6E1
	Serial7E1
	Serial8E1
	Serial5E2
	Serial6E2
	Serial7E2
	Serial8E2
	Serial5O1
	Serial6O1
	Serial7O1
	Serial8O1
	Serial5O2
	Serial6O2
	Serial7O2
	Serial8O2

	numSerialConfigs = iota
)

// AllSerialConfigs returns the 24 configurations in enumeration order.
func AllSerialConfigs() []SerialConfig {
	all := make([]SerialConfig, numSerialConfigs)
	for i := range all {
		all[i] = SerialConfig(i)
	}
	return all
}

// Valid reports whether c is a member of the enumeration.
func (c SerialConfig) Valid() bool {
	return c < numSerialConfigs
}

// Format expands c into its frame format. Invalid values yield the zero
// FrameFormat.
func (c SerialConfig) Format() FrameFormat {
	if !c.Valid() {
		return FrameFormat{}
	}
	group := int(c) / 4
	return FrameFormat{
		DataBits: int(c)%4 + 5,
		Parity:   Parity(group / 2),
		StopBits: group%2 + 1,
	}
}

func (c SerialConfig) String() string {
	if !c.Valid() {
		return fmt.Sprintf("SerialConfig(%d)", uint8(c))
	}
	return c.Format().String()
}

// ParseSerialConfig parses the short form used by String, e.g. "8N1" or
// "7e2". A "SERIAL_" prefix is accepted.
func ParseSerialConfig(s string) (SerialConfig, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "SERIAL_")
	if len(v) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidConfig, s)
	}

	f := FrameFormat{
		DataBits: int(v[0] - '0'),
		StopBits: int(v[2] - '0'),
	}
	switch v[1] {
	case 'N':
		f.Parity = ParityNone
	case 'E':
		f.Parity = ParityEven
	case 'O':
		f.Parity = ParityOdd
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidConfig, s)
	}
	c, err := f.SerialConfig()
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidConfig, s)
	}
	return c, nil
}

package board

// The interfaces in this file are the boundary to the vendor hardware
// driver. Values crossing it are native codes (see Family) and plain
// integers in the units the core library uses: milliseconds, microseconds
// and raw ADC counts.

// GPIO drives digital pins.
type GPIO interface {
	PinMode(pin Pin, mode uint8)
	DigitalWrite(pin Pin, level uint8)
	DigitalRead(pin Pin) uint8
}

// ModeReader is implemented by drivers that can report a pin's current
// mode. It is optional.
type ModeReader interface {
	PinModeOf(pin Pin) (mode uint8, ok bool)
}

// Analog drives the ADC and PWM/DAC outputs.
type Analog interface {
	AnalogReference(code uint8)
	AnalogRead(pin Pin) uint16
	AnalogWrite(pin Pin, value uint16)
	AnalogReadResolution(bits uint8)
	AnalogWriteResolution(bits uint8)
}

// Clock provides the free-running timers and busy waits.
type Clock interface {
	Millis() uint32
	Micros() uint32
	Delay(ms uint32)
	DelayMicroseconds(us uint32)
}

// Waveform covers tone generation, bit-banged shifting and pulse timing.
type Waveform interface {
	Tone(pin Pin, frequency uint32, durationMs uint32)
	NoTone(pin Pin)
	ShiftOut(data, clock Pin, order uint8, value byte)
	ShiftIn(data, clock Pin, order uint8) byte
	// PulseIn returns the pulse length in microseconds, or 0 on timeout.
	PulseIn(pin Pin, level uint8, timeoutUs uint32) uint32
}

// Entropy is the core's pseudo-random generator.
type Entropy interface {
	RandomSeed(seed uint32)
	Random(lo, hi int32) int32
}

// InterruptController binds handlers to interrupt lines and masks
// interrupts globally.
type InterruptController interface {
	AttachInterrupt(line uint8, isr func(), mode uint8)
	DetachInterrupt(line uint8)
	DisableInterrupts() (state uint32)
	RestoreInterrupts(state uint32)
}

// SerialProvider hands out the backing peripheral of a named serial port.
// The same peripheral must be returned for the same name.
type SerialProvider interface {
	SerialPeripheral(name string) (Peripheral, bool)
}

// Driver is the complete hardware boundary a Board runs on.
type Driver interface {
	GPIO
	Analog
	Clock
	Waveform
	Entropy
	InterruptController
	SerialProvider
}

// Peripheral is the hardware behind one SerialPort. Implementations are
// process-wide singletons; a SerialPort never creates or frees one.
type Peripheral interface {
	Begin(baud uint32, config NativeConfig)
	End()
	// Ready reports link readiness. For USB CDC it reflects the host
	// connection.
	Ready() bool
	SetTimeout(ms uint32)

	Available() int
	Receive() (byte, bool)
	// ReadBytes waits up to the timeout for len(buf) bytes and returns the
	// count actually read.
	ReadBytes(buf []byte) int
	PeekByte() (byte, bool)

	AvailableForWrite() int
	Send(b byte) bool
	WriteBytes(buf []byte) int
	// Flush blocks until buffered output has been transmitted.
	Flush()
}

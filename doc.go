// Package board provides a hardware capability layer for microcontroller
// boards: serial ports, pin capability tables, digital and analog I/O,
// timing and interrupts, described per board by a Profile and carried out
// by a Driver.
//
// The package never touches hardware itself. A Driver translates the
// family-native codes the package produces into register access, a host
// tty, or the in-memory simulator used by the tests and the CLI.
//
// # Basic Usage
//
// Bind a profile to a driver and talk to the console port:
//
//	profile, err := board.LookupProfile("uno")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b := board.New(profile, drv)
//
//	console, _ := b.Console()
//	if !console.Begin(115200, board.Serial8N1) {
//	    log.Fatal("frame format not supported")
//	}
//	console.Println("hello")
//
// The profile compiled in with the board_<name> build tag is available
// through ActiveProfile and NewActive. Without a tag the uno is selected.
//
// # Serial Variants
//
// Every port has a variant that decides which of the 24 frame formats it
// accepts:
//
//   - VariantUART: 8N1, 8E1 and 8O1 only
//   - VariantUSART: all 24 formats
//   - VariantUSBCDC: all 24 formats; the framing is virtual
//
// Begin with a rejected format returns false and leaves the port exactly
// as it was. Open does the same with functional options and reports
// ErrUnsupportedSerialMode:
//
//	err := port.Open(
//	    board.WithBaudRate(9600),
//	    board.WithDataBits(7),
//	    board.WithParity(board.ParityEven),
//	    board.WithTimeout(250*time.Millisecond),
//	)
//
// SerialPort implements io.Reader and io.Writer, so bufio, fmt.Fprintf and
// io.Copy work unchanged. A read that times out with nothing received
// returns ErrReadTimeout.
//
// # Port Registry
//
// Well-known roles map onto the board's peripherals. Several roles may
// share one port, and every accessor returns the same *SerialPort:
//
//	usb, ok := b.USBVirtual()   // false on boards without native USB
//	bridge, ok := b.LinuxBridge()
//	p, err := b.LookupPort("hardware-open")
//
// # Pins
//
// Pin tables describe analog inputs, analog outputs, PWM capable pins and
// interrupt lines. Handles check capabilities once so later calls cannot
// fail:
//
//	led, _ := b.DigitalPin(13)
//	led.SetMode(board.ModeOutput)
//	led.Toggle()
//
//	a0, _ := b.AnalogInputPin(0)
//	v := a0.Read()
//
// Modes, analog references and interrupt triggers a family lacks are
// ignored rather than reported. A profile may override the analog
// reference table of its family.
//
// # Interrupts
//
// Handlers attached with Attach run in interrupt context. Handlers
// attached with AttachDeferred are queued from interrupt context and run
// by Poll or Run on the caller's goroutine:
//
//	irq := b.Interrupts()
//	detach, err := irq.AttachPinDeferred(2, onEdge, board.TriggerFalling)
//	defer detach()
//	go irq.Run(ctx) // or call irq.Poll() from the main loop
//
// Use WithoutInterrupts to guard state shared with direct handlers.
// Registry and pin accessors panic when called from interrupt context.
//
// # Profiles
//
// Profiles beyond the built-in set are loaded from YAML:
//
//	p, err := board.LoadProfileFile("boards/nano-every.yaml")
//
// LoadProfileDir loads every *.yaml file in a directory. Malformed or
// inconsistent profiles fail with ErrInvalidProfile.
//
// # Error Handling
//
// Errors wrap package sentinels; use errors.Is:
//
//	var (
//	    ErrUnsupportedSerialMode // frame format rejected by the variant
//	    ErrReadTimeout           // nothing received before the timeout
//	    ErrInvalidInterruptPin   // pin has no interrupt line
//	    ErrUnknownBoard          // no built-in profile by that name
//	    // ... and more
//	)
//
// # Default Configuration
//
//   - BaudRate: 9600
//   - Format: 8N1
//   - Timeout: 1 second
//   - Analog read resolution: 10 bits
//   - Analog write resolution: 8 bits
package board

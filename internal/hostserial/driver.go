package hostserial

import (
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	board "github.com/allbin/go-board"
)

// Host buffer sizes. Linux tty queues hold 4 KiB each way.
const (
	hostRXBuffer = 4096
	hostTXBuffer = 4096
)

// Device is one host serial device exposed as a board port.
type Device struct {
	Name    string
	Path    string
	Variant board.Variant
}

// DevicesFromPaths names each path after its base name and guesses the
// variant from the kernel driver prefix.
func DevicesFromPaths(paths []string) []Device {
	devices := make([]Device, 0, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		devices = append(devices, Device{Name: name, Path: p, Variant: variantFor(name)})
	}
	return devices
}

// variantFor returns USB CDC for ACM devices and USART for everything
// else. Host ttys frame every format in hardware or in the bridge chip.
func variantFor(name string) board.Variant {
	if strings.HasPrefix(name, "ttyACM") {
		return board.VariantUSBCDC
	}
	return board.VariantUSART
}

// Profile builds the profile of a host with the given devices. The first
// device is the console and monitor, the first ACM device the USB virtual
// port and the first other device the hardware port.
func Profile(devices []Device) (board.Profile, error) {
	if len(devices) == 0 {
		return board.Profile{}, fmt.Errorf("%w: no host devices", board.ErrInvalidProfile)
	}
	def := board.ProfileDef{
		Name:   "host",
		Family: board.FamilyAVR,
		MCU:    runtime.GOOS + "/" + runtime.GOARCH,
	}
	var haveUSB, haveHW bool
	for i, d := range devices {
		spec := board.PortSpec{
			Name:     d.Name,
			Variant:  d.Variant,
			RXBuffer: hostRXBuffer,
			TXBuffer: hostTXBuffer,
		}
		if i == 0 {
			spec.Roles = append(spec.Roles, board.RoleConsole, board.RoleMonitor)
		}
		switch {
		case d.Variant == board.VariantUSBCDC && !haveUSB:
			spec.Roles = append(spec.Roles, board.RoleUSBVirtual)
			haveUSB = true
		case d.Variant != board.VariantUSBCDC && !haveHW:
			spec.Roles = append(spec.Roles, board.RoleHardware, board.RoleHardwareOpen)
			haveHW = true
		}
		def.Ports = append(def.Ports, spec)
	}
	return board.NewProfile(def)
}

// Driver runs a Board on a host computer. Serial ports are real devices;
// the host has no pins, so GPIO, analog and waveform calls are accepted
// and do nothing.
type Driver struct {
	start time.Time
	log   *log.Logger

	mu     sync.Mutex
	rng    *rand.Rand
	masked bool
	ttys   map[string]*TTY
}

var _ board.Driver = (*Driver)(nil)

// NewDriver returns a driver with a TTY per device.
func NewDriver(family board.Family, devices []Device, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d := &Driver{
		start: time.Now(),
		log:   logger,
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		ttys:  make(map[string]*TTY, len(devices)),
	}
	for _, dev := range devices {
		d.ttys[dev.Name] = NewTTY(dev.Path, family, hostTXBuffer, logger.WithPrefix(dev.Name))
	}
	return d
}

// NewBoard opens nothing; it binds a host profile for paths to a driver.
// Ports open on Begin.
func NewBoard(paths []string, logger *log.Logger) (*board.Board, *Driver, error) {
	devices := DevicesFromPaths(paths)
	profile, err := Profile(devices)
	if err != nil {
		return nil, nil, err
	}
	drv := NewDriver(profile.Family(), devices, logger)
	opts := []board.BoardOption{}
	if logger != nil {
		opts = append(opts, board.WithLogger(logger))
	}
	return board.New(profile, drv, opts...), drv, nil
}

// TTY returns the peripheral of the named device.
func (d *Driver) TTY(name string) (*TTY, bool) {
	t, ok := d.ttys[name]
	return t, ok
}

func (d *Driver) SerialPeripheral(name string) (board.Peripheral, bool) {
	t, ok := d.ttys[name]
	if !ok {
		return nil, false
	}
	return t, true
}

func (d *Driver) PinMode(pin board.Pin, mode uint8) {
	d.log.Debug("host has no pins", "op", "PinMode", "pin", pin)
}

func (d *Driver) DigitalWrite(pin board.Pin, level uint8) {
	d.log.Debug("host has no pins", "op", "DigitalWrite", "pin", pin)
}

func (d *Driver) DigitalRead(pin board.Pin) uint8 { return 0 }

func (d *Driver) AnalogReference(code uint8)              {}
func (d *Driver) AnalogRead(pin board.Pin) uint16         { return 0 }
func (d *Driver) AnalogWrite(pin board.Pin, value uint16) {}
func (d *Driver) AnalogReadResolution(bits uint8)         {}
func (d *Driver) AnalogWriteResolution(bits uint8)        {}

func (d *Driver) Millis() uint32 { return uint32(time.Since(d.start).Milliseconds()) }
func (d *Driver) Micros() uint32 { return uint32(time.Since(d.start).Microseconds()) }

func (d *Driver) Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (d *Driver) DelayMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

func (d *Driver) Tone(pin board.Pin, frequency uint32, durationMs uint32) {}
func (d *Driver) NoTone(pin board.Pin)                                    {}
func (d *Driver) ShiftOut(data, clock board.Pin, order uint8, value byte) {}
func (d *Driver) ShiftIn(data, clock board.Pin, order uint8) byte         { return 0 }

// PulseIn always times out.
func (d *Driver) PulseIn(pin board.Pin, level uint8, timeoutUs uint32) uint32 {
	d.DelayMicroseconds(timeoutUs)
	return 0
}

func (d *Driver) RandomSeed(seed uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rng = rand.New(rand.NewPCG(uint64(seed), 0))
}

func (d *Driver) Random(lo, hi int32) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int32(int64(lo) + d.rng.Int64N(int64(hi)-int64(lo)))
}

// The host raises no interrupts. Masking is tracked so nested sections
// restore correctly.

func (d *Driver) AttachInterrupt(line uint8, isr func(), mode uint8) {
	d.log.Debug("host has no interrupt lines", "line", line)
}

func (d *Driver) DetachInterrupt(line uint8) {}

func (d *Driver) DisableInterrupts() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := uint32(0)
	if d.masked {
		prev = 1
	}
	d.masked = true
	return prev
}

func (d *Driver) RestoreInterrupts(state uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.masked = state != 0
}

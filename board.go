package board

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Board binds a Profile to a Driver. It owns the singleton SerialPort of
// every peripheral the driver provides and the interrupt dispatcher.
type Board struct {
	profile Profile
	drv     Driver
	log     *log.Logger

	readRes  uint8
	writeRes uint8

	ports  []*SerialPort
	byName map[string]*SerialPort

	irq      *Interrupts
	irqQueue int
}

// BoardOption configures a Board
type BoardOption func(*Board)

// WithLogger sets the logger used for debug records. The default discards
// everything.
func WithLogger(l *log.Logger) BoardOption {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// WithInterruptQueue sets the capacity of the deferred interrupt queue.
func WithInterruptQueue(n int) BoardOption {
	return func(b *Board) {
		if n > 0 {
			b.irqQueue = n
		}
	}
}

// New builds a Board. Ports whose peripheral the driver does not provide
// are reported as absent by the registry.
func New(profile Profile, drv Driver, opts ...BoardOption) *Board {
	if drv == nil {
		panic("board: nil driver")
	}
	b := &Board{
		profile:  profile,
		drv:      drv,
		log:      log.New(io.Discard),
		byName:   make(map[string]*SerialPort),
		irqQueue: 32,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.WithPrefix(profile.Name())
	b.readRes, b.writeRes = profile.Family().defaultResolution()

	for _, spec := range profile.Ports() {
		periph, ok := drv.SerialPeripheral(spec.Name)
		if !ok || periph == nil {
			b.log.Debug("driver has no peripheral", "port", spec.Name)
			continue
		}
		p := newSerialPort(spec, profile.Family(), periph, b.log)
		b.ports = append(b.ports, p)
		b.byName[spec.Name] = p
	}

	b.irq = newInterrupts(b)
	return b
}

// NewActive builds a Board for the profile selected at build time.
func NewActive(drv Driver, opts ...BoardOption) *Board {
	return New(ActiveProfile(), drv, opts...)
}

// Profile returns the board's profile.
func (b *Board) Profile() Profile { return b.profile }

// Family is shorthand for Profile().Family().
func (b *Board) Family() Family { return b.profile.Family() }

// Pins returns the pin capability tables.
func (b *Board) Pins() *PinTable { return b.profile.Pins() }

// Interrupts returns the interrupt dispatcher.
func (b *Board) Interrupts() *Interrupts { return b.irq }

// checkISR panics when called from an interrupt handler. Accessors that
// hand out handles must run in the main context.
func (b *Board) checkISR(op string) {
	if b.irq != nil && b.irq.InsideISR() {
		panic(fmt.Sprintf("board: %s called from interrupt context", op))
	}
}

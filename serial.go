package board

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// SerialPort is a handle on one serial peripheral. The peripheral and its
// Variant are fixed when the board is built; Begin and End only toggle the
// logical open state.
//
// A SerialPort does no locking. Calls must be serialized by the caller, and
// touching a port from an interrupt handler while the main context uses it
// is a data race unless the main context wraps its access in
// WithoutInterrupts. Use deferred interrupt handlers to avoid the issue.
//
// I/O on a closed port is passed straight to the peripheral; what happens
// then is up to the hardware.
type SerialPort struct {
	name    string
	variant Variant
	family  Family
	backing Peripheral
	txCap   int
	log     *log.Logger

	open    bool
	baud    uint32
	format  SerialConfig
	timeout time.Duration
}

func newSerialPort(spec PortSpec, family Family, backing Peripheral, logger *log.Logger) *SerialPort {
	return &SerialPort{
		name:    spec.Name,
		variant: spec.Variant,
		family:  family,
		backing: backing,
		txCap:   spec.TXBuffer,
		log:     logger.With("port", spec.Name),
		timeout: DefaultConfig().Timeout,
	}
}

// Name returns the peripheral name, e.g. "Serial1".
func (p *SerialPort) Name() string { return p.name }

// Variant returns the kind of peripheral behind the port.
func (p *SerialPort) Variant() Variant { return p.variant }

// IsOpen reports whether Begin has succeeded since the last End.
func (p *SerialPort) IsOpen() bool { return p.open }

// BaudRate returns the rate applied by the last successful Begin.
func (p *SerialPort) BaudRate() uint32 { return p.baud }

// Format returns the frame format applied by the last successful Begin.
func (p *SerialPort) Format() SerialConfig { return p.format }

// Timeout returns the current read timeout.
func (p *SerialPort) Timeout() time.Duration { return p.timeout }

// Begin opens the port at baud with the given frame format. It returns
// false, without touching the peripheral, when the format cannot be
// represented by this port's variant. Calling Begin on an open port
// re-applies the configuration.
func (p *SerialPort) Begin(baud uint32, format SerialConfig) bool {
	if !p.variant.Accepts(format) {
		p.log.Debug("rejecting frame format", "variant", p.variant, "format", format)
		return false
	}
	native, ok := p.family.NativeSerialConfig(format)
	if !ok {
		p.log.Debug("no native encoding", "family", p.family, "format", format)
		return false
	}

	p.backing.Begin(baud, native)
	p.open = true
	p.baud = baud
	p.format = format
	p.log.Debug("port opened", "baud", baud, "format", format, "native", native)
	return true
}

// Open applies opts on top of DefaultConfig and begins the port.
func (p *SerialPort) Open(opts ...Option) error {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return err
		}
	}
	if !p.Begin(config.BaudRate, config.Format) {
		return fmt.Errorf("%w: %s is %v, cannot use %v", ErrUnsupportedSerialMode, p.name, p.variant, config.Format)
	}
	p.SetTimeout(config.Timeout)
	return nil
}

// End releases the peripheral to idle. Ending a closed port is harmless.
func (p *SerialPort) End() {
	if !p.open {
		return
	}
	p.backing.End()
	p.open = false
	p.log.Debug("port closed")
}

// Ready reports whether the link is usable. On USB CDC ports this is the
// host connection state.
func (p *SerialPort) Ready() bool {
	return p.backing.Ready()
}

// WaitReady polls Ready until it is true or ctx is done.
func (p *SerialPort) WaitReady(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for !p.backing.Ready() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// SetTimeout bounds subsequent blocking reads. Sub-millisecond parts are
// truncated and negative values are treated as zero.
func (p *SerialPort) SetTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	if ms > int64(^uint32(0)) {
		ms = int64(^uint32(0))
	}
	p.timeout = time.Duration(ms) * time.Millisecond
	p.backing.SetTimeout(uint32(ms))
}

// Available returns the number of bytes waiting to be read.
func (p *SerialPort) Available() int {
	return p.backing.Available()
}

// Receive reads one byte. ok is false when nothing is available.
func (p *SerialPort) Receive() (b byte, ok bool) {
	return p.backing.Receive()
}

// ReadBytes reads up to len(buf) bytes, waiting at most the timeout, and
// returns the count read. A short count, including 0, is not an error.
func (p *SerialPort) ReadBytes(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	return p.backing.ReadBytes(buf)
}

// PeekByte returns the next byte without consuming it.
func (p *SerialPort) PeekByte() (b byte, ok bool) {
	return p.backing.PeekByte()
}

// AvailableForWrite returns the free space in the transmit buffer.
func (p *SerialPort) AvailableForWrite() int {
	n := p.backing.AvailableForWrite()
	if p.txCap > 0 && n > p.txCap {
		n = p.txCap
	}
	return max(n, 0)
}

// Send writes one byte and reports whether it was accepted.
func (p *SerialPort) Send(b byte) bool {
	return p.backing.Send(b)
}

// WriteBytes queues buf and returns how many bytes were accepted. Under
// backpressure this may be fewer than len(buf).
func (p *SerialPort) WriteBytes(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	return p.backing.WriteBytes(buf)
}

// Flush blocks until all buffered output has been transmitted.
func (p *SerialPort) Flush() {
	p.backing.Flush()
}

func (p *SerialPort) String() string {
	state := "closed"
	if p.open {
		state = fmt.Sprintf("%d %v", p.baud, p.format)
	}
	return fmt.Sprintf("%s (%v, %s)", p.name, p.variant, state)
}

package sim

import (
	"sync"

	board "github.com/allbin/go-board"
)

// UART simulates one serial peripheral with bounded receive and transmit
// buffers. Transmitted bytes leave the transmit buffer at the end of each
// write unless the line is stalled, and go either to the receive buffer
// (loopback) or to a capture buffer read with Transmitted.
type UART struct {
	mu sync.Mutex

	name  string
	rxCap int
	txCap int
	rx    []byte
	tx    []byte
	wire  []byte

	loopback  bool
	stalled   bool
	connected bool
	overruns  int

	open      bool
	begins    int
	baud      uint32
	config    board.NativeConfig
	timeoutMs uint32

	clock func(ms uint32)
}

var _ board.Peripheral = (*UART)(nil)

// NewUART returns an idle peripheral. Non-positive capacities default to
// 64 bytes.
func NewUART(name string, rxCap, txCap int) *UART {
	if rxCap <= 0 {
		rxCap = 64
	}
	if txCap <= 0 {
		txCap = 64
	}
	return &UART{name: name, rxCap: rxCap, txCap: txCap, connected: true, timeoutMs: 1000}
}

// Name returns the peripheral name.
func (u *UART) Name() string { return u.name }

// SetLoopback wires TX back to RX.
func (u *UART) SetLoopback(on bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loopback = on
}

// SetStalled stops transmission, as if flow control were holding the
// line. Flush still drains the buffer.
func (u *UART) SetStalled(on bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stalled = on
	if !on {
		u.transmit()
	}
}

// SetConnected sets what Ready reports.
func (u *UART) SetConnected(on bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.connected = on
}

// Inject delivers bytes from the far end. Bytes that do not fit are
// dropped and counted as overruns; the accepted count is returned.
func (u *UART) Inject(data []byte) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.receive(data)
}

// Transmitted returns and clears what has gone out on the wire.
func (u *UART) Transmitted() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := u.wire
	u.wire = nil
	return out
}

// Overruns returns how many received bytes were dropped.
func (u *UART) Overruns() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.overruns
}

// Settings returns the configuration of the last Begin and how many times
// Begin has been called.
func (u *UART) Settings() (baud uint32, config board.NativeConfig, begins int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.baud, u.config, u.begins
}

// IsOpen reports whether the peripheral is between Begin and End.
func (u *UART) IsOpen() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.open
}

// TimeoutMs returns the configured read timeout.
func (u *UART) TimeoutMs() uint32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.timeoutMs
}

func (u *UART) receive(data []byte) int {
	free := u.rxCap - len(u.rx)
	n := min(free, len(data))
	u.rx = append(u.rx, data[:n]...)
	u.overruns += len(data) - n
	return n
}

func (u *UART) transmit() {
	if len(u.tx) == 0 {
		return
	}
	if u.loopback {
		u.receive(u.tx)
	} else {
		u.wire = append(u.wire, u.tx...)
	}
	u.tx = u.tx[:0]
}

func (u *UART) Begin(baud uint32, config board.NativeConfig) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.open = true
	u.begins++
	u.baud = baud
	u.config = config
}

func (u *UART) End() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.transmit()
	u.rx = u.rx[:0]
	u.open = false
}

func (u *UART) Ready() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.connected
}

func (u *UART) SetTimeout(ms uint32) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.timeoutMs = ms
}

func (u *UART) Available() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.rx)
}

func (u *UART) Receive() (byte, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.rx) == 0 {
		return 0, false
	}
	b := u.rx[0]
	u.rx = u.rx[1:]
	return b, true
}

// ReadBytes returns what is buffered. When that is short of len(buf) the
// simulated clock is advanced by the timeout, as the real wait would.
func (u *UART) ReadBytes(buf []byte) int {
	u.mu.Lock()
	n := copy(buf, u.rx)
	u.rx = u.rx[n:]
	wait := n < len(buf)
	timeout := u.timeoutMs
	clock := u.clock
	u.mu.Unlock()

	if wait && clock != nil {
		clock(timeout)
	}
	return n
}

func (u *UART) PeekByte() (byte, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.rx) == 0 {
		return 0, false
	}
	return u.rx[0], true
}

func (u *UART) AvailableForWrite() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.txCap - len(u.tx)
}

func (u *UART) Send(b byte) bool {
	return u.WriteBytes([]byte{b}) == 1
}

func (u *UART) WriteBytes(buf []byte) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := min(u.txCap-len(u.tx), len(buf))
	u.tx = append(u.tx, buf[:n]...)
	if !u.stalled {
		u.transmit()
	}
	return n
}

func (u *UART) Flush() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.transmit()
}

package hostserial

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	board "github.com/allbin/go-board"
)

// TTY is a board.Peripheral backed by a host serial device. The device is
// opened by Begin and closed by End.
type TTY struct {
	mu      sync.Mutex
	path    string
	family  board.Family
	fd      int
	txCap   int
	timeout time.Duration
	peeked  []byte
	err     error
	log     *log.Logger
}

var _ board.Peripheral = (*TTY)(nil)

// NewTTY returns a closed peripheral for path. family decides how the
// native frame encodings passed to Begin are decoded; txCap bounds
// AvailableForWrite.
func NewTTY(path string, family board.Family, txCap int, logger *log.Logger) *TTY {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TTY{
		path:    path,
		family:  family,
		fd:      -1,
		txCap:   txCap,
		timeout: time.Second,
		log:     logger,
	}
}

// Path returns the device path.
func (t *TTY) Path() string { return t.path }

// Err returns the error of the last failed Begin, or the I/O error that
// closed the device.
func (t *TTY) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// baudRates maps the standard rates to their termios speed constants.
var baudRates = map[uint32]uint32{
	50:      unix.B50,
	75:      unix.B75,
	110:     unix.B110,
	134:     unix.B134,
	150:     unix.B150,
	200:     unix.B200,
	300:     unix.B300,
	600:     unix.B600,
	1200:    unix.B1200,
	1800:    unix.B1800,
	2400:    unix.B2400,
	4800:    unix.B4800,
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	500000:  unix.B500000,
	576000:  unix.B576000,
	921600:  unix.B921600,
	1000000: unix.B1000000,
	1152000: unix.B1152000,
	1500000: unix.B1500000,
	2000000: unix.B2000000,
	2500000: unix.B2500000,
	3000000: unix.B3000000,
	3500000: unix.B3500000,
	4000000: unix.B4000000,
}

func baudConstant(rate uint32) (uint32, error) {
	speed, ok := baudRates[rate]
	if !ok {
		return 0, fmt.Errorf("%w: %d", board.ErrInvalidBaudRate, rate)
	}
	return speed, nil
}

// frameFlags returns the termios control flags for f.
func frameFlags(f board.FrameFormat) uint32 {
	var cflag uint32
	switch f.DataBits {
	case 5:
		cflag |= unix.CS5
	case 6:
		cflag |= unix.CS6
	case 7:
		cflag |= unix.CS7
	default:
		cflag |= unix.CS8
	}
	if f.StopBits == 2 {
		cflag |= unix.CSTOPB
	}
	switch f.Parity {
	case board.ParityOdd:
		cflag |= unix.PARENB | unix.PARODD
	case board.ParityEven:
		cflag |= unix.PARENB
	}
	return cflag
}

// configure puts fd in raw non-canonical mode with the given speed and
// framing. Reads never block in the kernel; timeouts are handled by poll.
func configure(fd int, baud uint32, f board.FrameFormat) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %w", err)
	}
	speed, err := baudConstant(baud)
	if err != nil {
		return err
	}

	termios.Cflag = frameFlags(f) | unix.CREAD | unix.CLOCAL | speed
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0
	termios.Ispeed = speed
	termios.Ospeed = speed

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %w", err)
	}
	return nil
}

// Begin opens the device if needed and applies the speed and framing.
// Failures are logged and reported by Err and Ready.
func (t *TTY) Begin(baud uint32, config board.NativeConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.err = t.begin(baud, config)
	if t.err != nil {
		t.log.Error("begin failed", "path", t.path, "err", t.err)
		return
	}
	t.log.Debug("device configured", "path", t.path, "baud", baud, "config", config)
}

func (t *TTY) begin(baud uint32, config board.NativeConfig) error {
	sc, ok := t.family.DecodeSerialConfig(config)
	if !ok {
		return fmt.Errorf("%w: native config %v", board.ErrInvalidConfig, config)
	}
	if t.fd < 0 {
		fd, err := unix.Open(t.path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
		if err != nil {
			return openError(t.path, err)
		}
		t.fd = fd
	}
	if err := configure(t.fd, baud, sc.Format()); err != nil {
		t.closeLocked()
		return err
	}
	t.peeked = t.peeked[:0]
	return nil
}

// End closes the device.
func (t *TTY) End() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeLocked()
}

func (t *TTY) closeLocked() {
	if t.fd < 0 {
		return
	}
	if err := unix.Close(t.fd); err != nil {
		t.log.Warn("close failed", "path", t.path, "err", err)
	}
	t.fd = -1
	t.peeked = t.peeked[:0]
}

// fail records an I/O error and closes the device. A vanished USB device
// surfaces here.
func (t *TTY) fail(op string, err error) {
	t.err = fmt.Errorf("%s %s: %w", op, t.path, err)
	t.log.Error("device error", "path", t.path, "op", op, "err", err)
	t.closeLocked()
}

// Ready reports whether the device is open and healthy.
func (t *TTY) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fd >= 0 && t.err == nil
}

func (t *TTY) SetTimeout(ms uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = time.Duration(ms) * time.Millisecond
}

// Available returns the bytes waiting in the kernel input queue.
func (t *TTY) Available() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fd < 0 {
		return 0
	}
	n, err := unix.IoctlGetInt(t.fd, unix.TIOCINQ)
	if err != nil {
		t.fail("TIOCINQ", err)
		return 0
	}
	return n + len(t.peeked)
}

// readNow reads without waiting. It returns 0 when nothing is queued.
func (t *TTY) readNow(buf []byte) int {
	n, err := unix.Read(t.fd, buf)
	switch {
	case n > 0:
		return n
	case err == nil:
		// Zero bytes without EAGAIN is a hangup.
		t.fail("read", io.EOF)
	case !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EINTR):
		t.fail("read", err)
	}
	return 0
}

func (t *TTY) Receive() (byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.peeked) > 0 {
		b := t.peeked[0]
		t.peeked = t.peeked[:0]
		return b, true
	}
	if t.fd < 0 {
		return 0, false
	}
	var one [1]byte
	if t.readNow(one[:]) == 0 {
		return 0, false
	}
	return one[0], true
}

func (t *TTY) PeekByte() (byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.peeked) > 0 {
		return t.peeked[0], true
	}
	if t.fd < 0 {
		return 0, false
	}
	var one [1]byte
	if t.readNow(one[:]) == 0 {
		return 0, false
	}
	t.peeked = append(t.peeked, one[0])
	return one[0], true
}

// ReadBytes reads until buf is full or the timeout passes.
func (t *TTY) ReadBytes(buf []byte) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	if len(buf) > 0 && len(t.peeked) > 0 {
		buf[0] = t.peeked[0]
		t.peeked = t.peeked[:0]
		n = 1
	}

	deadline := time.Now().Add(t.timeout)
	for n < len(buf) && t.fd >= 0 {
		if m := t.readNow(buf[n:]); m > 0 {
			n += m
			continue
		}
		if t.fd < 0 || !t.wait(unix.POLLIN, time.Until(deadline)) {
			break
		}
	}
	return n
}

// wait polls the device for events until d passes.
func (t *TTY) wait(events int16, d time.Duration) bool {
	if d <= 0 {
		return false
	}
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: events}}
	ms := int((d + time.Millisecond - 1) / time.Millisecond)
	n, err := unix.Poll(fds, ms)
	if err != nil {
		return errors.Is(err, unix.EINTR)
	}
	if fds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
		t.fail("poll", io.ErrUnexpectedEOF)
		return false
	}
	return n > 0
}

// AvailableForWrite returns the room left in the kernel output queue,
// assuming a queue of txCap bytes.
func (t *TTY) AvailableForWrite() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fd < 0 {
		return 0
	}
	queued, err := unix.IoctlGetInt(t.fd, unix.TIOCOUTQ)
	if err != nil {
		t.fail("TIOCOUTQ", err)
		return 0
	}
	return max(t.txCap-queued, 0)
}

func (t *TTY) Send(b byte) bool {
	return t.WriteBytes([]byte{b}) == 1
}

// WriteBytes writes buf, waiting up to the timeout for room in the output
// queue.
func (t *TTY) WriteBytes(buf []byte) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	deadline := time.Now().Add(t.timeout)
	for n < len(buf) && t.fd >= 0 {
		m, err := unix.Write(t.fd, buf[n:])
		if m > 0 {
			n += m
			continue
		}
		if err != nil && !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EINTR) {
			t.fail("write", err)
			break
		}
		if !t.wait(unix.POLLOUT, time.Until(deadline)) {
			break
		}
	}
	return n
}

// Flush waits until the output queue has drained.
func (t *TTY) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fd < 0 {
		return
	}
	if err := unix.IoctlSetInt(t.fd, unix.TCSBRK, 1); err != nil {
		t.fail("drain", err)
	}
}

// DiscardInput drops unread input held by the kernel.
func (t *TTY) DiscardInput() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fd < 0 {
		return ErrPortClosed
	}
	t.peeked = t.peeked[:0]
	return unix.IoctlSetInt(t.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// SetDTR drives the DTR line. Most boards with a USB-serial bridge reset
// on a falling DTR edge.
func (t *TTY) SetDTR(state bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fd < 0 {
		return ErrPortClosed
	}
	return setDTR(t.fd, state)
}

func setDTR(fd int, state bool) error {
	if state {
		return unix.IoctlSetInt(fd, unix.TIOCMBIS, unix.TIOCM_DTR)
	}
	return unix.IoctlSetInt(fd, unix.TIOCMBIC, unix.TIOCM_DTR)
}

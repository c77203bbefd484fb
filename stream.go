package board

import (
	"fmt"
	"io"
)

var (
	_ io.Reader = (*SerialPort)(nil)
	_ io.Writer = (*SerialPort)(nil)
)

// Read implements io.Reader on top of ReadBytes. A read that times out
// with nothing received returns ErrReadTimeout.
func (p *SerialPort) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	n := p.backing.ReadBytes(buf)
	if n == 0 {
		return 0, ErrReadTimeout
	}
	return n, nil
}

// Write implements io.Writer on top of WriteBytes. A short write returns
// io.ErrShortWrite; use WriteAll to keep writing through backpressure.
func (p *SerialPort) Write(buf []byte) (int, error) {
	n := p.WriteBytes(buf)
	if n < len(buf) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// ReadImmediately reads whatever is already buffered, up to len(buf),
// without waiting.
func (p *SerialPort) ReadImmediately(buf []byte) int {
	n := min(p.backing.Available(), len(buf))
	for i := 0; i < n; i++ {
		b, ok := p.backing.Receive()
		if !ok {
			return i
		}
		buf[i] = b
	}
	return n
}

// WriteAll writes every byte of buf, retrying short writes. It fails with
// ErrWriteZero if the peripheral stops accepting data.
func (p *SerialPort) WriteAll(buf []byte) error {
	for len(buf) > 0 {
		n := p.backing.WriteBytes(buf)
		if n == 0 {
			return fmt.Errorf("%s: %w with %d bytes left", p.name, ErrWriteZero, len(buf))
		}
		buf = buf[n:]
	}
	return nil
}

// ReadFull fills buf, retrying short reads. It fails with
// io.ErrUnexpectedEOF if a read times out before buf is full.
func (p *SerialPort) ReadFull(buf []byte) error {
	for len(buf) > 0 {
		n := p.backing.ReadBytes(buf)
		if n == 0 {
			return fmt.Errorf("%s: %w with %d bytes missing", p.name, io.ErrUnexpectedEOF, len(buf))
		}
		buf = buf[n:]
	}
	return nil
}

// Printf formats to the port with WriteAll semantics.
func (p *SerialPort) Printf(format string, args ...any) error {
	return p.WriteAll(fmt.Appendf(nil, format, args...))
}

// Println writes args separated by spaces followed by CRLF.
func (p *SerialPort) Println(args ...any) error {
	b := fmt.Appendln(nil, args...)
	b = append(b[:len(b)-1], '\r', '\n')
	return p.WriteAll(b)
}

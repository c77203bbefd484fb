package board

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// SoftSPI is a bit-banged SPI master in mode 0 built on the board's
// digital pins. It satisfies drivers.SPI so TinyGo device drivers can use
// it on any board.
type SoftSPI struct {
	board *Board
	SCK   Pin
	SDO   Pin
	SDI   Pin
	Order BitOrder
}

var _ drivers.SPI = (*SoftSPI)(nil)

// NewSoftSPI configures sck and sdo as outputs, sdi as input and idles the
// clock low.
func (b *Board) NewSoftSPI(sck, sdo, sdi Pin, order BitOrder) *SoftSPI {
	b.SetPinMode(sck, ModeOutput)
	b.SetPinMode(sdo, ModeOutput)
	b.SetPinMode(sdi, ModeInput)
	b.DigitalWrite(sck, Low)
	return &SoftSPI{board: b, SCK: sck, SDO: sdo, SDI: sdi, Order: order}
}

// Transfer shifts b out while shifting one byte in.
func (s *SoftSPI) Transfer(b byte) (byte, error) {
	var in byte
	for i := 0; i < 8; i++ {
		shift := 7 - i
		if s.Order == LSBFirst {
			shift = i
		}

		level := Low
		if b&(1<<shift) != 0 {
			level = High
		}
		s.board.DigitalWrite(s.SDO, level)
		s.board.DigitalWrite(s.SCK, High)
		if s.board.DigitalRead(s.SDI) == High {
			in |= 1 << shift
		}
		s.board.DigitalWrite(s.SCK, Low)
	}
	return in, nil
}

// Tx transfers w while filling r. Either may be nil; otherwise they must
// have the same length.
func (s *SoftSPI) Tx(w, r []byte) error {
	switch {
	case w == nil && r == nil:
		return nil
	case w != nil && r != nil && len(w) != len(r):
		return fmt.Errorf("%w: tx %d bytes, rx %d bytes", ErrInvalidConfig, len(w), len(r))
	}

	n := len(w)
	if w == nil {
		n = len(r)
	}
	for i := 0; i < n; i++ {
		var out byte
		if w != nil {
			out = w[i]
		}
		in, err := s.Transfer(out)
		if err != nil {
			return err
		}
		if r != nil {
			r[i] = in
		}
	}
	return nil
}

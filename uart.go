package board

import "tinygo.org/x/drivers"

var _ drivers.UART = (*SerialPort)(nil)

// Buffered returns the number of received bytes waiting, so a SerialPort
// can be handed to TinyGo device drivers that expect a drivers.UART.
func (p *SerialPort) Buffered() int {
	return p.Available()
}

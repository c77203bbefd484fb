package board

import "errors"

// Predefined error types for robust error handling
var (
	ErrUnsupportedSerialMode = errors.New("serial mode not supported by this port")
	ErrInvalidBaudRate       = errors.New("invalid baud rate")
	ErrInvalidConfig         = errors.New("invalid serial configuration")
	ErrReadTimeout           = errors.New("read operation timed out")
	ErrWriteZero             = errors.New("peripheral accepted zero bytes")

	// Interrupt errors
	ErrInvalidInterruptPin = errors.New("pin has no interrupt line")

	// Board and profile errors
	ErrUnknownBoard   = errors.New("unknown board profile")
	ErrInvalidProfile = errors.New("invalid board profile")
	ErrPortNotFound   = errors.New("serial port not present on this board")
)

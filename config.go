package board

import "time"

// Config holds the settings applied by SerialPort.Open
type Config struct {
	BaudRate uint32
	Format   SerialConfig
	Timeout  time.Duration
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns 9600 baud 8N1 with a one second read timeout
func DefaultConfig() Config {
	return Config{
		BaudRate: 9600,
		Format:   Serial8N1,
		Timeout:  time.Second,
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate uint32) Option {
	return func(c *Config) error {
		if rate == 0 {
			return ErrInvalidBaudRate
		}
		c.BaudRate = rate
		return nil
	}
}

// WithFormat sets the whole frame format at once
func WithFormat(format SerialConfig) Option {
	return func(c *Config) error {
		if !format.Valid() {
			return ErrInvalidConfig
		}
		c.Format = format
		return nil
	}
}

// WithDataBits sets the number of data bits (5, 6, 7, or 8)
func WithDataBits(bits int) Option {
	return func(c *Config) error {
		f := c.Format.Format()
		f.DataBits = bits
		return c.setFrame(f)
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		f := c.Format.Format()
		f.Parity = parity
		return c.setFrame(f)
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		f := c.Format.Format()
		f.StopBits = bits
		return c.setFrame(f)
	}
}

// WithTimeout bounds blocking reads. Zero makes ReadBytes return at once.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 || timeout.Milliseconds() > int64(^uint32(0)) {
			return ErrInvalidConfig
		}
		c.Timeout = timeout
		return nil
	}
}

func (c *Config) setFrame(f FrameFormat) error {
	sc, err := f.SerialConfig()
	if err != nil {
		return err
	}
	c.Format = sc
	return nil
}

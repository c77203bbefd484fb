package board

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.BaudRate != 9600 || c.Format != Serial8N1 || c.Timeout != time.Second {
		t.Errorf("DefaultConfig() = %+v, want 9600 8N1 1s", c)
	}
}

func TestWithTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"0ms (immediate)", 0, false},
		{"150ms", 150 * time.Millisecond, false},
		{"1h", time.Hour, false},
		{"-100ms (negative)", -100 * time.Millisecond, true},
		{"beyond uint32 ms", time.Duration(1<<32) * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithTimeout(tt.timeout)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithTimeout(%v) error = %v, wantErr %v", tt.timeout, err, tt.wantErr)
			}
			if err == nil && config.Timeout != tt.timeout {
				t.Errorf("Timeout = %v, want %v", config.Timeout, tt.timeout)
			}
		})
	}
}

func TestWithBaudRate(t *testing.T) {
	config := DefaultConfig()
	if err := WithBaudRate(0)(&config); !errors.Is(err, ErrInvalidBaudRate) {
		t.Errorf("WithBaudRate(0) error = %v, want %v", err, ErrInvalidBaudRate)
	}
	if err := WithBaudRate(115200)(&config); err != nil || config.BaudRate != 115200 {
		t.Errorf("WithBaudRate(115200) = %d, %v", config.BaudRate, err)
	}
}

func TestFrameOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		want    SerialConfig
		wantErr bool
	}{
		{"defaults", nil, Serial8N1, false},
		{"7 data bits", []Option{WithDataBits(7)}, Serial7N1, false},
		{"even parity", []Option{WithParity(ParityEven)}, Serial8E1, false},
		{"7O2", []Option{WithDataBits(7), WithParity(ParityOdd), WithStopBits(2)}, Serial7O2, false},
		{"format then bits", []Option{WithFormat(Serial5E2), WithDataBits(6)}, Serial6E2, false},
		{"4 data bits", []Option{WithDataBits(4)}, 0, true},
		{"9 data bits", []Option{WithDataBits(9)}, 0, true},
		{"3 stop bits", []Option{WithStopBits(3)}, 0, true},
		{"bad parity", []Option{WithParity(Parity(7))}, 0, true},
		{"bad format", []Option{WithFormat(SerialConfig(24))}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			var err error
			for _, opt := range tt.opts {
				if err = opt(&config); err != nil {
					break
				}
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("error = %v, want %v", err, ErrInvalidConfig)
				}
				return
			}
			if config.Format != tt.want {
				t.Errorf("Format = %v, want %v", config.Format, tt.want)
			}
		})
	}
}

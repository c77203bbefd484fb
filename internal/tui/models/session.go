package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/tui/components"
)

// InputMode is the vim-like editor mode of the connect terminal.
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeInsert
	InputModeCommand
)

func (m InputMode) String() string {
	switch m {
	case InputModeInsert:
		return "INSERT"
	case InputModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// ErrUnknownCommand is returned by Exec for a command it does not know.
var ErrUnknownCommand = errors.New("unknown command")

const readChunk = 256

// Session is the state behind the connect terminal: one board, the port
// being watched and the records seen so far. It is driven from the
// bubbletea update loop, which serializes all port access.
type Session struct {
	board   *board.Board
	port    *board.SerialPort
	records []components.Record
	mode    InputMode
	now     func() time.Time
}

// NewSession watches port, which must belong to b.
func NewSession(b *board.Board, port *board.SerialPort) *Session {
	return &Session{board: b, port: port, now: time.Now}
}

func (s *Session) Board() *board.Board          { return s.board }
func (s *Session) Port() *board.SerialPort      { return s.port }
func (s *Session) Records() []components.Record { return s.records }
func (s *Session) Mode() InputMode              { return s.mode }
func (s *Session) SetMode(m InputMode)          { s.mode = m }
func (s *Session) Clear()                       { s.records = nil }

// Info describes the watched port for the status bar.
func (s *Session) Info() components.PortInfo {
	return components.PortInfo{
		Board:   s.board.Profile().Name(),
		Port:    s.port.Name(),
		Variant: s.port.Variant(),
		Open:    s.port.IsOpen() && s.port.Ready(),
		Baud:    s.port.BaudRate(),
		Format:  s.port.Format(),
	}
}

func (s *Session) add(r components.Record) components.Record {
	r.Timestamp = s.now()
	s.records = append(s.records, r)
	return r
}

// Note records a local message.
func (s *Session) Note(format string, args ...any) components.Record {
	return s.add(components.Record{Dir: components.DirNote, Note: fmt.Sprintf(format, args...)})
}

// Poll drains whatever the port has buffered without blocking.
func (s *Session) Poll() (components.Record, bool) {
	if !s.port.IsOpen() || s.port.Available() == 0 {
		return components.Record{}, false
	}
	buf := make([]byte, readChunk)
	n := s.port.ReadImmediately(buf)
	if n == 0 {
		return components.Record{}, false
	}
	return s.add(components.Record{Dir: components.DirRX, Data: buf[:n]}), true
}

// Send writes data once and records how much the port accepted.
func (s *Session) Send(data []byte) components.Record {
	r := components.Record{Dir: components.DirTX, Data: data}
	switch {
	case !s.port.IsOpen():
		r.Status = components.TxFailed
		r.Note = "port closed"
	default:
		n := s.port.WriteBytes(data)
		switch {
		case n == len(data):
			r.Status = components.TxWritten
		case n == 0:
			r.Status = components.TxFailed
			r.Note = "no room in transmit buffer"
		default:
			r.Status = components.TxPartial
			r.Note = fmt.Sprintf("%d of %d bytes", n, len(data))
		}
	}
	return s.add(r)
}

// Exec runs one ':' command line and returns a short result message.
//
//	begin [baud] [format]   open or reconfigure the port
//	end                     close the port
//	timeout <duration>      set the read timeout
//	flush                   wait for transmission to finish
//	role <role>             watch the port holding a registry role
//	port <name>             watch a port by peripheral name
//	ports                   list the board's ports
func (s *Session) Exec(line string) (string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return "", fmt.Errorf("parse command: %w", err)
	}
	if len(args) == 0 {
		return "", nil
	}
	name, args := strings.ToLower(args[0]), args[1:]

	switch name {
	case "begin", "open":
		return s.begin(args)
	case "end", "close":
		s.port.End()
		return s.port.Name() + " closed", nil
	case "timeout":
		if len(args) != 1 {
			return "", errors.New("usage: timeout <duration>")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return "", fmt.Errorf("timeout: %w", err)
		}
		if d < 0 {
			return "", fmt.Errorf("%w: negative timeout", board.ErrInvalidConfig)
		}
		s.port.SetTimeout(d)
		return "timeout " + d.String(), nil
	case "flush":
		s.port.Flush()
		return "flushed", nil
	case "role":
		if len(args) != 1 {
			return "", errors.New("usage: role <role>")
		}
		role, err := board.ParsePortRole(args[0])
		if err != nil {
			return "", err
		}
		p, ok := s.board.PortFor(role)
		if !ok {
			return "", fmt.Errorf("%w: no %s port on %s", board.ErrPortNotFound, role, s.board.Profile().Name())
		}
		s.port = p
		return "watching " + p.Name(), nil
	case "port":
		if len(args) != 1 {
			return "", errors.New("usage: port <name>")
		}
		p, err := s.board.LookupPort(args[0])
		if err != nil {
			return "", err
		}
		s.port = p
		return "watching " + p.Name(), nil
	case "ports":
		var parts []string
		for _, p := range s.board.Ports() {
			parts = append(parts, fmt.Sprintf("%s(%s)", p.Name(), p.Variant()))
		}
		return strings.Join(parts, " "), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

func (s *Session) begin(args []string) (string, error) {
	if len(args) > 2 {
		return "", errors.New("usage: begin [baud] [format]")
	}
	baud, format := s.port.BaudRate(), s.port.Format()
	if baud == 0 {
		def := board.DefaultConfig()
		baud, format = def.BaudRate, def.Format
	}
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil || v == 0 {
			return "", fmt.Errorf("%w: %q", board.ErrInvalidBaudRate, args[0])
		}
		baud = uint32(v)
	}
	if len(args) > 1 {
		c, err := board.ParseSerialConfig(args[1])
		if err != nil {
			return "", err
		}
		format = c
	}
	if !s.port.Begin(baud, format) {
		return "", fmt.Errorf("%w: %s is %v, cannot use %v",
			board.ErrUnsupportedSerialMode, s.port.Name(), s.port.Variant(), format)
	}
	if !s.port.Ready() {
		return "", fmt.Errorf("%s did not come up", s.port.Name())
	}
	return fmt.Sprintf("%s open at %d %v", s.port.Name(), baud, format), nil
}

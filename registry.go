package board

import (
	"fmt"
	"strings"
)

// PortRole is a well-known serial port role. Several roles may name the
// same peripheral.
type PortRole uint8

const (
	// RoleConsole is the default "Serial" port. Every profile has one.
	RoleConsole PortRole = iota
	RoleUSBVirtual
	RoleMonitor
	// RoleLinuxBridge is the port wired to the companion processor on
	// bridge boards.
	RoleLinuxBridge
	RoleHardware
	RoleHardwareOpen
)

var portRoleNames = [...]string{
	RoleConsole:      "console",
	RoleUSBVirtual:   "usb-virtual",
	RoleMonitor:      "monitor",
	RoleLinuxBridge:  "linux-bridge",
	RoleHardware:     "hardware",
	RoleHardwareOpen: "hardware-open",
}

// AllPortRoles returns every role in declaration order.
func AllPortRoles() []PortRole {
	roles := make([]PortRole, len(portRoleNames))
	for i := range roles {
		roles[i] = PortRole(i)
	}
	return roles
}

func (r PortRole) String() string {
	if int(r) < len(portRoleNames) {
		return portRoleNames[r]
	}
	return fmt.Sprintf("PortRole(%d)", uint8(r))
}

// ParsePortRole accepts the names printed by String. "default" is an alias
// for the console role.
func ParsePortRole(s string) (PortRole, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "default" {
		return RoleConsole, nil
	}
	for i, name := range portRoleNames {
		if v == name || v == strings.ReplaceAll(name, "-", "") {
			return PortRole(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown port role %q", ErrInvalidProfile, s)
}

// PortFor returns the singleton port holding role, or false when the board
// has no such port.
func (b *Board) PortFor(role PortRole) (*SerialPort, bool) {
	b.checkISR("PortFor")
	name, ok := b.profile.RolePort(role)
	if !ok {
		return nil, false
	}
	p, ok := b.byName[name]
	return p, ok
}

// Console returns the default serial port.
func (b *Board) Console() (*SerialPort, bool) { return b.PortFor(RoleConsole) }

// USBVirtual returns the native USB virtual serial port.
func (b *Board) USBVirtual() (*SerialPort, bool) { return b.PortFor(RoleUSBVirtual) }

// Monitor returns the port the IDE serial monitor talks to.
func (b *Board) Monitor() (*SerialPort, bool) { return b.PortFor(RoleMonitor) }

// LinuxBridge returns the port connected to the companion Linux processor.
func (b *Board) LinuxBridge() (*SerialPort, bool) { return b.PortFor(RoleLinuxBridge) }

// Hardware returns the primary hardware serial port.
func (b *Board) Hardware() (*SerialPort, bool) { return b.PortFor(RoleHardware) }

// HardwareOpen returns the hardware port free for application use.
func (b *Board) HardwareOpen() (*SerialPort, bool) { return b.PortFor(RoleHardwareOpen) }

// Port returns the port with the given peripheral name.
func (b *Board) Port(name string) (*SerialPort, bool) {
	b.checkISR("Port")
	p, ok := b.byName[name]
	return p, ok
}

// LookupPort resolves name as a role name first and a peripheral name
// second.
func (b *Board) LookupPort(name string) (*SerialPort, error) {
	if role, err := ParsePortRole(name); err == nil {
		if p, ok := b.PortFor(role); ok {
			return p, nil
		}
		return nil, fmt.Errorf("%w: no %v port on %s", ErrPortNotFound, role, b.profile.Name())
	}
	if p, ok := b.Port(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrPortNotFound, name, b.profile.Name())
}

// Ports returns every present port in profile order.
func (b *Board) Ports() []*SerialPort {
	return append([]*SerialPort(nil), b.ports...)
}

// Roles returns the roles held by the named peripheral.
func (b *Board) Roles(name string) []PortRole {
	var roles []PortRole
	for _, role := range AllPortRoles() {
		if n, ok := b.profile.RolePort(role); ok && n == name {
			roles = append(roles, role)
		}
	}
	return roles
}

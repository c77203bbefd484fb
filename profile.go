package board

import (
	"fmt"
	"maps"
	"slices"
)

// PortSpec describes one serial peripheral on a board.
type PortSpec struct {
	Name     string
	Variant  Variant
	Roles    []PortRole
	RXBuffer int
	TXBuffer int
}

// ProfileDef is the unresolved description of a board, as written in Go
// source or loaded from a profile file.
type ProfileDef struct {
	Name        string
	Family      Family
	MCU         string
	DigitalPins int

	AnalogInputs []Pin
	// AnalogOutputs lists DAC pins. When empty, AnalogOutputCount pins are
	// taken from the front of AnalogInputs instead.
	AnalogOutputs     []Pin
	AnalogOutputCount int

	PWM        []Pin
	Interrupts map[Pin]uint8
	// AnalogRefs overrides the family's reference table.
	AnalogRefs map[AnalogReference]uint8

	Ports []PortSpec
}

// Profile is the resolved, immutable configuration of one board.
type Profile struct {
	name        string
	family      Family
	mcu         string
	digitalPins int
	pins        PinTable
	refs        map[AnalogReference]uint8
	ports       []PortSpec
	roles       map[PortRole]string
}

// NewProfile validates def and resolves it into a Profile.
func NewProfile(def ProfileDef) (Profile, error) {
	if def.Name == "" {
		return Profile{}, fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}
	if def.Family < FamilyAVR || def.Family > FamilySAMD {
		return Profile{}, fmt.Errorf("%w: %s: unknown family %v", ErrInvalidProfile, def.Name, def.Family)
	}
	if def.DigitalPins < 0 || def.DigitalPins > 256 {
		return Profile{}, fmt.Errorf("%w: %s: digital pin count %d out of range", ErrInvalidProfile, def.Name, def.DigitalPins)
	}

	outputs := def.AnalogOutputs
	if len(outputs) == 0 && def.AnalogOutputCount > 0 {
		n := min(def.AnalogOutputCount, len(def.AnalogInputs))
		outputs = def.AnalogInputs[:n]
	}
	pins, err := NewPinTable(def.AnalogInputs, outputs, def.PWM, def.Interrupts)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", def.Name, err)
	}

	refs := def.AnalogRefs
	if refs == nil {
		refs = def.Family.DefaultAnalogReferences()
	}

	p := Profile{
		name:        def.Name,
		family:      def.Family,
		mcu:         def.MCU,
		digitalPins: def.DigitalPins,
		pins:        pins,
		refs:        maps.Clone(refs),
		roles:       make(map[PortRole]string),
	}

	names := make(map[string]bool, len(def.Ports))
	for _, spec := range def.Ports {
		if spec.Name == "" {
			return Profile{}, fmt.Errorf("%w: %s: port without a name", ErrInvalidProfile, def.Name)
		}
		if names[spec.Name] {
			return Profile{}, fmt.Errorf("%w: %s: port %s declared twice", ErrInvalidProfile, def.Name, spec.Name)
		}
		names[spec.Name] = true

		if spec.Variant < VariantUART || spec.Variant > VariantUSBCDC {
			return Profile{}, fmt.Errorf("%w: %s: port %s has unknown variant %v", ErrInvalidProfile, def.Name, spec.Name, spec.Variant)
		}
		if spec.RXBuffer < 0 || spec.TXBuffer < 0 {
			return Profile{}, fmt.Errorf("%w: %s: port %s has negative buffer size", ErrInvalidProfile, def.Name, spec.Name)
		}
		for _, role := range spec.Roles {
			if prev, dup := p.roles[role]; dup {
				return Profile{}, fmt.Errorf("%w: %s: role %v held by both %s and %s", ErrInvalidProfile, def.Name, role, prev, spec.Name)
			}
			p.roles[role] = spec.Name
		}
		spec.Roles = slices.Clone(spec.Roles)
		p.ports = append(p.ports, spec)
	}
	if _, ok := p.roles[RoleConsole]; !ok {
		return Profile{}, fmt.Errorf("%w: %s: no port holds the console role", ErrInvalidProfile, def.Name)
	}
	return p, nil
}

// MustProfile is NewProfile for built-in definitions.
func MustProfile(def ProfileDef) Profile {
	p, err := NewProfile(def)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Profile) Name() string     { return p.name }
func (p Profile) Family() Family   { return p.family }
func (p Profile) MCU() string      { return p.mcu }
func (p Profile) DigitalPins() int { return p.digitalPins }

// Pins returns the capability tables of the board.
func (p Profile) Pins() *PinTable { return &p.pins }

// Ports returns the serial peripherals in declaration order.
func (p Profile) Ports() []PortSpec {
	out := make([]PortSpec, len(p.ports))
	for i, spec := range p.ports {
		spec.Roles = slices.Clone(spec.Roles)
		out[i] = spec
	}
	return out
}

// PortSpec returns the peripheral called name.
func (p Profile) PortSpec(name string) (PortSpec, bool) {
	for _, spec := range p.ports {
		if spec.Name == name {
			spec.Roles = slices.Clone(spec.Roles)
			return spec, true
		}
	}
	return PortSpec{}, false
}

// RolePort returns the name of the peripheral holding role.
func (p Profile) RolePort(role PortRole) (string, bool) {
	name, ok := p.roles[role]
	return name, ok
}

// NativeReference translates ref to the board's analogReference code.
func (p Profile) NativeReference(ref AnalogReference) (uint8, bool) {
	code, ok := p.refs[ref]
	return code, ok
}

// AnalogReferences returns the references the board supports, in
// enumeration order.
func (p Profile) AnalogReferences() []AnalogReference {
	return slices.Sorted(maps.Keys(p.refs))
}

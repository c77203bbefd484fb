package board

import (
	"fmt"
	"maps"
	"slices"
)

func pinRange(from, to Pin) []Pin {
	pins := make([]Pin, 0, int(to-from)+1)
	for p := int(from); p <= int(to); p++ {
		pins = append(pins, Pin(p))
	}
	return pins
}

func identityLines(pins []Pin) map[Pin]uint8 {
	lines := make(map[Pin]uint8, len(pins))
	for _, p := range pins {
		lines[p] = uint8(p)
	}
	return lines
}

var builtinProfiles = map[string]Profile{
	"uno": MustProfile(ProfileDef{
		Name:         "uno",
		Family:       FamilyAVR,
		MCU:          "ATmega328P",
		DigitalPins:  20,
		AnalogInputs: pinRange(14, 19),
		PWM:          []Pin{3, 5, 6, 9, 10, 11},
		Interrupts:   map[Pin]uint8{2: 0, 3: 1},
		Ports: []PortSpec{
			{Name: "Serial", Variant: VariantUSART, Roles: []PortRole{RoleConsole, RoleMonitor, RoleHardware}, RXBuffer: 64, TXBuffer: 64},
		},
	}),

	"mega2560": MustProfile(ProfileDef{
		Name:         "mega2560",
		Family:       FamilyAVR,
		MCU:          "ATmega2560",
		DigitalPins:  70,
		AnalogInputs: pinRange(54, 69),
		PWM:          append(pinRange(2, 13), 44, 45, 46),
		Interrupts:   map[Pin]uint8{2: 0, 3: 1, 21: 2, 20: 3, 19: 4, 18: 5},
		// No plain INTERNAL on the 2560; it selects the 1.1V reference.
		AnalogRefs: map[AnalogReference]uint8{
			RefDefault:      1,
			RefExternal:     0,
			RefInternal:     2,
			RefInternal1v1:  2,
			RefInternal2v56: 3,
		},
		Ports: []PortSpec{
			{Name: "Serial", Variant: VariantUSART, Roles: []PortRole{RoleConsole, RoleMonitor, RoleHardware}, RXBuffer: 64, TXBuffer: 64},
			{Name: "Serial1", Variant: VariantUSART, Roles: []PortRole{RoleHardwareOpen}, RXBuffer: 64, TXBuffer: 64},
			{Name: "Serial2", Variant: VariantUSART, RXBuffer: 64, TXBuffer: 64},
			{Name: "Serial3", Variant: VariantUSART, RXBuffer: 64, TXBuffer: 64},
		},
	}),

	"leonardo": MustProfile(ProfileDef{
		Name:         "leonardo",
		Family:       FamilyAVR,
		MCU:          "ATmega32U4",
		DigitalPins:  31,
		AnalogInputs: pinRange(18, 29),
		PWM:          []Pin{3, 5, 6, 9, 10, 11, 13},
		Interrupts:   map[Pin]uint8{3: 0, 2: 1, 0: 2, 1: 3, 7: 4},
		Ports: []PortSpec{
			{Name: "Serial", Variant: VariantUSBCDC, Roles: []PortRole{RoleConsole, RoleUSBVirtual, RoleMonitor}, RXBuffer: 64, TXBuffer: 64},
			{Name: "Serial1", Variant: VariantUSART, Roles: []PortRole{RoleHardware, RoleHardwareOpen, RoleLinuxBridge}, RXBuffer: 64, TXBuffer: 64},
		},
	}),

	"due": MustProfile(ProfileDef{
		Name:          "due",
		Family:        FamilySAM,
		MCU:           "AT91SAM3X8E",
		DigitalPins:   66,
		AnalogInputs:  pinRange(54, 65),
		AnalogOutputs: []Pin{66, 67},
		PWM:           pinRange(2, 13),
		Interrupts:    identityLines(pinRange(0, 65)),
		Ports: []PortSpec{
			{Name: "Serial", Variant: VariantUART, Roles: []PortRole{RoleConsole, RoleMonitor, RoleHardware}, RXBuffer: 128, TXBuffer: 128},
			{Name: "Serial1", Variant: VariantUSART, Roles: []PortRole{RoleHardwareOpen}, RXBuffer: 128, TXBuffer: 128},
			{Name: "Serial2", Variant: VariantUSART, RXBuffer: 128, TXBuffer: 128},
			{Name: "Serial3", Variant: VariantUSART, RXBuffer: 128, TXBuffer: 128},
			{Name: "SerialUSB", Variant: VariantUSBCDC, Roles: []PortRole{RoleUSBVirtual}, RXBuffer: 512, TXBuffer: 512},
		},
	}),

	"zero": MustProfile(ProfileDef{
		Name:          "zero",
		Family:        FamilySAMD,
		MCU:           "ATSAMD21G18",
		DigitalPins:   20,
		AnalogInputs:  pinRange(14, 19),
		AnalogOutputs: []Pin{14},
		PWM:           []Pin{3, 4, 5, 6, 8, 9, 10, 11, 12, 13},
		Interrupts:    identityLines(slices.DeleteFunc(pinRange(0, 19), func(p Pin) bool { return p == 4 })),
		Ports: []PortSpec{
			{Name: "Serial", Variant: VariantUSART, Roles: []PortRole{RoleConsole, RoleMonitor}, RXBuffer: 256, TXBuffer: 256},
			{Name: "Serial1", Variant: VariantUSART, Roles: []PortRole{RoleHardware, RoleHardwareOpen}, RXBuffer: 256, TXBuffer: 256},
			{Name: "SerialUSB", Variant: VariantUSBCDC, Roles: []PortRole{RoleUSBVirtual}, RXBuffer: 256, TXBuffer: 64},
		},
	}),

	"mkrzero": MustProfile(ProfileDef{
		Name:              "mkrzero",
		Family:            FamilySAMD,
		MCU:               "ATSAMD21G18",
		DigitalPins:       22,
		AnalogInputs:      pinRange(15, 21),
		AnalogOutputCount: 1,
		PWM:               append(pinRange(0, 8), 10, 18, 19),
		Interrupts:        identityLines([]Pin{0, 1, 4, 5, 6, 7, 8, 9, 16, 17}),
		Ports: []PortSpec{
			{Name: "SerialUSB", Variant: VariantUSBCDC, Roles: []PortRole{RoleConsole, RoleUSBVirtual, RoleMonitor}, RXBuffer: 256, TXBuffer: 64},
			{Name: "Serial1", Variant: VariantUSART, Roles: []PortRole{RoleHardware, RoleHardwareOpen}, RXBuffer: 256, TXBuffer: 256},
		},
	}),
}

// LookupProfile returns the built-in profile called name.
func LookupProfile(name string) (Profile, error) {
	p, ok := builtinProfiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownBoard, name)
	}
	return p, nil
}

// ProfileNames lists the built-in profiles in sorted order.
func ProfileNames() []string {
	return slices.Sorted(maps.Keys(builtinProfiles))
}

// ActiveProfile returns the profile selected at build time with a
// board_<name> build tag. Without a tag the uno profile is used.
func ActiveProfile() Profile {
	return builtinProfiles[activeProfileName]
}

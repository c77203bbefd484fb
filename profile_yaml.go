package board

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"
)

type profileFile struct {
	Name          string `yaml:"name"`
	Family        string `yaml:"family"`
	MCU           string `yaml:"mcu"`
	DigitalPins   int    `yaml:"digital_pins"`
	AnalogInputs  []Pin  `yaml:"analog_inputs"`
	AnalogOutputs struct {
		Pins  []Pin `yaml:"pins"`
		Count int   `yaml:"count"`
	} `yaml:"analog_outputs"`
	PWM              []Pin            `yaml:"pwm"`
	Interrupts       map[Pin]uint8    `yaml:"interrupts"`
	AnalogReferences map[string]uint8 `yaml:"analog_references"`
	Ports            []portFile       `yaml:"ports"`
}

type portFile struct {
	Name     string   `yaml:"name"`
	Variant  string   `yaml:"variant"`
	Roles    []string `yaml:"roles"`
	RXBuffer int      `yaml:"rx_buffer"`
	TXBuffer int      `yaml:"tx_buffer"`
}

// LoadProfile decodes a YAML board profile.
func LoadProfile(r io.Reader) (Profile, error) {
	var f profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Profile{}, fmt.Errorf("%w: empty profile", ErrInvalidProfile)
		}
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	family, err := ParseFamily(f.Family)
	if err != nil {
		return Profile{}, err
	}
	def := ProfileDef{
		Name:              f.Name,
		Family:            family,
		MCU:               f.MCU,
		DigitalPins:       f.DigitalPins,
		AnalogInputs:      f.AnalogInputs,
		AnalogOutputs:     f.AnalogOutputs.Pins,
		AnalogOutputCount: f.AnalogOutputs.Count,
		PWM:               f.PWM,
		Interrupts:        f.Interrupts,
	}

	if len(f.AnalogReferences) > 0 {
		def.AnalogRefs = make(map[AnalogReference]uint8, len(f.AnalogReferences))
		for name, code := range f.AnalogReferences {
			ref, err := ParseAnalogReference(name)
			if err != nil {
				return Profile{}, err
			}
			def.AnalogRefs[ref] = code
		}
	}

	for _, pf := range f.Ports {
		variant, err := ParseVariant(pf.Variant)
		if err != nil {
			return Profile{}, fmt.Errorf("port %s: %w", pf.Name, err)
		}
		spec := PortSpec{Name: pf.Name, Variant: variant, RXBuffer: pf.RXBuffer, TXBuffer: pf.TXBuffer}
		for _, r := range pf.Roles {
			role, err := ParsePortRole(r)
			if err != nil {
				return Profile{}, fmt.Errorf("port %s: %w", pf.Name, err)
			}
			spec.Roles = append(spec.Roles, role)
		}
		def.Ports = append(def.Ports, spec)
	}

	return NewProfile(def)
}

// LoadProfileFile reads a YAML board profile from path.
func LoadProfileFile(path string) (Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to open profile: %w", err)
	}
	defer file.Close()

	p, err := LoadProfile(file)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadProfileDir loads every *.yaml and *.yml file in dir, sorted by name.
func LoadProfileDir(dir string) ([]Profile, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	profiles := make([]Profile, 0, len(paths))
	for _, path := range paths {
		p, err := LoadProfileFile(path)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

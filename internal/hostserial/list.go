package hostserial

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	board "github.com/allbin/go-board"
)

// devDir and sysfsRoot are variables so tests can point them at a fake
// tree.
var (
	devDir    = "/dev"
	sysfsRoot = "/sys"
)

// serialDevice matches communication-capable tty names. Virtual terminals,
// the console and pseudo-terminals never match.
var serialDevice = regexp.MustCompile(`^tty(USB|ACM|S|AMA|mxc|O|SAC|THS)\d+$`)

// ListPorts returns the serial devices on the system, sorted.
func ListPorts() ([]string, error) {
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		if !serialDevice.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(devDir, entry.Name())
		if isCharacterDevice(path) {
			ports = append(ports, path)
		}
	}
	slices.Sort(ports)
	return ports, nil
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// PortInfo describes a host serial device. USB fields are empty for
// devices that are not USB.
type PortInfo struct {
	Name        string
	Path        string
	Description string
	Variant     board.Variant

	VendorID        string
	ProductID       string
	SerialNumber    string
	Manufacturer    string
	Product         string
	InterfaceNumber string
	BusNumber       string
	DeviceNumber    string
}

// IsUSB reports whether USB metadata was found.
func (i PortInfo) IsUSB() bool {
	return i.BusNumber != "" && i.DeviceNumber != ""
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)
	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: getPortDescription(name),
		Variant:     variantFor(name),
	}
	if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
		enrichUSBInfo(info)
	}
	return info, nil
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}

// enrichUSBInfo fills the USB fields from sysfs. The tty's device link
// points at the USB interface; its parent is the USB device.
func enrichUSBInfo(info *PortInfo) {
	link := filepath.Join(sysfsRoot, "class", "tty", info.Name, "device")
	iface, err := filepath.EvalSymlinks(link)
	if err != nil {
		return
	}
	// ttyUSB devices hang one level below the interface.
	if filepath.Base(iface) == info.Name {
		iface = filepath.Dir(iface)
	}
	dev := filepath.Dir(iface)

	info.InterfaceNumber = readSysfsFile(filepath.Join(iface, "bInterfaceNumber"))
	info.VendorID = readSysfsFile(filepath.Join(dev, "idVendor"))
	info.ProductID = readSysfsFile(filepath.Join(dev, "idProduct"))
	info.SerialNumber = readSysfsFile(filepath.Join(dev, "serial"))
	info.Manufacturer = readSysfsFile(filepath.Join(dev, "manufacturer"))
	info.Product = readSysfsFile(filepath.Join(dev, "product"))
	info.BusNumber = readSysfsFile(filepath.Join(dev, "busnum"))
	info.DeviceNumber = readSysfsFile(filepath.Join(dev, "devnum"))
}

// readSysfsFile returns the trimmed contents of path, or "" on error.
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

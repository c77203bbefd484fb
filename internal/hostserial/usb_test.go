package hostserial

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadSysfsFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		content  *string
		expected string
	}{
		{"normal file", ptr("1234\n"), "1234"},
		{"file with spaces", ptr("  test value  \n"), "test value"},
		{"nonexistent file", nil, ""},
		{"empty file", ptr(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, tt.name)
			if tt.content != nil {
				if err := os.WriteFile(testFile, []byte(*tt.content), 0644); err != nil {
					t.Fatalf("Setup failed: %v", err)
				}
			}
			if result := readSysfsFile(testFile); result != tt.expected {
				t.Errorf("readSysfsFile() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func ptr(s string) *string { return &s }

// fakeSysfs builds a sysfs tree for one USB tty and points sysfsRoot at
// it. linkToTTY selects the ttyUSB layout, where the class link points
// below the interface directory.
func fakeSysfs(t *testing.T, name string, linkToTTY bool) {
	t.Helper()
	root := t.TempDir()
	orig := sysfsRoot
	sysfsRoot = root
	t.Cleanup(func() { sysfsRoot = orig })

	devicePath := filepath.Join(root, "devices", "usb5", "5-2.3.1")
	interfacePath := filepath.Join(devicePath, "5-2.3.1:1.0")
	target := interfacePath
	if linkToTTY {
		target = filepath.Join(interfacePath, name)
	}
	classPath := filepath.Join(root, "class", "tty", name)
	for _, dir := range []string{target, classPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	deviceFiles := map[string]string{
		"idVendor":     "0403",
		"idProduct":    "6010",
		"serial":       "FT123456",
		"manufacturer": "FTDI",
		"product":      "FT2232C Dual USB-UART",
		"busnum":       "5",
		"devnum":       "7",
	}
	for filename, content := range deviceFiles {
		if err := os.WriteFile(filepath.Join(devicePath, filename), []byte(content+"\n"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", filename, err)
		}
	}
	if err := os.WriteFile(filepath.Join(interfacePath, "bInterfaceNumber"), []byte("00\n"), 0644); err != nil {
		t.Fatalf("Failed to write interface number: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(classPath, "device")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}
}

func TestEnrichUSBInfo(t *testing.T) {
	for _, name := range []string{"ttyUSB0", "ttyACM0"} {
		t.Run(name, func(t *testing.T) {
			fakeSysfs(t, name, name == "ttyUSB0")

			info := &PortInfo{Name: name, Path: "/dev/" + name}
			enrichUSBInfo(info)

			tests := []struct {
				name     string
				got      string
				expected string
			}{
				{"VendorID", info.VendorID, "0403"},
				{"ProductID", info.ProductID, "6010"},
				{"SerialNumber", info.SerialNumber, "FT123456"},
				{"InterfaceNumber", info.InterfaceNumber, "00"},
				{"BusNumber", info.BusNumber, "5"},
				{"DeviceNumber", info.DeviceNumber, "7"},
				{"Manufacturer", info.Manufacturer, "FTDI"},
				{"Product", info.Product, "FT2232C Dual USB-UART"},
			}
			for _, tt := range tests {
				if tt.got != tt.expected {
					t.Errorf("%s = %q, expected %q", tt.name, tt.got, tt.expected)
				}
			}
			if !info.IsUSB() {
				t.Error("IsUSB() = false")
			}
		})
	}
}

func TestEnrichUSBInfoGracefulFailure(t *testing.T) {
	info := &PortInfo{Name: "ttyUSB999", Path: "/dev/ttyUSB999"}
	enrichUSBInfo(info)

	if info.VendorID != "" || info.ProductID != "" || info.SerialNumber != "" {
		t.Errorf("USB fields populated for a missing device: %+v", info)
	}
	if info.IsUSB() {
		t.Error("IsUSB() = true for a missing device")
	}
}

func TestUSBPath(t *testing.T) {
	tests := []struct {
		bus      string
		device   string
		expected string
	}{
		{"5", "7", "005/007"},
		{"1", "2", "001/002"},
		{"123", "456", "123/456"},
		{"1", "10", "001/010"},
		{"x", "1", "x/1"},
	}

	for _, tt := range tests {
		if got := usbPath(tt.bus, tt.device); got != tt.expected {
			t.Errorf("usbPath(%q, %q) = %q, expected %q", tt.bus, tt.device, got, tt.expected)
		}
	}
}

func TestResetUSBDeviceBySerialNotFound(t *testing.T) {
	err := ResetUSBDeviceBySerial(context.Background(), "NONEXISTENT_SERIAL")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Expected ErrDeviceNotFound, got: %v", err)
	}
}

func TestResetUSBDeviceNotUSB(t *testing.T) {
	err := ResetUSBDevice(context.Background(), "/dev/null")
	if !errors.Is(err, ErrUSBInfoNotAvailable) {
		t.Errorf("Expected ErrUSBInfoNotAvailable, got: %v", err)
	}
}

func TestIsUSBResetAvailable(t *testing.T) {
	t.Logf("usbreset available: %v", IsUSBResetAvailable())
}

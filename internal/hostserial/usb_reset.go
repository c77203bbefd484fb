package hostserial

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	board "github.com/allbin/go-board"
)

// Time for a device to re-enumerate after a reset.
const reenumerateDelay = 2 * time.Second

// ResetUSBDevice performs a USB-level reset of the device behind portPath.
// It needs the usbreset utility from usbutils and usually root.
func ResetUSBDevice(ctx context.Context, portPath string) error {
	info, err := GetPortInfo(portPath)
	if err != nil {
		return fmt.Errorf("failed to get port info: %w", err)
	}
	if !info.IsUSB() {
		return ErrUSBInfoNotAvailable
	}
	if !IsUSBResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	cmd := exec.CommandContext(ctx, "usbreset", usbPath(info.BusNumber, info.DeviceNumber))
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, string(output))
	}
	return sleep(ctx, reenumerateDelay)
}

// ResetUSBDeviceBySerial resets the USB device with the given serial
// number. Serial numbers survive re-enumeration where paths do not.
func ResetUSBDeviceBySerial(ctx context.Context, serialNumber string) error {
	ports, err := ListPorts()
	if err != nil {
		return err
	}
	for _, portPath := range ports {
		info, err := GetPortInfo(portPath)
		if err != nil {
			continue
		}
		if info.SerialNumber == serialNumber {
			return ResetUSBDevice(ctx, portPath)
		}
	}
	return fmt.Errorf("%w: device with serial %s not found", ErrDeviceNotFound, serialNumber)
}

// IsUSBResetAvailable checks if usbreset utility is available in PATH
func IsUSBResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}

// usbPath formats bus and device numbers as usbreset expects, BBB/DDD.
func usbPath(bus, device string) string {
	b, errB := strconv.Atoi(bus)
	d, errD := strconv.Atoi(device)
	if errB != nil || errD != nil {
		return bus + "/" + device
	}
	return fmt.Sprintf("%03d/%03d", b, d)
}

// PulseReset drops DTR for width and raises it again. Boards with a
// USB-serial bridge wire DTR to the MCU reset line through a capacitor.
func PulseReset(ctx context.Context, t *TTY, width time.Duration) error {
	if !t.Ready() {
		t.Begin(9600, mustNative(t.family, board.Serial8N1))
		if err := t.Err(); err != nil {
			return err
		}
		defer t.End()
	}
	if err := t.SetDTR(false); err != nil {
		return fmt.Errorf("failed to drop DTR: %w", err)
	}
	if err := sleep(ctx, width); err != nil {
		return err
	}
	if err := t.SetDTR(true); err != nil {
		return fmt.Errorf("failed to raise DTR: %w", err)
	}
	return nil
}

// TouchReset opens the device at 1200 baud and closes it again. Boards
// with native USB take this as a request to enter the bootloader.
func TouchReset(ctx context.Context, t *TTY) error {
	t.End()
	t.Begin(1200, mustNative(t.family, board.Serial8N1))
	if err := t.Err(); err != nil {
		return err
	}
	if err := t.SetDTR(false); err != nil {
		t.End()
		return fmt.Errorf("failed to drop DTR: %w", err)
	}
	t.End()
	return sleep(ctx, reenumerateDelay)
}

func mustNative(f board.Family, c board.SerialConfig) board.NativeConfig {
	n, ok := f.NativeSerialConfig(c)
	if !ok {
		panic(fmt.Sprintf("hostserial: no native encoding of %v for %v", c, f))
	}
	return n
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

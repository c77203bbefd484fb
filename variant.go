package board

import (
	"fmt"
	"strings"
)

// Variant identifies the kind of peripheral backing a SerialPort.
type Variant uint8

const (
	// VariantUART is a plain UART limited to 8 data bits and 1 stop bit.
	VariantUART Variant = iota + 1
	// VariantUSART is a USART that frames 5 to 8 data bits in silicon.
	VariantUSART
	// VariantUSBCDC is a USB CDC virtual port; framing is negotiated in
	// firmware.
	VariantUSBCDC
)

func (v Variant) String() string {
	switch v {
	case VariantUART:
		return "uart"
	case VariantUSART:
		return "usart"
	case VariantUSBCDC:
		return "usb-cdc"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// ParseVariant accepts "uart", "usart" and "usb-cdc" (or "usb", "cdc").
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uart":
		return VariantUART, nil
	case "usart":
		return VariantUSART, nil
	case "usb-cdc", "usbcdc", "usb", "cdc":
		return VariantUSBCDC, nil
	}
	return 0, fmt.Errorf("%w: unknown serial variant %q", ErrInvalidProfile, s)
}

// Accepts reports whether a port of this variant can be programmed with c.
// Variants this package does not know reject everything.
func (v Variant) Accepts(c SerialConfig) bool {
	if !c.Valid() {
		return false
	}
	switch v {
	case VariantUSBCDC, VariantUSART:
		return true
	case VariantUART:
		return c == Serial8N1 || c == Serial8E1 || c == Serial8O1
	default:
		return false
	}
}

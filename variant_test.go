package board

import "testing"

func TestVariantAccepts(t *testing.T) {
	uartLegal := map[SerialConfig]bool{
		Serial8N1: true,
		Serial8E1: true,
		Serial8O1: true,
	}

	for _, c := range AllSerialConfigs() {
		if got := VariantUSBCDC.Accepts(c); !got {
			t.Errorf("VariantUSBCDC.Accepts(%v) = false, want true", c)
		}
		if got := VariantUSART.Accepts(c); !got {
			t.Errorf("VariantUSART.Accepts(%v) = false, want true", c)
		}
		if got, want := VariantUART.Accepts(c), uartLegal[c]; got != want {
			t.Errorf("VariantUART.Accepts(%v) = %v, want %v", c, got, want)
		}
	}
}

func TestVariantAcceptsUnknown(t *testing.T) {
	for _, v := range []Variant{0, 4, 0xFF} {
		for _, c := range AllSerialConfigs() {
			if v.Accepts(c) {
				t.Errorf("Variant(%d).Accepts(%v) = true, want false", v, c)
			}
		}
	}
	if VariantUSART.Accepts(SerialConfig(24)) {
		t.Errorf("VariantUSART.Accepts(24) = true, want false")
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"uart", VariantUART, false},
		{"USART", VariantUSART, false},
		{"usb-cdc", VariantUSBCDC, false},
		{"cdc", VariantUSBCDC, false},
		{"spi", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package ltc2983

import "testing"

func TestDecodeStatus(t *testing.T) {
	tests := []struct {
		b    byte
		want ConversionStatus
	}{
		{0x00, ConversionStatus{}},
		{0x40, ConversionStatus{Done: true}},
		{0x81, ConversionStatus{Start: true, Channel: 1}},
		{0x41, ConversionStatus{Done: true, Channel: 1}},
		{0x54, ConversionStatus{Done: true, Channel: 20}},
	}
	for _, tt := range tests {
		if got := decodeStatus(tt.b); got != tt.want {
			t.Errorf("decodeStatus(%#02x) = %+v, want %+v", tt.b, got, tt.want)
		}
	}
}

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		name        string
		b           [4]byte
		wantCelsius float64
		wantFaults  Fault
		wantValid   bool
	}{
		{
			name:        "valid positive",
			b:           [4]byte{0x01, 0x00, 0x92, 0x00}, // +36.5°C
			wantCelsius: 36.5,
			wantValid:   true,
		},
		{
			name:        "valid negative",
			b:           [4]byte{0x01, 0xFF, 0xFF, 0x00}, // -0.25°C
			wantCelsius: -0.25,
			wantValid:   true,
		},
		{
			name:       "open circuit keeps payload",
			b:          [4]byte{0x80, 0x00, 0x00, 0x00},
			wantFaults: FaultOpenCircuit,
		},
		{
			name:        "soft fault keeps payload and validity",
			b:           [4]byte{0x11, 0x00, 0x92, 0x00},
			wantCelsius: 36.5,
			wantFaults:  FaultColdJunctionSoft,
			wantValid:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeResult(tt.b)
			if c := got.Temperature.Celsius(); c != tt.wantCelsius {
				t.Errorf("temperature = %g°C, want %g°C", c, tt.wantCelsius)
			}
			if got.Faults != tt.wantFaults {
				t.Errorf("faults = %#02x, want %#02x", got.Faults, tt.wantFaults)
			}
			if got.Valid != tt.wantValid {
				t.Errorf("valid = %t, want %t", got.Valid, tt.wantValid)
			}
		})
	}
}

func TestFaultString(t *testing.T) {
	if got := Fault(0).String(); got != "none" {
		t.Errorf("Fault(0) = %q", got)
	}
	f := FaultOpenCircuit | FaultUnderRange
	if got := f.String(); got != "open circuit, under range" {
		t.Errorf("String() = %q", got)
	}
	if !f.Has(FaultOpenCircuit) || f.Has(FaultOverRange) {
		t.Error("Has() misreports flags")
	}
}

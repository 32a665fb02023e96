package ltc2983

import (
	"errors"
	"math"
	"testing"
)

const (
	idealityTolerance   = 1.0 / (1 << 19) // half a Q4.18 LSB
	resistanceTolerance = 1.0 / 2048      // half a Q17.10 LSB
)

func TestThermocoupleEncode(t *testing.T) {
	tests := []struct {
		name    string
		probe   Thermocouple
		channel Channel
		want    uint32
	}{
		{
			name:    "K single-ended CJ2 OC10uA",
			probe:   Thermocouple{Type: TypeK, ColdJunction: 2, SingleEnded: true, OpenCircuitCurrent: OCCurrent10uA},
			channel: 1,
			want:    0x11100000,
		},
		{
			name:    "J differential no CJ",
			probe:   Thermocouple{Type: TypeJ},
			channel: 3,
			want:    0x08000000,
		},
		{
			name:    "B CJ20 OC1mA",
			probe:   Thermocouple{Type: TypeB, ColdJunction: 20, OpenCircuitCurrent: OCCurrent1mA},
			channel: 1,
			want:    0x451C0000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeAssignment(tt.channel, tt.probe)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("word = %#08x, want %#08x", got, tt.want)
			}
		})
	}
}

func TestThermocoupleRoundTrip(t *testing.T) {
	kinds := []ThermocoupleType{TypeJ, TypeK, TypeE, TypeN, TypeR, TypeS, TypeT, TypeB}
	currents := []OCCurrent{OCCurrentExternal, OCCurrent10uA, OCCurrent100uA, OCCurrent500uA, OCCurrent1mA}
	for _, kind := range kinds {
		for cj := Channel(0); cj <= 20; cj++ {
			if cj == 1 {
				continue // configured on channel 1 below
			}
			for _, se := range []bool{false, true} {
				for _, oc := range currents {
					p := Thermocouple{Type: kind, ColdJunction: cj, SingleEnded: se, OpenCircuitCurrent: oc}
					word, err := EncodeAssignment(1, p)
					if err != nil {
						t.Fatalf("encode %+v: %v", p, err)
					}
					got, err := DecodeAssignment(word)
					if err != nil {
						t.Fatalf("decode %#08x: %v", word, err)
					}
					if got != p {
						t.Fatalf("round trip %+v -> %#08x -> %+v", p, word, got)
					}
				}
			}
		}
	}
}

func TestThermocoupleColdJunctionValidation(t *testing.T) {
	if _, err := NewThermocouple(TypeK, 21); !errors.Is(err, ErrInvalidColdJunction) {
		t.Errorf("cold junction 21: %v, want ErrInvalidColdJunction", err)
	}
	if _, err := NewThermocouple(TypeK, -1); !errors.Is(err, ErrInvalidColdJunction) {
		t.Errorf("cold junction -1: %v, want ErrInvalidColdJunction", err)
	}
	if _, err := NewThermocouple(TypeK, 0); err != nil {
		t.Errorf("cold junction 0 (compensation off): %v", err)
	}

	p, err := NewThermocouple(TypeK, 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EncodeAssignment(5, p); !errors.Is(err, ErrInvalidColdJunction) {
		t.Errorf("self-referential cold junction: %v, want ErrInvalidColdJunction", err)
	}
	if _, err := EncodeAssignment(6, p); err != nil {
		t.Errorf("cold junction on another channel: %v", err)
	}
}

func TestEncodeChannelBounds(t *testing.T) {
	p, err := NewDiode(1.0, Excitation20uA, Readings3)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []Channel{0, 21} {
		if _, err := EncodeAssignment(c, p); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("channel %d: %v, want ErrInvalidChannel", c, err)
		}
	}
	for _, c := range []Channel{1, 20} {
		if _, err := EncodeAssignment(c, p); err != nil {
			t.Errorf("channel %d: %v", c, err)
		}
	}
}

func TestDiodeValidation(t *testing.T) {
	tests := []struct {
		name  string
		probe Diode
		ok    bool
	}{
		{"ideality zero", Diode{Ideality: 0, Excitation: Excitation10uA}, false},
		{"ideality negative", Diode{Ideality: -3, Excitation: Excitation10uA}, false},
		{"ideality just above max", Diode{Ideality: 10.0001, Excitation: Excitation10uA}, false},
		{"ideality one", Diode{Ideality: 1.0, Excitation: Excitation10uA}, true},
		{"ideality max", Diode{Ideality: 10.0, Excitation: Excitation10uA}, true},
		{"excitation code 7", Diode{Ideality: 1.0, Excitation: ExcitationCurrent(7)}, false},
		{"readings code 3", Diode{Ideality: 1.0, Readings: ReadingCount(3)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDiode(tt.probe.Ideality, tt.probe.Excitation, tt.probe.Readings)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrParameterOutOfRange) {
				t.Errorf("got %v, want ErrParameterOutOfRange", err)
			}
		})
	}
}

func TestDiodeEncode(t *testing.T) {
	p, err := NewDiode(1.0, Excitation20uA, Readings3)
	if err != nil {
		t.Fatal(err)
	}
	word, err := EncodeAssignment(1, p)
	if err != nil {
		t.Fatal(err)
	}
	if want := uint32(0xE1840000); word != want {
		t.Errorf("word = %#08x, want %#08x", word, want)
	}
}

func TestDiodeRoundTrip(t *testing.T) {
	currents := []ExcitationCurrent{
		Excitation10uA, Excitation20uA, Excitation40uA, Excitation80uA,
		Excitation160uA, Excitation320uA, Excitation640uA,
	}
	for _, ideality := range []float64{0.5, 1.0, 1.004, 3.7, 10.0} {
		for _, exc := range currents {
			for _, rd := range []ReadingCount{Readings1, Readings2, Readings3} {
				p, err := NewDiode(ideality, exc, rd)
				if err != nil {
					t.Fatal(err)
				}
				word, err := EncodeAssignment(1, p)
				if err != nil {
					t.Fatal(err)
				}
				decoded, err := DecodeAssignment(word)
				if err != nil {
					t.Fatalf("decode %#08x: %v", word, err)
				}
				got, ok := decoded.(Diode)
				if !ok {
					t.Fatalf("decoded %T, want Diode", decoded)
				}
				if math.Abs(got.Ideality-ideality) > idealityTolerance {
					t.Errorf("ideality %g -> %g exceeds tolerance", ideality, got.Ideality)
				}
				if got.Excitation != exc || got.Readings != rd {
					t.Errorf("round trip %+v -> %+v", p, got)
				}
			}
		}
	}
}

func TestSenseResistorValidation(t *testing.T) {
	for _, ohms := range []float64{0, -1, 131072, 1e9} {
		if _, err := NewSenseResistor(ohms); !errors.Is(err, ErrParameterOutOfRange) {
			t.Errorf("ohms %g: %v, want ErrParameterOutOfRange", ohms, err)
		}
	}
	for _, ohms := range []float64{0.001, 2000, 131071.999} {
		if _, err := NewSenseResistor(ohms); err != nil {
			t.Errorf("ohms %g: %v", ohms, err)
		}
	}
}

func TestSenseResistorEncode(t *testing.T) {
	p, err := NewSenseResistor(2000)
	if err != nil {
		t.Fatal(err)
	}
	word, err := EncodeAssignment(2, p)
	if err != nil {
		t.Fatal(err)
	}
	if want := uint32(0xE81F4000); word != want {
		t.Errorf("word = %#08x, want %#08x", word, want)
	}
}

func TestSenseResistorRoundTrip(t *testing.T) {
	for _, ohms := range []float64{0.25, 1.0, 100.5, 2000.0, 131071.999} {
		p, err := NewSenseResistor(ohms)
		if err != nil {
			t.Fatal(err)
		}
		word, err := EncodeAssignment(1, p)
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := DecodeAssignment(word)
		if err != nil {
			t.Fatalf("decode %#08x: %v", word, err)
		}
		got, ok := decoded.(SenseResistor)
		if !ok {
			t.Fatalf("decoded %T, want SenseResistor", decoded)
		}
		if math.Abs(got.Ohms-ohms) > resistanceTolerance {
			t.Errorf("ohms %g -> %g exceeds tolerance", ohms, got.Ohms)
		}
	}
}

func TestDecodeUnassigned(t *testing.T) {
	if _, err := DecodeAssignment(0); !errors.Is(err, ErrChannelUnassigned) {
		t.Errorf("got %v, want ErrChannelUnassigned", err)
	}
}

func TestDecodeUnsupportedSelectors(t *testing.T) {
	selectors := []uint32{
		selCustomThermocouple,
		uint32(RTDPT100),
		uint32(RTDNI120),
		selCustomRTD,
		uint32(ThermistorYSI400),
		selCustomSteinhart,
		selDirectADC,
		31,
	}
	for _, sel := range selectors {
		if _, err := DecodeAssignment(sel << selectorShift); !errors.Is(err, ErrUnsupportedProbe) {
			t.Errorf("selector %d: %v, want ErrUnsupportedProbe", sel, err)
		}
	}
}

func TestDecodeCustomThermocouplePointer(t *testing.T) {
	// A standard thermocouple selector with a nonzero custom-data pointer is
	// a word this driver never writes.
	word := uint32(TypeK)<<selectorShift | 0x123
	if _, err := DecodeAssignment(word); !errors.Is(err, ErrUnsupportedProbe) {
		t.Errorf("got %v, want ErrUnsupportedProbe", err)
	}
}

func TestUnsupportedProbeEncode(t *testing.T) {
	probes := []Probe{
		RTD{Type: RTDPT100},
		Thermistor{Type: ThermistorYSI400},
		CustomThermocouple{},
		DirectADC{SingleEnded: true},
	}
	for _, p := range probes {
		if _, err := EncodeAssignment(1, p); !errors.Is(err, ErrUnsupportedProbe) {
			t.Errorf("%T: %v, want ErrUnsupportedProbe", p, err)
		}
	}
}

package ltc2983

import (
	"strings"

	"periph.io/x/conn/v3/physic"
)

// ConversionStatus is a snapshot of the command/status register. It is read
// fresh on every Status call and never cached.
type ConversionStatus struct {
	// Start mirrors the start bit; the device clears it when the requested
	// conversion begins.
	Start bool
	// Done is set once the conversion has finished and the result register is
	// valid.
	Done bool
	// Channel is the channel the status applies to, 0 if no conversion was
	// ever requested.
	Channel Channel
}

func decodeStatus(b byte) ConversionStatus {
	return ConversionStatus{
		Start:   b&statusStart != 0,
		Done:    b&statusDone != 0,
		Channel: Channel(b & statusChannelMask),
	}
}

// Fault is the bitmask of hardware fault conditions reported alongside a
// conversion result. A fault qualifies the reading, it does not replace it:
// the numeric temperature is still decoded and returned.
type Fault uint8

const (
	// FaultOpenCircuit reports a broken or missing sensor (sensor hard
	// fault).
	FaultOpenCircuit Fault = 0x80
	// FaultADCHardRange reports an ADC input outside its hard limits.
	FaultADCHardRange Fault = 0x40
	// FaultColdJunctionHard reports a hard fault on the cold-junction
	// channel.
	FaultColdJunctionHard Fault = 0x20
	// FaultColdJunctionSoft reports an out-of-range cold-junction reading.
	FaultColdJunctionSoft Fault = 0x10
	// FaultOverRange reports a temperature above the probe's valid range.
	FaultOverRange Fault = 0x08
	// FaultUnderRange reports a temperature below the probe's valid range.
	FaultUnderRange Fault = 0x04
	// FaultADCRange reports a soft ADC out-of-range condition.
	FaultADCRange Fault = 0x02

	// resultValid is bit 0 of the fault byte. It flags a usable result and is
	// reported through ConversionResult.Valid, not through Faults.
	resultValid Fault = 0x01
)

// Has reports whether flag is set in f.
func (f Fault) Has(flag Fault) bool { return f&flag != 0 }

func (f Fault) String() string {
	if f == 0 {
		return "none"
	}
	var s []string
	for _, bit := range []struct {
		mask Fault
		name string
	}{
		{FaultOpenCircuit, "open circuit"},
		{FaultADCHardRange, "hard ADC out of range"},
		{FaultColdJunctionHard, "cold junction hard fault"},
		{FaultColdJunctionSoft, "cold junction soft fault"},
		{FaultOverRange, "over range"},
		{FaultUnderRange, "under range"},
		{FaultADCRange, "ADC out of range"},
	} {
		if f.Has(bit.mask) {
			s = append(s, bit.name)
		}
	}
	return strings.Join(s, ", ")
}

// ConversionResult is one decoded conversion result.
type ConversionResult struct {
	Temperature physic.Temperature
	Faults      Fault
	// Valid mirrors the device's result-valid flag. Hard faults clear it.
	Valid bool
}

func decodeResult(b [4]byte) ConversionResult {
	// The 24-bit payload is two's complement with an LSB of 1/1024 °C.
	raw := int32(uint32(b[1])<<16|uint32(b[2])<<8|uint32(b[3])) << 8 >> 8
	t := physic.Temperature(int64(raw)*1000000000/1024) + physic.ZeroCelsius
	return ConversionResult{
		Temperature: t,
		Faults:      Fault(b[0]) &^ resultValid,
		Valid:       Fault(b[0]).Has(resultValid),
	}
}

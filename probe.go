package ltc2983

import (
	"fmt"
	"math"
)

// Probe is a validated sensor configuration for one channel. The concrete
// types are Thermocouple, Diode, SenseResistor and, for the probe families
// this driver does not implement yet, RTD, Thermistor, CustomThermocouple and
// DirectADC.
//
// Probes are plain values; the zero value of each type is invalid and the
// NewXxx constructors should be preferred so parameter errors surface before
// any bus traffic.
type Probe interface {
	// assignmentWord encodes the probe for the given channel. It revalidates
	// the parameters so a hand-built struct can never reach the bus
	// malformed.
	assignmentWord(c Channel) (uint32, error)
}

// EncodeAssignment validates p against channel c and encodes it as the 32-bit
// channel-assignment word the device expects at the channel's assignment
// address. Encoding is total: every valid probe maps to exactly one word.
func EncodeAssignment(c Channel, p Probe) (uint32, error) {
	if err := checkChannel(c); err != nil {
		return 0, err
	}
	return p.assignmentWord(c)
}

// DecodeAssignment is the inverse of EncodeAssignment, used for read-back
// verification. Selector codes of probe families this driver does not
// implement fail with ErrUnsupportedProbe; an all-zero selector means the
// channel was never assigned and fails with ErrChannelUnassigned.
//
// Fixed-point fields round-trip within half an encoding LSB: 2⁻¹⁹ for the
// diode ideality factor (Q4.18), 1/2048 Ω for the sense-resistor value
// (Q17.10). All other fields round-trip exactly.
func DecodeAssignment(word uint32) (Probe, error) {
	sel := word >> selectorShift
	switch {
	case sel == selUnassigned:
		return nil, fmt.Errorf("ltc2983: %w", ErrChannelUnassigned)
	case sel >= uint32(TypeJ) && sel <= uint32(TypeB):
		return decodeThermocouple(word)
	case sel == selDiode:
		return decodeDiode(word)
	case sel == selSenseResistor:
		return decodeSenseResistor(word)
	default:
		return nil, fmt.Errorf("ltc2983: selector code %d: %w", sel, ErrUnsupportedProbe)
	}
}

// Thermocouple configures a channel as a standard thermocouple.
//
// ColdJunction names the channel measuring the cold-junction temperature; 0
// disables cold-junction compensation. It must not be the channel the
// thermocouple itself is assigned to.
type Thermocouple struct {
	Type               ThermocoupleType
	ColdJunction       Channel
	SingleEnded        bool
	OpenCircuitCurrent OCCurrent
}

// NewThermocouple returns a differential thermocouple configuration with the
// open-circuit check disabled. Adjust SingleEnded and OpenCircuitCurrent on
// the returned value as needed.
func NewThermocouple(t ThermocoupleType, coldJunction Channel) (Thermocouple, error) {
	p := Thermocouple{Type: t, ColdJunction: coldJunction}
	if err := p.validate(); err != nil {
		return Thermocouple{}, err
	}
	return p, nil
}

func (p Thermocouple) validate() error {
	if p.Type < TypeJ || p.Type > TypeB {
		return fmt.Errorf("ltc2983: thermocouple type %d: %w", p.Type, ErrParameterOutOfRange)
	}
	if p.ColdJunction != 0 && !p.ColdJunction.Valid() {
		return fmt.Errorf("ltc2983: cold-junction channel %d: %w", p.ColdJunction, ErrInvalidColdJunction)
	}
	switch p.OpenCircuitCurrent {
	case OCCurrentExternal, OCCurrent10uA, OCCurrent100uA, OCCurrent500uA, OCCurrent1mA:
	default:
		return fmt.Errorf("ltc2983: open-circuit current code %d: %w", p.OpenCircuitCurrent, ErrParameterOutOfRange)
	}
	return nil
}

func (p Thermocouple) assignmentWord(c Channel) (uint32, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	if p.ColdJunction == c {
		return 0, fmt.Errorf("ltc2983: cold-junction channel %d references itself: %w", c, ErrInvalidColdJunction)
	}
	w := uint32(p.Type) << selectorShift
	w |= uint32(p.ColdJunction) << coldJunctionShift
	if p.SingleEnded {
		w |= singleEndedBit
	}
	w |= uint32(p.OpenCircuitCurrent) << ocCurrentShift
	// Bits 17:12 are reserved, bits 11:0 point at custom thermocouple data.
	// Both stay zero for the standard types.
	return w, nil
}

func decodeThermocouple(word uint32) (Thermocouple, error) {
	if word&customPointerMask != 0 {
		return Thermocouple{}, fmt.Errorf("ltc2983: custom thermocouple data pointer %#03x: %w",
			word&customPointerMask, ErrUnsupportedProbe)
	}
	if word&reservedTCMask != 0 {
		return Thermocouple{}, fmt.Errorf("ltc2983: reserved thermocouple bits set: %w", ErrUnsupportedProbe)
	}
	p := Thermocouple{
		Type:               ThermocoupleType(word >> selectorShift),
		ColdJunction:       Channel((word >> coldJunctionShift) & 0x1F),
		SingleEnded:        word&singleEndedBit != 0,
		OpenCircuitCurrent: OCCurrent((word >> ocCurrentShift) & ocCurrentMask),
	}
	if err := p.validate(); err != nil {
		return Thermocouple{}, err
	}
	return p, nil
}

// Diode configures a channel as a semiconductor diode sensor.
//
// Ideality is the diode ideality factor, valid over (0, 10]. It is stored as
// an unsigned Q4.18 fixed-point value, so the worst-case rounding error is
// 2⁻¹⁹.
type Diode struct {
	Ideality   float64
	Excitation ExcitationCurrent
	Readings   ReadingCount
}

func NewDiode(ideality float64, excitation ExcitationCurrent, readings ReadingCount) (Diode, error) {
	p := Diode{Ideality: ideality, Excitation: excitation, Readings: readings}
	if err := p.validate(); err != nil {
		return Diode{}, err
	}
	return p, nil
}

func (p Diode) validate() error {
	if !(p.Ideality > 0 && p.Ideality <= 10) {
		return fmt.Errorf("ltc2983: ideality factor %g not in (0, 10]: %w", p.Ideality, ErrParameterOutOfRange)
	}
	if math.Round(p.Ideality*idealityScale) < 1 {
		return fmt.Errorf("ltc2983: ideality factor %g below encoding resolution: %w", p.Ideality, ErrParameterOutOfRange)
	}
	if p.Excitation > Excitation640uA {
		return fmt.Errorf("ltc2983: excitation current code %d: %w", p.Excitation, ErrParameterOutOfRange)
	}
	if p.Readings > Readings3 {
		return fmt.Errorf("ltc2983: reading count code %d: %w", p.Readings, ErrParameterOutOfRange)
	}
	return nil
}

func (p Diode) assignmentWord(Channel) (uint32, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	w := uint32(selDiode) << selectorShift
	w |= uint32(p.Excitation) << excitationShift
	w |= uint32(p.Readings) << readingsShift
	w |= uint32(math.Round(p.Ideality*idealityScale)) & idealityMask
	return w, nil
}

func decodeDiode(word uint32) (Diode, error) {
	exc := ExcitationCurrent((word >> excitationShift) & excitationMask)
	if exc > Excitation640uA {
		return Diode{}, fmt.Errorf("ltc2983: excitation current code %d: %w", exc, ErrParameterOutOfRange)
	}
	rd := ReadingCount((word >> readingsShift) & readingsMask)
	if rd > Readings3 {
		return Diode{}, fmt.Errorf("ltc2983: reading count code %d: %w", rd, ErrParameterOutOfRange)
	}
	p := Diode{
		Ideality:   float64(word&idealityMask) / idealityScale,
		Excitation: exc,
		Readings:   rd,
	}
	if err := p.validate(); err != nil {
		return Diode{}, err
	}
	return p, nil
}

// SenseResistor configures a channel as the sense resistor other channels
// ratio against.
//
// Ohms is stored as an unsigned Q17.10 fixed-point value, so the largest
// representable resistance is (2²⁷−1)/1024 Ω and the worst-case rounding
// error is 1/2048 Ω.
type SenseResistor struct {
	Ohms float64
}

func NewSenseResistor(ohms float64) (SenseResistor, error) {
	p := SenseResistor{Ohms: ohms}
	if err := p.validate(); err != nil {
		return SenseResistor{}, err
	}
	return p, nil
}

func (p SenseResistor) validate() error {
	if !(p.Ohms > 0) {
		return fmt.Errorf("ltc2983: sense resistance %g must be positive: %w", p.Ohms, ErrParameterOutOfRange)
	}
	code := math.Round(p.Ohms * resistanceScale)
	if code < 1 || code > resistanceMask {
		return fmt.Errorf("ltc2983: sense resistance %g not representable in Q17.10: %w", p.Ohms, ErrParameterOutOfRange)
	}
	return nil
}

func (p SenseResistor) assignmentWord(Channel) (uint32, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	w := uint32(selSenseResistor) << selectorShift
	w |= uint32(math.Round(p.Ohms*resistanceScale)) & resistanceMask
	return w, nil
}

func decodeSenseResistor(word uint32) (SenseResistor, error) {
	p := SenseResistor{Ohms: float64(word&resistanceMask) / resistanceScale}
	if err := p.validate(); err != nil {
		return SenseResistor{}, err
	}
	return p, nil
}

// RTD stands in for the RTD probe families the device supports but this
// driver does not encode yet.
type RTD struct {
	Type RTDType
}

func (p RTD) assignmentWord(Channel) (uint32, error) {
	return 0, fmt.Errorf("ltc2983: RTD channels: %w", ErrUnsupportedProbe)
}

// Thermistor stands in for the thermistor probe families the device supports
// but this driver does not encode yet.
type Thermistor struct {
	Type ThermistorType
}

func (p Thermistor) assignmentWord(Channel) (uint32, error) {
	return 0, fmt.Errorf("ltc2983: thermistor channels: %w", ErrUnsupportedProbe)
}

// CustomThermocouple stands in for table-driven thermocouples, which this
// driver does not encode yet.
type CustomThermocouple struct{}

func (p CustomThermocouple) assignmentWord(Channel) (uint32, error) {
	return 0, fmt.Errorf("ltc2983: custom thermocouple channels: %w", ErrUnsupportedProbe)
}

// DirectADC stands in for raw ADC channels, which this driver does not encode
// yet.
type DirectADC struct {
	SingleEnded bool
}

func (p DirectADC) assignmentWord(Channel) (uint32, error) {
	return 0, fmt.Errorf("ltc2983: direct ADC channels: %w", ErrUnsupportedProbe)
}

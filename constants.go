package ltc2983

// SPI instruction bytes. Every transaction starts with one of these followed
// by a 16-bit big-endian register address.
const (
	spiWrite byte = 0x02
	spiRead  byte = 0x03
)

// Register map, per the LTC2983 datasheet.
const (
	statusReg       uint16 = 0x000
	resultBase      uint16 = 0x010 // 4 bytes per channel, CH1..CH20
	globalConfigReg uint16 = 0x0F0
	channelMaskReg  uint16 = 0x0F4 // 32-bit multi-conversion mask
	assignmentBase  uint16 = 0x200 // 4 bytes per channel, CH1..CH20

	channelStride uint16 = 4
)

// Status register bits. Bits 4:0 hold the channel the status applies to.
const (
	statusStart       byte = 0x80
	statusDone        byte = 0x40
	statusChannelMask byte = 0x1F
)

// Channel-assignment word fields. The 5-bit selector in bits 31:27 names the
// probe family; the remaining layout depends on the family.
const (
	selectorShift     = 27
	coldJunctionShift = 22
	singleEndedBit    = 1 << 21
	ocCurrentShift    = 18
	ocCurrentMask     = 0x7
	reservedTCMask    = 0x3F << 12
	customPointerMask = 0xFFF

	excitationShift = 24
	excitationMask  = 0x7
	readingsShift   = 22
	readingsMask    = 0x3
	idealityMask    = 0x3FFFFF // unsigned Q4.18
	idealityScale   = 1 << 18

	resistanceMask  = 0x7FFFFFF // unsigned Q17.10
	resistanceScale = 1 << 10
)

// Probe-family selector codes outside the typed enums below.
const (
	selUnassigned         = 0
	selCustomThermocouple = 9
	selCustomRTD          = 18
	selCustomSteinhart    = 26
	selCustomThermistor   = 27
	selDiode              = 28
	selSenseResistor      = 29
	selDirectADC          = 30
)

// ThermocoupleType selects the thermocouple standard. The values are the
// device's selector codes.
type ThermocoupleType uint8

const (
	TypeJ ThermocoupleType = iota + 1
	TypeK
	TypeE
	TypeN
	TypeR
	TypeS
	TypeT
	TypeB
)

func (t ThermocoupleType) String() string {
	switch t {
	case TypeJ:
		return "J"
	case TypeK:
		return "K"
	case TypeE:
		return "E"
	case TypeN:
		return "N"
	case TypeR:
		return "R"
	case TypeS:
		return "S"
	case TypeT:
		return "T"
	case TypeB:
		return "B"
	}
	return "unknown"
}

// OCCurrent selects the open-circuit check current for a thermocouple.
// OCCurrentExternal disables the check. The values are the device's
// sensor-configuration codes.
type OCCurrent uint8

const (
	OCCurrentExternal OCCurrent = 0
	OCCurrent10uA     OCCurrent = 4
	OCCurrent100uA    OCCurrent = 5
	OCCurrent500uA    OCCurrent = 6
	OCCurrent1mA      OCCurrent = 7
)

// ExcitationCurrent selects the diode excitation current.
type ExcitationCurrent uint8

const (
	Excitation10uA ExcitationCurrent = iota
	Excitation20uA
	Excitation40uA
	Excitation80uA
	Excitation160uA
	Excitation320uA
	Excitation640uA
)

// ReadingCount selects how many readings the device averages per diode
// conversion.
type ReadingCount uint8

const (
	Readings1 ReadingCount = iota
	Readings2
	Readings3
)

// Rejection selects the ADC notch filter written to the global configuration
// register.
type Rejection uint8

const (
	Reject50And60Hz Rejection = iota
	Reject60Hz
	Reject50Hz
)

// RTDType names the RTD standards the device knows. The values are the
// device's selector codes. RTD channels are not implemented yet; configuring
// one fails with ErrUnsupportedProbe.
type RTDType uint8

const (
	RTDPT10 RTDType = iota + 10
	RTDPT50
	RTDPT100
	RTDPT200
	RTDPT500
	RTDPT1000
	RTD1000
	RTDNI120
)

// ThermistorType names the thermistor curves the device knows. The values are
// the device's selector codes. Thermistor channels are not implemented yet;
// configuring one fails with ErrUnsupportedProbe.
type ThermistorType uint8

const (
	Thermistor44004 ThermistorType = iota + 19
	Thermistor44005
	Thermistor44007
	Thermistor44006
	Thermistor44008
	ThermistorYSI400
	ThermistorSpectrum
)

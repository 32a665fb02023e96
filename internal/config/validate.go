package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
//
// Probe parameter ranges are checked again, bit-exactly, by the driver when
// the assignment word is built; validation here catches structural mistakes
// before any hardware is touched.
func Validate(cfg *Config) error {
	if len(cfg.Channels) == 0 {
		return fmt.Errorf("no channels defined")
	}

	owner := make(map[int]int)

	for i, ch := range cfg.Channels {
		if ch.Channel < 1 || ch.Channel > 20 {
			return fmt.Errorf("entry %d: channel %d out of range 1..20", i, ch.Channel)
		}
		if prev, exists := owner[ch.Channel]; exists {
			return fmt.Errorf("channel %d assigned by entries %d and %d", ch.Channel, prev, i)
		}
		owner[ch.Channel] = i

		switch ch.Probe {
		case "thermocouple":
			if _, err := parseThermocoupleType(ch.Type); err != nil {
				return fmt.Errorf("channel %d: %v", ch.Channel, err)
			}
			if _, err := parseOCCurrent(ch.OpenCircuitCurrent); err != nil {
				return fmt.Errorf("channel %d: %v", ch.Channel, err)
			}
			if ch.ColdJunction < 0 || ch.ColdJunction > 20 {
				return fmt.Errorf("channel %d: cold_junction %d out of range 0..20", ch.Channel, ch.ColdJunction)
			}
			if ch.ColdJunction == ch.Channel {
				return fmt.Errorf("channel %d: cold_junction references itself", ch.Channel)
			}
		case "diode":
			if ch.Ideality <= 0 {
				return fmt.Errorf("channel %d: ideality must be positive", ch.Channel)
			}
			if _, err := parseExcitation(ch.Excitation); err != nil {
				return fmt.Errorf("channel %d: %v", ch.Channel, err)
			}
			if ch.Readings < 0 || ch.Readings > 3 {
				return fmt.Errorf("channel %d: readings %d out of range 1..3", ch.Channel, ch.Readings)
			}
		case "sense_resistor":
			if ch.Ohms <= 0 {
				return fmt.Errorf("channel %d: ohms must be positive", ch.Channel)
			}
		default:
			return fmt.Errorf("channel %d: unknown probe kind %q", ch.Channel, ch.Probe)
		}
	}

	return nil
}

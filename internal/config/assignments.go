package config

import (
	"fmt"
	"strings"

	"github.com/mikesmitty/ltc2983"
)

// Assignment pairs a channel with its constructed probe configuration.
type Assignment struct {
	Channel ltc2983.Channel
	Probe   ltc2983.Probe
}

// Assignments builds driver probe values from the config, in file order.
func (c *Config) Assignments() ([]Assignment, error) {
	out := make([]Assignment, 0, len(c.Channels))
	for _, ch := range c.Channels {
		probe, err := buildProbe(ch)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch.Channel, err)
		}
		out = append(out, Assignment{
			Channel: ltc2983.Channel(ch.Channel),
			Probe:   probe,
		})
	}
	return out, nil
}

func buildProbe(ch ChannelConfig) (ltc2983.Probe, error) {
	switch ch.Probe {
	case "thermocouple":
		kind, err := parseThermocoupleType(ch.Type)
		if err != nil {
			return nil, err
		}
		oc, err := parseOCCurrent(ch.OpenCircuitCurrent)
		if err != nil {
			return nil, err
		}
		p, err := ltc2983.NewThermocouple(kind, ltc2983.Channel(ch.ColdJunction))
		if err != nil {
			return nil, err
		}
		p.SingleEnded = ch.SingleEnded
		p.OpenCircuitCurrent = oc
		return p, nil
	case "diode":
		exc, err := parseExcitation(ch.Excitation)
		if err != nil {
			return nil, err
		}
		readings := ltc2983.Readings1
		switch ch.Readings {
		case 0, 1:
		case 2:
			readings = ltc2983.Readings2
		case 3:
			readings = ltc2983.Readings3
		default:
			return nil, fmt.Errorf("readings %d out of range 1..3", ch.Readings)
		}
		return ltc2983.NewDiode(ch.Ideality, exc, readings)
	case "sense_resistor":
		return ltc2983.NewSenseResistor(ch.Ohms)
	}
	return nil, fmt.Errorf("unknown probe kind %q", ch.Probe)
}

func parseThermocoupleType(s string) (ltc2983.ThermocoupleType, error) {
	switch strings.ToUpper(s) {
	case "J":
		return ltc2983.TypeJ, nil
	case "K":
		return ltc2983.TypeK, nil
	case "E":
		return ltc2983.TypeE, nil
	case "N":
		return ltc2983.TypeN, nil
	case "R":
		return ltc2983.TypeR, nil
	case "S":
		return ltc2983.TypeS, nil
	case "T":
		return ltc2983.TypeT, nil
	case "B":
		return ltc2983.TypeB, nil
	}
	return 0, fmt.Errorf("unknown thermocouple type %q", s)
}

func parseOCCurrent(s string) (ltc2983.OCCurrent, error) {
	switch s {
	case "", "external":
		return ltc2983.OCCurrentExternal, nil
	case "10uA":
		return ltc2983.OCCurrent10uA, nil
	case "100uA":
		return ltc2983.OCCurrent100uA, nil
	case "500uA":
		return ltc2983.OCCurrent500uA, nil
	case "1mA":
		return ltc2983.OCCurrent1mA, nil
	}
	return 0, fmt.Errorf("unknown open-circuit current %q", s)
}

func parseExcitation(s string) (ltc2983.ExcitationCurrent, error) {
	switch s {
	case "10uA":
		return ltc2983.Excitation10uA, nil
	case "20uA":
		return ltc2983.Excitation20uA, nil
	case "40uA":
		return ltc2983.Excitation40uA, nil
	case "80uA":
		return ltc2983.Excitation80uA, nil
	case "160uA":
		return ltc2983.Excitation160uA, nil
	case "320uA":
		return ltc2983.Excitation320uA, nil
	case "640uA":
		return ltc2983.Excitation640uA, nil
	}
	return 0, fmt.Errorf("unknown excitation current %q", s)
}

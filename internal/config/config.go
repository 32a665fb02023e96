// Package config loads the YAML channel map consumed by the ltc2983 demo
// binary: one entry per measurement channel naming the probe wired to it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Channels []ChannelConfig `yaml:"channels"`
}

// ChannelConfig describes one channel assignment. Probe selects which of the
// remaining fields apply.
type ChannelConfig struct {
	Channel int    `yaml:"channel"`
	Probe   string `yaml:"probe"` // thermocouple | diode | sense_resistor

	// ---- thermocouple ----
	Type               string `yaml:"type,omitempty"` // J K E N R S T B
	ColdJunction       int    `yaml:"cold_junction,omitempty"`
	SingleEnded        bool   `yaml:"single_ended,omitempty"`
	OpenCircuitCurrent string `yaml:"open_circuit_current,omitempty"` // external | 10uA | 100uA | 500uA | 1mA

	// ---- diode ----
	Ideality   float64 `yaml:"ideality,omitempty"`
	Excitation string  `yaml:"excitation,omitempty"` // 10uA .. 640uA
	Readings   int     `yaml:"readings,omitempty"`   // 1..3, defaults to 1

	// ---- sense resistor ----
	Ohms float64 `yaml:"ohms,omitempty"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

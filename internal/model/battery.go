package model

import "fmt"

// BatteryConfig defines the home battery consumed by the dispatch optimizer.
// Units:
// - CapacityKWh: kWh, > 0
// - MaxPowerKW: symmetric charge/discharge limit, kW, > 0
// - RoundTripEfficiency: (0, 1]; zero means unset and defaults to 1.0
// - InitialSOC: percent, [0, 100]
type BatteryConfig struct {
	CapacityKWh         float64 `yaml:"capacity_kwh" json:"capacity_kwh"`
	MaxPowerKW          float64 `yaml:"max_power_kw" json:"max_power_kw"`
	RoundTripEfficiency float64 `yaml:"round_trip_efficiency" json:"round_trip_efficiency,omitempty"`
	InitialSOC          float64 `yaml:"initial_soc" json:"initial_soc"`
}

func (c BatteryConfig) Validate() error {
	if c.CapacityKWh <= 0 {
		return &ConfigError{Field: "capacity_kwh", Message: "must be > 0"}
	}
	if c.MaxPowerKW <= 0 {
		return &ConfigError{Field: "max_power_kw", Message: "must be > 0"}
	}
	if c.RoundTripEfficiency < 0 || c.RoundTripEfficiency > 1 {
		return &ConfigError{Field: "round_trip_efficiency", Message: fmt.Sprintf("must be within (0, 1], got %g", c.RoundTripEfficiency)}
	}
	if c.InitialSOC < 0 || c.InitialSOC > 100 {
		return &ConfigError{Field: "initial_soc", Message: fmt.Sprintf("must be within [0, 100], got %g", c.InitialSOC)}
	}
	return nil
}

// Efficiency returns the round-trip efficiency, defaulting to 1.0 when the
// config leaves it unset.
func (c BatteryConfig) Efficiency() float64 {
	if c.RoundTripEfficiency == 0 {
		return 1.0
	}
	return c.RoundTripEfficiency
}

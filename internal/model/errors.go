package model

import "fmt"

// ConfigError reports an invalid configuration value. It is fatal to the run
// that produced it and is never retried. Field names the offending input.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// SamplingInfeasibleError is returned when the appliance renewal process
// cannot draw an acceptable sample within its retry budget, e.g. occupancy
// is permanently zero or the minimum idle time exceeds the day.
type SamplingInfeasibleError struct {
	Appliance string
	Attempts  int
}

func (e *SamplingInfeasibleError) Error() string {
	return fmt.Sprintf("appliance %q: no feasible sample after %d attempts", e.Appliance, e.Attempts)
}

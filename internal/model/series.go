package model

import "fmt"

const (
	// HoursPerDay is the length of every hourly series in a simulation.
	HoursPerDay = 24

	// MinutesPerDay is the sub-hourly timeline length used by the
	// appliance generator.
	MinutesPerDay = 24 * 60
)

// CheckHourly validates that s carries exactly one sample per hour of the
// simulated day. field names the offending input in the returned error.
func CheckHourly(field string, s []float64) error {
	if len(s) != HoursPerDay {
		return &ConfigError{
			Field:   field,
			Message: fmt.Sprintf("expected %d hourly samples, got %d", HoursPerDay, len(s)),
		}
	}
	return nil
}

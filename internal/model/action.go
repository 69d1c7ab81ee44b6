package model

// Action is a human-friendly operating mode for one hour of the plan.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

// ActionFromBatteryPowerKW maps the signed battery power of an hour to its
// operating mode. Positive battery power means charging.
func ActionFromBatteryPowerKW(powerKW float64) Action {
	switch {
	case powerKW > 0:
		return ActionCharging
	case powerKW < 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}

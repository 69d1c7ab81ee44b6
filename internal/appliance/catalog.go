package appliance

import (
	"fmt"

	"homeplan/internal/model"
)

// Kind identifies an appliance in the fixed catalog.
type Kind string

const (
	KindDishwasher     Kind = "dishwasher"
	KindWashingMachine Kind = "washing_machine"
	KindTumbleDryer    Kind = "tumble_dryer"
	KindOven           Kind = "oven"
)

// Stats are the immutable statistical parameters of one appliance kind.
// Cycle lengths and restart times are minutes; AvgPowerKW is the draw while
// the appliance is on.
type Stats struct {
	Kind           Kind    `json:"kind"`
	MeanCycleMin   float64 `json:"mean_cycle_min"`
	MinCycleMin    float64 `json:"min_cycle_min"`
	MeanRestartMin float64 `json:"mean_restart_min"`
	MinRestartMin  float64 `json:"min_restart_min"`
	AvgPowerKW     float64 `json:"avg_power_kw"`
}

var catalog = map[Kind]Stats{
	KindDishwasher: {
		Kind:           KindDishwasher,
		MeanCycleMin:   90,
		MinCycleMin:    30,
		MeanRestartMin: 24 * 1.5 * 60,
		MinRestartMin:  180,
		AvgPowerKW:     2.0,
	},
	KindWashingMachine: {
		Kind:           KindWashingMachine,
		MeanCycleMin:   120,
		MinCycleMin:    30,
		MeanRestartMin: 24 * 1.5 * 60,
		MinRestartMin:  180,
		AvgPowerKW:     2.0,
	},
	KindTumbleDryer: {
		Kind:           KindTumbleDryer,
		MeanCycleMin:   60,
		MinCycleMin:    30,
		MeanRestartMin: 24 * 1.5 * 60,
		MinRestartMin:  180,
		AvgPowerKW:     2.0,
	},
	KindOven: {
		Kind:           KindOven,
		MeanCycleMin:   20,
		MinCycleMin:    0,
		MeanRestartMin: 12 * 60,
		MinRestartMin:  0,
		AvgPowerKW:     1.0,
	},
}

// Kinds lists the catalog in a stable order.
func Kinds() []Kind {
	return []Kind{KindDishwasher, KindWashingMachine, KindTumbleDryer, KindOven}
}

// StatsFor looks up the catalog entry for k.
func StatsFor(k Kind) (Stats, error) {
	s, ok := catalog[k]
	if !ok {
		return Stats{}, &model.ConfigError{Field: "appliance", Message: fmt.Sprintf("unknown kind %q", k)}
	}
	return s, nil
}

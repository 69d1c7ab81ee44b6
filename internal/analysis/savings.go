package analysis

import (
	"homeplan/internal/dispatch"
	"homeplan/internal/model"
	"homeplan/internal/sim"
)

// Summary aggregates a dispatch plan into the numbers a user cares about:
// what the day costs with and without the battery, and when the battery
// trades.
type Summary struct {
	BaselineCost float64 `json:"baseline_cost"`
	PlanCost     float64 `json:"plan_cost"`
	Savings      float64 `json:"savings"`

	EnergyChargedKWh    float64 `json:"energy_charged_kwh"`
	EnergyDischargedKWh float64 `json:"energy_discharged_kwh"`

	ChargeWindows    []Window `json:"charge_windows,omitempty"`
	DischargeWindows []Window `json:"discharge_windows,omitempty"`
}

// Window is a maximal run of consecutive hours with the same battery action.
// AvgPricePerKWh is weighted by the energy moved in each hour.
type Window struct {
	StartHour      int     `json:"start_hour"`
	EndHour        int     `json:"end_hour"` // exclusive
	EnergyKWh      float64 `json:"energy_kwh"`
	AvgPricePerKWh float64 `json:"avg_price_per_kwh"`
}

// Summarize computes the cost summary and trade windows for a plan.
func Summarize(plan *dispatch.Plan, prices []float64) Summary {
	s := Summary{
		BaselineCost: plan.BaselineCost,
		PlanCost:     plan.Cost,
		Savings:      plan.BaselineCost - plan.Cost,
	}

	for _, p := range plan.BatteryPowerKW {
		if p > 0 {
			s.EnergyChargedKWh += p
		} else {
			s.EnergyDischargedKWh += -p
		}
	}

	s.ChargeWindows = windows(plan.BatteryPowerKW, prices, model.ActionCharging)
	s.DischargeWindows = windows(plan.BatteryPowerKW, prices, model.ActionDischarging)
	return s
}

// SummarizeResult summarizes the dispatch part of a full simulation result.
func SummarizeResult(res *sim.Result) Summary {
	return Summarize(&dispatch.Plan{
		SOC:            res.SOC,
		BatteryPowerKW: res.BatteryPowerKW,
		GridPowerKW:    res.GridPowerKW,
		Cost:           res.PlanCost,
		BaselineCost:   res.BaselineCost,
	}, res.PricesPerKWh)
}

func windows(batteryKW, prices []float64, want model.Action) []Window {
	var out []Window
	var cur *Window
	var weighted float64

	flush := func() {
		if cur != nil && cur.EnergyKWh > 0 {
			cur.AvgPricePerKWh = weighted / cur.EnergyKWh
			out = append(out, *cur)
		}
		cur = nil
		weighted = 0
	}

	for h, p := range batteryKW {
		if model.ActionFromBatteryPowerKW(p) != want {
			flush()
			continue
		}
		energy := p
		if energy < 0 {
			energy = -energy
		}
		if cur == nil {
			cur = &Window{StartHour: h}
		}
		cur.EndHour = h + 1
		cur.EnergyKWh += energy
		weighted += energy * prices[h]
	}
	flush()
	return out
}

package dispatch

import (
	"math"

	"homeplan/internal/model"
)

const (
	// socLevels discretizes state of charge to whole percent steps.
	socLevels = 101

	// powerSteps per direction; the action set spans [-max, +max] in
	// 2*powerSteps+1 levels including the always-feasible null decision.
	powerSteps = 10

	costEps = 1e-9
)

// Plan is one day of battery dispatch. Sign conventions:
// - BatteryPowerKW: positive = charging, negative = discharging
// - GridPowerKW: positive = import, negative = export
// SOC[h] is the state of charge in percent after hour h's decision.
type Plan struct {
	SOC            []float64
	BatteryPowerKW []float64
	GridPowerKW    []float64

	// Cost is the total grid cost of the plan; BaselineCost is the cost of
	// leaving the battery idle all day.
	Cost         float64
	BaselineCost float64
}

// Optimize finds the cost-minimizing dispatch against the hourly prices by
// dynamic programming over the discretized SOC grid. Prices may be negative.
// The horizon is fixed at 24 hours with dt = 1 hour.
func Optimize(netLoadKW, prices []float64, batt model.BatteryConfig) (*Plan, error) {
	if err := batt.Validate(); err != nil {
		return nil, err
	}
	if err := model.CheckHourly("net_load", netLoadKW); err != nil {
		return nil, err
	}
	if err := model.CheckHourly("spot_prices", prices); err != nil {
		return nil, err
	}

	eff := batt.Efficiency()
	hours := model.HoursPerDay

	// Action set in kW. Index powerSteps is the null decision.
	actions := make([]float64, 0, 2*powerSteps+1)
	for k := -powerSteps; k <= powerSteps; k++ {
		actions = append(actions, float64(k)*batt.MaxPowerKW/float64(powerSteps))
	}

	type cell struct {
		cost    float64
		prev    int     // SOC index at the previous hour
		powerKW float64 // battery power that led into this cell
	}

	dp := make([][]cell, hours+1)
	for t := range dp {
		dp[t] = make([]cell, socLevels)
		for i := range dp[t] {
			dp[t][i] = cell{cost: math.Inf(1), prev: -1}
		}
	}
	startIdx := socToIndex(batt.InitialSOC)
	dp[0][startIdx].cost = 0

	for t := 0; t < hours; t++ {
		for idx := 0; idx < socLevels; idx++ {
			here := dp[t][idx]
			if math.IsInf(here.cost, 1) {
				continue
			}
			soc := indexToSOC(idx)

			for _, powerKW := range actions {
				nextSOC, ok := stepSOC(soc, powerKW, batt.CapacityKWh, eff)
				if !ok {
					continue
				}
				nextIdx := socToIndex(nextSOC)

				cost := here.cost + prices[t]*(netLoadKW[t]+powerKW)
				// Ties break toward the predecessor closest to 50% SOC so
				// equal-cost plans stay reproducible and centered. Paths
				// tying here share this cell's SOC as their next step, so
				// centering the predecessor is the same rule as centering
				// the step that follows it; ties across different next
				// SOCs resolve at terminal selection below.
				cur := dp[t+1][nextIdx]
				if cost < cur.cost-costEps ||
					(cur.prev >= 0 && math.Abs(cost-cur.cost) <= costEps && distTo50(idx) < distTo50(cur.prev)) {
					dp[t+1][nextIdx] = cell{cost: cost, prev: idx, powerKW: powerKW}
				}
			}
		}
	}

	// Minimum-cost terminal state; equal costs prefer the SOC closest to
	// 50% for a stable, reproducible plan.
	best := -1
	for idx := 0; idx < socLevels; idx++ {
		c := dp[hours][idx]
		if math.IsInf(c.cost, 1) {
			continue
		}
		if best < 0 ||
			c.cost < dp[hours][best].cost-costEps ||
			(math.Abs(c.cost-dp[hours][best].cost) <= costEps && distTo50(idx) < distTo50(best)) {
			best = idx
		}
	}

	plan := &Plan{
		SOC:            make([]float64, hours),
		BatteryPowerKW: make([]float64, hours),
		GridPowerKW:    make([]float64, hours),
	}
	plan.Cost = dp[hours][best].cost

	idx := best
	for t := hours - 1; t >= 0; t-- {
		c := dp[t+1][idx]
		plan.SOC[t] = indexToSOC(idx)
		plan.BatteryPowerKW[t] = c.powerKW
		plan.GridPowerKW[t] = netLoadKW[t] + c.powerKW
		idx = c.prev
	}

	for t := 0; t < hours; t++ {
		plan.BaselineCost += prices[t] * netLoadKW[t]
	}

	return plan, nil
}

// stepSOC applies one hour of battery power to the state of charge.
// Round-trip efficiency is charged once, on the discharge path. Decisions
// that would push SOC out of [0, 100] are infeasible; the null decision
// always passes.
func stepSOC(soc, powerKW, capacityKWh, eff float64) (float64, bool) {
	var next float64
	if powerKW >= 0 {
		next = soc + powerKW*100/capacityKWh
	} else {
		next = soc + powerKW*100/(capacityKWh*eff)
	}
	if next < 0 || next > 100 {
		return 0, false
	}
	return next, true
}

func socToIndex(soc float64) int {
	idx := int(math.Round(soc * float64(socLevels-1) / 100))
	if idx < 0 {
		return 0
	}
	if idx > socLevels-1 {
		return socLevels - 1
	}
	return idx
}

func indexToSOC(idx int) float64 {
	return float64(idx) * 100 / float64(socLevels-1)
}

func distTo50(idx int) float64 {
	return math.Abs(indexToSOC(idx) - 50)
}

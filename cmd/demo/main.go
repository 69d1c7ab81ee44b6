package main

import (
	"flag"
	"fmt"
	"math"

	"homeplan/internal/analysis"
	"homeplan/internal/config"
	"homeplan/internal/model"
	"homeplan/internal/sim"
)

// Demo:
// - Build a typical single-family house and a home battery
// - Synthesize a winter day of temperatures, prices and solar
// - Run the full pipeline and print the hourly plan
func main() {
	seed := flag.Int64("seed", 42, "Appliance sampling seed")
	setpoint := flag.Float64("setpoint", 21, "Heating setpoint (deg C)")
	flag.Parse()

	house := model.BuildingEnvelope{
		LengthM:      10,
		WidthM:       8,
		WallHeightM:  2.4,
		GlazingRatio: 0.2,
		NumWindows:   8,
		NumDoors:     2,
		RoofType:     "gable",
		RoofPitchDeg: 35,
	}

	battery := model.BatteryConfig{
		CapacityKWh:         10,
		MaxPowerKW:          5,
		RoundTripEfficiency: 0.9,
		InitialSOC:          50,
	}

	temps := make([]float64, model.HoursPerDay)
	prices := make([]float64, model.HoursPerDay)
	solar := make([]float64, model.HoursPerDay)
	for h := 0; h < model.HoursPerDay; h++ {
		// Cold winter day: coldest around 04:00, warmest mid-afternoon.
		temps[h] = -2 + 5*math.Sin((float64(h)-10)*math.Pi/12)
		// Double-peak spot curve: morning and evening demand peaks.
		prices[h] = 0.5 +
			0.4*math.Exp(-math.Pow(float64(h)-8, 2)/8) +
			0.6*math.Exp(-math.Pow(float64(h)-18, 2)/8)
		// A few weak midday sun hours.
		if h >= 10 && h <= 14 {
			solar[h] = 0.8 * math.Sin(float64(h-9)*math.Pi/6)
		}
	}

	res, err := sim.Run(&sim.Request{
		Envelope: house,
		Heating: sim.HeatingParams{
			SetpointC:      *setpoint,
			InitialInsideC: 19,
		},
		Battery:       battery,
		Seed:          *seed,
		Occupancy:     config.DefaultOccupancy(),
		OutsideTempsC: temps,
		SolarKWh:      solar,
		PricesPerKWh:  prices,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%4s %8s %8s %8s %8s %8s %8s %12s %8s %6s\n",
		"hour", "out_c", "in_c", "heat_kwh", "appl_kwh", "net_kw", "price", "action", "batt_kw", "soc")
	for h := 0; h < model.HoursPerDay; h++ {
		fmt.Printf("%4d %8.1f %8.1f %8.2f %8.2f %8.2f %8.3f %12s %8.2f %5.0f%%\n",
			h,
			res.OutsideTempsC[h],
			res.InsideTempsC[h+1],
			res.HeatingKWh[h],
			res.ApplianceTotalKWh[h],
			res.NetLoadKW[h],
			res.PricesPerKWh[h],
			model.ActionFromBatteryPowerKW(res.BatteryPowerKW[h]),
			res.BatteryPowerKW[h],
			res.SOC[h])
	}

	summary := analysis.SummarizeResult(res)
	fmt.Println()
	fmt.Printf("Baseline cost=%.2f  Plan cost=%.2f  Savings=%.2f (%.1f%%)\n",
		summary.BaselineCost, summary.PlanCost, summary.Savings,
		100*summary.Savings/math.Max(summary.BaselineCost, 1e-9))
	fmt.Printf("Charged %.2f kWh, discharged %.2f kWh\n",
		summary.EnergyChargedKWh, summary.EnergyDischargedKWh)
}

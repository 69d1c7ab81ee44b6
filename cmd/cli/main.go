package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"homeplan/internal/analysis"
	"homeplan/internal/appliance"
	"homeplan/internal/config"
	"homeplan/internal/data"
	"homeplan/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "plan":
		cmdPlan(os.Args[2:])
	case "appliances":
		cmdAppliances()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli plan --config examples/config.yaml --day 2026-01-15 --out results/plan.csv")
	fmt.Println("  cli plan --config examples/config.yaml --series sample_series.json")
	fmt.Println("  cli appliances")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - plan fetches weather and spot prices live unless --series provides them")
	fmt.Println("  - the CSV has one row per hour with action=CHARGING/IDLE/DISCHARGING")
}

func cmdPlan(args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	dayStr := fs.String("day", time.Now().Format("2006-01-02"), "Day to plan (YYYY-MM-DD)")
	seriesPath := fs.String("series", "", "Optional: JSON file with pre-resolved hourly series (offline mode)")
	seed := fs.Int64("seed", 0, "Optional: appliance sampling seed (0=random)")
	outPath := fs.String("out", "results/plan.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	day, err := time.ParseInLocation("2006-01-02", *dayStr, time.Local)
	if err != nil {
		panic(err)
	}

	occupancy := cfg.Occupancy
	var temps, solar, prices []float64
	if *seriesPath != "" {
		sf, err := data.LoadSeriesJSON(*seriesPath)
		if err != nil {
			panic(err)
		}
		temps, solar, prices = sf.OutsideTempsC, sf.SolarKWh, sf.PricesPerKWh
		if sf.Occupancy != nil {
			occupancy = sf.Occupancy
		}
	} else {
		userAgent := cfg.UserAgent
		if userAgent == "" {
			userAgent = "homeplan/1.0"
		}
		lat, lon := cfg.Location.Latitude, cfg.Location.Longitude

		temps, err = data.NewMETClient(userAgent).HourlyTemperatures(lat, lon, day)
		if err != nil {
			panic(err)
		}
		prices, err = data.NewPriceClient(cfg.Location.PriceArea).HourlyPrices(day)
		if err != nil {
			panic(err)
		}
		solar = data.SolarEstimator{Setup: cfg.Solar}.HourlyGeneration(lat, lon, day, temps)
	}

	res, err := sim.Run(&sim.Request{
		Envelope:      cfg.Building,
		Heating:       cfg.Heating,
		Battery:       cfg.Battery,
		Appliances:    cfg.Appliances,
		ResolutionMin: cfg.ResolutionMin,
		Seed:          *seed,
		Occupancy:     occupancy,
		OutsideTempsC: temps,
		SolarKWh:      solar,
		PricesPerKWh:  prices,
	})
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sim.WritePlanCSV(*outPath, res, sim.Timestamps(day)); err != nil {
		panic(err)
	}

	summary := analysis.SummarizeResult(res)
	fmt.Printf("Wrote plan for %s to %s\n", *dayStr, *outPath)
	fmt.Printf("Baseline cost=%.2f Plan cost=%.2f Savings=%.2f\n",
		summary.BaselineCost, summary.PlanCost, summary.Savings)
	fmt.Printf("Battery: charged %.2f kWh, discharged %.2f kWh\n",
		summary.EnergyChargedKWh, summary.EnergyDischargedKWh)
	for _, w := range summary.ChargeWindows {
		fmt.Printf("  charge    %02d:00-%02d:00  %.2f kWh @ avg %.3f/kWh\n",
			w.StartHour, w.EndHour, w.EnergyKWh, w.AvgPricePerKWh)
	}
	for _, w := range summary.DischargeWindows {
		fmt.Printf("  discharge %02d:00-%02d:00  %.2f kWh @ avg %.3f/kWh\n",
			w.StartHour, w.EndHour, w.EnergyKWh, w.AvgPricePerKWh)
	}
	for _, kind := range res.InfeasibleAppliances {
		fmt.Printf("warning: %s sampling infeasible, assumed unused\n", kind)
	}
}

func cmdAppliances() {
	fmt.Printf("%-16s %10s %10s %12s %12s %10s\n",
		"appliance", "cycle_min", "min_cycle", "restart_min", "min_restart", "power_kw")
	for _, kind := range appliance.Kinds() {
		stats, err := appliance.StatsFor(kind)
		if err != nil {
			continue
		}
		fmt.Printf("%-16s %10.0f %10.0f %12.0f %12.0f %10.1f\n",
			kind, stats.MeanCycleMin, stats.MinCycleMin, stats.MeanRestartMin, stats.MinRestartMin, stats.AvgPowerKW)
	}
}

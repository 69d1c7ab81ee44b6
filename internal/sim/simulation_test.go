package sim

import (
	"math"
	"testing"

	"homeplan/internal/appliance"
	"homeplan/internal/model"
)

func testRequest() *Request {
	occupancy := make([]float64, model.HoursPerDay)
	temps := make([]float64, model.HoursPerDay)
	solar := make([]float64, model.HoursPerDay)
	prices := make([]float64, model.HoursPerDay)
	for h := 0; h < model.HoursPerDay; h++ {
		if h < 8 || h >= 16 {
			occupancy[h] = 2
		}
		temps[h] = -2 + 5*math.Sin((float64(h)-10)*math.Pi/12)
		prices[h] = 0.5 + 0.5*math.Sin(float64(h)*math.Pi/12)
		if h >= 10 && h <= 14 {
			solar[h] = 0.6
		}
	}

	return &Request{
		Envelope: model.BuildingEnvelope{
			LengthM:      10,
			WidthM:       8,
			WallHeightM:  2.4,
			GlazingRatio: 0.2,
			NumWindows:   8,
			NumDoors:     2,
			RoofType:     model.RoofGable,
			RoofPitchDeg: 35,
		},
		Heating: HeatingParams{
			SetpointC:      21,
			InitialInsideC: 19,
		},
		Battery:       model.BatteryConfig{CapacityKWh: 10, MaxPowerKW: 5, RoundTripEfficiency: 0.9, InitialSOC: 50},
		Seed:          42,
		Occupancy:     occupancy,
		OutsideTempsC: temps,
		SolarKWh:      solar,
		PricesPerKWh:  prices,
	}
}

func TestRunEndToEnd(t *testing.T) {
	res, err := Run(testRequest())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(res.InsideTempsC) != model.HoursPerDay+1 {
		t.Fatalf("len(InsideTempsC) = %d, want %d", len(res.InsideTempsC), model.HoursPerDay+1)
	}
	for name, series := range map[string][]float64{
		"HeatingKWh":        res.HeatingKWh,
		"ApplianceTotalKWh": res.ApplianceTotalKWh,
		"ConsumptionKWh":    res.ConsumptionKWh,
		"NetLoadKW":         res.NetLoadKW,
		"SOC":               res.SOC,
		"BatteryPowerKW":    res.BatteryPowerKW,
		"GridPowerKW":       res.GridPowerKW,
	} {
		if len(series) != model.HoursPerDay {
			t.Fatalf("len(%s) = %d, want %d", name, len(series), model.HoursPerDay)
		}
	}

	if len(res.ApplianceKWh) != len(appliance.Kinds()) {
		t.Fatalf("appliance series = %d, want full catalog %d", len(res.ApplianceKWh), len(appliance.Kinds()))
	}
	if len(res.InfeasibleAppliances) != 0 {
		t.Fatalf("InfeasibleAppliances = %v, want none", res.InfeasibleAppliances)
	}

	for h := 0; h < model.HoursPerDay; h++ {
		var applSum float64
		for _, series := range res.ApplianceKWh {
			applSum += series[h]
		}
		if math.Abs(res.ApplianceTotalKWh[h]-applSum) > 1e-9 {
			t.Fatalf("hour %d: appliance total = %g, want %g", h, res.ApplianceTotalKWh[h], applSum)
		}
		wantCons := res.HeatingKWh[h] + res.ApplianceTotalKWh[h]
		if math.Abs(res.ConsumptionKWh[h]-wantCons) > 1e-9 {
			t.Fatalf("hour %d: consumption = %g, want %g", h, res.ConsumptionKWh[h], wantCons)
		}
		wantNet := wantCons - res.SolarKWh[h]
		if math.Abs(res.NetLoadKW[h]-wantNet) > 1e-9 {
			t.Fatalf("hour %d: net load = %g, want %g", h, res.NetLoadKW[h], wantNet)
		}
		wantGrid := res.NetLoadKW[h] + res.BatteryPowerKW[h]
		if math.Abs(res.GridPowerKW[h]-wantGrid) > 1e-9 {
			t.Fatalf("hour %d: grid power = %g, want %g", h, res.GridPowerKW[h], wantGrid)
		}
	}

	if res.PlanCost > res.BaselineCost+1e-9 {
		t.Fatalf("plan cost %g exceeds baseline %g", res.PlanCost, res.BaselineCost)
	}
}

func TestRunReproducibleWithSeed(t *testing.T) {
	a, err := Run(testRequest())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	b, err := Run(testRequest())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for h := 0; h < model.HoursPerDay; h++ {
		if a.ApplianceTotalKWh[h] != b.ApplianceTotalKWh[h] {
			t.Fatalf("hour %d: seeded runs differ: %g vs %g", h, a.ApplianceTotalKWh[h], b.ApplianceTotalKWh[h])
		}
		if a.GridPowerKW[h] != b.GridPowerKW[h] {
			t.Fatalf("hour %d: seeded dispatch differs: %g vs %g", h, a.GridPowerKW[h], b.GridPowerKW[h])
		}
	}
}

func TestRunInfeasibleApplianceSubstitutesZero(t *testing.T) {
	req := testRequest()
	// Nobody home all day: every appliance restart is unschedulable.
	req.Occupancy = make([]float64, model.HoursPerDay)

	res, err := Run(req)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.InfeasibleAppliances) != len(appliance.Kinds()) {
		t.Fatalf("InfeasibleAppliances = %v, want all %d kinds", res.InfeasibleAppliances, len(appliance.Kinds()))
	}
	for h, kwh := range res.ApplianceTotalKWh {
		if kwh != 0 {
			t.Fatalf("hour %d: appliance load = %g, want zero substitute", h, kwh)
		}
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing building", func(r *Request) { r.Envelope = model.BuildingEnvelope{} }},
		{"missing battery", func(r *Request) { r.Battery = model.BatteryConfig{} }},
		{"short occupancy", func(r *Request) { r.Occupancy = r.Occupancy[:5] }},
		{"short temperatures", func(r *Request) { r.OutsideTempsC = nil }},
		{"short prices", func(r *Request) { r.PricesPerKWh = r.PricesPerKWh[:23] }},
		{"short setpoints", func(r *Request) { r.Heating.SetpointsC = []float64{20} }},
		{"bad resolution", func(r *Request) { r.ResolutionMin = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(req)
			if _, err := Run(req); err == nil {
				t.Fatal("Run() = nil error, want failure")
			}
		})
	}

	t.Run("nil request", func(t *testing.T) {
		if _, err := Run(nil); err == nil {
			t.Fatal("Run(nil) = nil error, want failure")
		}
	})
}

package thermal

import (
	"math"
	"testing"

	"homeplan/internal/model"
)

func constSeries(v float64) []float64 {
	s := make([]float64, model.HoursPerDay)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestSimulateOnOffTracksSetpoint(t *testing.T) {
	p := Params{
		ConductanceKWPerC:  0.2,
		ThermalMassKWhPerC: 5,
		Controller:         ControllerOnOff,
	}
	res, err := Simulate(p, constSeries(0), constSeries(20), nil, 18)
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}

	if len(res.InsideTempsC) != model.HoursPerDay+1 {
		t.Fatalf("len(InsideTempsC) = %d, want %d", len(res.InsideTempsC), model.HoursPerDay+1)
	}
	if res.InsideTempsC[0] != 18 {
		t.Fatalf("InsideTempsC[0] = %g, want initial 18", res.InsideTempsC[0])
	}

	final := res.InsideTempsC[model.HoursPerDay]
	if math.Abs(final-20) > 1.0 {
		t.Fatalf("final inside temp = %g, want within 1 of setpoint 20", final)
	}

	for h := 0; h < model.HoursPerDay; h++ {
		out := res.HeatOutputKW[h]
		if out != 0 && out != 5.0 {
			t.Fatalf("hour %d: on/off output = %g, want 0 or max 5", h, out)
		}
		// Electrical energy is heat over the default COP.
		if math.Abs(res.ElectricalKWh[h]-out/3.5) > 1e-12 {
			t.Fatalf("hour %d: ElectricalKWh = %g, want %g", h, res.ElectricalKWh[h], out/3.5)
		}
	}
}

func TestSimulateEnergyBalance(t *testing.T) {
	p := Params{
		ConductanceKWPerC:  0.25,
		ThermalMassKWhPerC: 8,
		MaxHeatKW:          6,
	}
	gains := constSeries(0.2)
	res, err := Simulate(p, constSeries(-5), constSeries(21), gains, 19)
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}

	// Each hourly temperature change must equal the net power over the
	// thermal mass.
	for h := 0; h < model.HoursPerDay; h++ {
		net := res.HeatOutputKW[h] - res.HeatLossKW[h] + gains[h]
		want := res.InsideTempsC[h] + net/p.ThermalMassKWhPerC
		if math.Abs(res.InsideTempsC[h+1]-want) > 1e-9 {
			t.Fatalf("hour %d: InsideTempsC = %g, want %g", h, res.InsideTempsC[h+1], want)
		}
	}
}

func TestSimulateDeterministic(t *testing.T) {
	p := Params{ConductanceKWPerC: 0.2, ThermalMassKWhPerC: 5}
	outside := constSeries(2)
	setpoints := constSeries(21)

	a, err := Simulate(p, outside, setpoints, nil, 18)
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}
	b, err := Simulate(p, outside, setpoints, nil, 18)
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}
	for h := range a.InsideTempsC {
		if a.InsideTempsC[h] != b.InsideTempsC[h] {
			t.Fatalf("hour %d: runs differ: %g vs %g", h, a.InsideTempsC[h], b.InsideTempsC[h])
		}
	}
}

func TestSimulateFixedOutputWhenBoundsCollapse(t *testing.T) {
	p := Params{
		ConductanceKWPerC:  0.2,
		ThermalMassKWhPerC: 5,
		MinHeatKW:          3,
		MaxHeatKW:          3,
	}
	res, err := Simulate(p, constSeries(0), constSeries(20), nil, 18)
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}
	for h, out := range res.HeatOutputKW {
		if out != 3 {
			t.Fatalf("hour %d: output = %g, want constant 3", h, out)
		}
	}
}

func TestSimulatePIDWithinBounds(t *testing.T) {
	p := Params{
		ConductanceKWPerC:  0.3,
		ThermalMassKWhPerC: 6,
		MaxHeatKW:          4,
	}
	res, err := Simulate(p, constSeries(-10), constSeries(22), nil, 15)
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}
	for h, out := range res.HeatOutputKW {
		if out < 0 || out > 4 {
			t.Fatalf("hour %d: output = %g, want within [0, 4]", h, out)
		}
	}
}

func TestSimulateValidation(t *testing.T) {
	valid := Params{ConductanceKWPerC: 0.2, ThermalMassKWhPerC: 5}
	outside := constSeries(0)
	setpoints := constSeries(20)

	tests := []struct {
		name      string
		params    Params
		outside   []float64
		setpoints []float64
	}{
		{"zero conductance", Params{ThermalMassKWhPerC: 5}, outside, setpoints},
		{"zero mass", Params{ConductanceKWPerC: 0.2}, outside, setpoints},
		{"max below min", Params{ConductanceKWPerC: 0.2, ThermalMassKWhPerC: 5, MinHeatKW: 6, MaxHeatKW: 2}, outside, setpoints},
		{"unknown controller", Params{ConductanceKWPerC: 0.2, ThermalMassKWhPerC: 5, Controller: "bang"}, outside, setpoints},
		{"short outside series", valid, outside[:12], setpoints},
		{"short setpoints", valid, outside, setpoints[:3]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Simulate(tt.params, tt.outside, tt.setpoints, nil, 18); err == nil {
				t.Fatal("Simulate() = nil error, want validation failure")
			}
		})
	}
}

func TestPIDOutputFirstStep(t *testing.T) {
	var s ControllerState
	got := s.pidOutput(DefaultPIDGains(), 20, 18, 1)
	// error 2: Kp*2 + Ki*2 + Kd*2 with zeroed memory.
	want := 10.0*2 + 0.05*2 + 5.0*2
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("pidOutput = %g, want %g", got, want)
	}
	if s.Integral != 2 || s.PrevError != 2 {
		t.Fatalf("state = %+v, want integral 2 and prev error 2", s)
	}
}

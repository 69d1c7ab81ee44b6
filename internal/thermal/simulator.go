package thermal

import (
	"fmt"

	"homeplan/internal/model"
)

// Params configures one heating simulation.
// Units:
// - ConductanceKWPerC: aggregate heat-loss conductance, kW/°C, > 0
// - ThermalMassKWhPerC: zone heat capacity, kWh/°C, > 0
// - COP: heat output per electrical input; zero defaults to 3.5
// - MinHeatKW/MaxHeatKW: heating power bounds; MaxHeatKW zero defaults to 5
type Params struct {
	ConductanceKWPerC  float64
	ThermalMassKWhPerC float64

	COP       float64
	MinHeatKW float64
	MaxHeatKW float64

	Controller string // "pid" (default) or "on_off"
	Gains      PIDGains
}

// withDefaults fills unset optional fields.
func (p Params) withDefaults() Params {
	if p.COP == 0 {
		p.COP = 3.5
	}
	if p.MaxHeatKW == 0 {
		p.MaxHeatKW = 5.0
	}
	if p.Controller == "" {
		p.Controller = ControllerPID
	}
	if (p.Gains == PIDGains{}) {
		p.Gains = DefaultPIDGains()
	}
	return p
}

func (p Params) Validate() error {
	d := p.withDefaults()
	if p.ConductanceKWPerC <= 0 {
		return &model.ConfigError{Field: "conductance", Message: "must be > 0"}
	}
	if p.ThermalMassKWhPerC <= 0 {
		return &model.ConfigError{Field: "thermal_mass", Message: "must be > 0"}
	}
	if d.COP <= 0 {
		return &model.ConfigError{Field: "cop", Message: "must be > 0"}
	}
	if d.MinHeatKW < 0 {
		return &model.ConfigError{Field: "min_heat_kw", Message: "must be >= 0"}
	}
	if d.MaxHeatKW < d.MinHeatKW {
		return &model.ConfigError{Field: "max_heat_kw", Message: "must be >= min_heat_kw"}
	}
	if d.Controller != ControllerPID && d.Controller != ControllerOnOff {
		return &model.ConfigError{Field: "controller", Message: fmt.Sprintf("unknown controller %q", p.Controller)}
	}
	return nil
}

// Result holds one day of heating simulation output. InsideTempsC has the
// initial temperature prepended, so it is one sample longer than the rest.
type Result struct {
	InsideTempsC  []float64 // 25 samples, °C
	ElectricalKWh []float64 // 24 samples, electrical energy per hour
	HeatOutputKW  []float64 // 24 samples, delivered heat
	HeatLossKW    []float64 // 24 samples, envelope loss (negative = gain)
}

// Simulate runs the closed-loop heating model hour by hour. Each hour's
// inside temperature depends on the previous hour's result, so the loop is
// strictly sequential. Controller memory starts zeroed for every call.
func Simulate(p Params, outsideC, setpointsC, internalGainsKW []float64, initialInsideC float64) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := model.CheckHourly("outside_temperatures", outsideC); err != nil {
		return nil, err
	}
	if err := model.CheckHourly("setpoints", setpointsC); err != nil {
		return nil, err
	}
	if internalGainsKW == nil {
		internalGainsKW = make([]float64, model.HoursPerDay)
	}
	if err := model.CheckHourly("internal_gains", internalGainsKW); err != nil {
		return nil, err
	}

	p = p.withDefaults()
	const dt = 1.0 // hours

	res := &Result{
		InsideTempsC:  make([]float64, 0, model.HoursPerDay+1),
		ElectricalKWh: make([]float64, 0, model.HoursPerDay),
		HeatOutputKW:  make([]float64, 0, model.HoursPerDay),
		HeatLossKW:    make([]float64, 0, model.HoursPerDay),
	}
	res.InsideTempsC = append(res.InsideTempsC, initialInsideC)

	var state ControllerState
	inside := initialInsideC

	for h := 0; h < model.HoursPerDay; h++ {
		loss := p.ConductanceKWPerC * (inside - outsideC[h])

		var request float64
		switch p.Controller {
		case ControllerPID:
			request = state.pidOutput(p.Gains, setpointsC[h], inside, dt)
		case ControllerOnOff:
			if inside < setpointsC[h] {
				request = p.MaxHeatKW
			}
		}
		heating := clamp(request, p.MinHeatKW, p.MaxHeatKW)

		net := heating - loss + internalGainsKW[h]
		inside += net * dt / p.ThermalMassKWhPerC

		res.InsideTempsC = append(res.InsideTempsC, inside)
		res.ElectricalKWh = append(res.ElectricalKWh, heating/p.COP*dt)
		res.HeatOutputKW = append(res.HeatOutputKW, heating)
		res.HeatLossKW = append(res.HeatLossKW, loss)
	}

	return res, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package sim

import (
	"fmt"

	"homeplan/internal/appliance"
	"homeplan/internal/dispatch"
	"homeplan/internal/model"
	"homeplan/internal/thermal"
)

// gainPerOccupantKW converts the occupant count of an hour into internal
// heat gain for the thermal model.
const gainPerOccupantKW = 0.1

// HeatingParams are the user-facing heating options; envelope-derived
// conductance and thermal mass are filled in by Run.
type HeatingParams struct {
	COP        float64          `yaml:"cop" json:"cop,omitempty"`
	MinHeatKW  float64          `yaml:"min_heat_kw" json:"min_heat_kw,omitempty"`
	MaxHeatKW  float64          `yaml:"max_heat_kw" json:"max_heat_kw,omitempty"`
	Controller string           `yaml:"controller" json:"controller,omitempty"`
	Gains      thermal.PIDGains `yaml:"pid_gains" json:"pid_gains,omitempty"`

	InitialInsideC float64 `yaml:"initial_inside_c" json:"initial_inside_c"`

	// SetpointC is used for every hour when SetpointsC is nil.
	SetpointC  float64   `yaml:"setpoint_c" json:"setpoint_c,omitempty"`
	SetpointsC []float64 `yaml:"setpoints_c" json:"setpoints_c,omitempty"`
}

// Request is one complete simulation input. All entities live only for the
// duration of the request; nothing is cached across runs. The three external
// series must be fully resolved before Run is invoked.
type Request struct {
	Envelope model.BuildingEnvelope
	Heating  HeatingParams
	Battery  model.BatteryConfig

	// Appliances defaults to the full catalog when nil.
	Appliances    []appliance.Kind
	ResolutionMin int
	// Seed makes appliance sampling reproducible when non-zero.
	Seed int64

	Occupancy []float64 // 24 hourly occupant counts

	OutsideTempsC []float64 // weather collaborator, °C
	SolarKWh      []float64 // solar collaborator, kWh per hour
	PricesPerKWh  []float64 // spot-price collaborator, currency/kWh
}

// Result carries every series the planner produces. InsideTempsC includes
// the initial temperature, so it is one sample longer than the others.
type Result struct {
	OutsideTempsC []float64 `json:"outside_temps_c"`
	InsideTempsC  []float64 `json:"inside_temps_c"`
	HeatingKWh    []float64 `json:"heating_kwh"`
	HeatOutputKW  []float64 `json:"heat_output_kw"`
	HeatLossKW    []float64 `json:"heat_loss_kw"`

	ApplianceKWh      map[appliance.Kind][]float64 `json:"appliance_kwh"`
	ApplianceTotalKWh []float64                    `json:"appliance_total_kwh"`

	SolarKWh       []float64 `json:"solar_kwh"`
	ConsumptionKWh []float64 `json:"consumption_kwh"`
	NetLoadKW      []float64 `json:"net_load_kw"`
	PricesPerKWh   []float64 `json:"prices_per_kwh"`

	SOC            []float64 `json:"soc"`
	BatteryPowerKW []float64 `json:"battery_power_kw"`
	GridPowerKW    []float64 `json:"grid_power_kw"`

	PlanCost     float64 `json:"plan_cost"`
	BaselineCost float64 `json:"baseline_cost"`

	// InfeasibleAppliances lists appliances whose renewal sampling could
	// not satisfy its constraints; their usage was substituted with a
	// zero profile rather than aborting the run.
	InfeasibleAppliances []appliance.Kind `json:"infeasible_appliances,omitempty"`
}

// Run executes one full simulation: thermal model, appliance generation,
// aggregation and battery dispatch. It fails fast on any invalid input and
// never runs partially on incomplete series.
func Run(req *Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	setpoints := req.Heating.SetpointsC
	if setpoints == nil {
		sp := req.Heating.SetpointC
		if sp == 0 {
			sp = 20.0
		}
		setpoints = make([]float64, model.HoursPerDay)
		for h := range setpoints {
			setpoints[h] = sp
		}
	}

	gains := make([]float64, model.HoursPerDay)
	for h, occ := range req.Occupancy {
		gains[h] = occ * gainPerOccupantKW
	}

	heat, err := thermal.Simulate(thermal.Params{
		ConductanceKWPerC:  req.Envelope.Conductance(),
		ThermalMassKWhPerC: req.Envelope.ThermalMass(),
		COP:                req.Heating.COP,
		MinHeatKW:          req.Heating.MinHeatKW,
		MaxHeatKW:          req.Heating.MaxHeatKW,
		Controller:         req.Heating.Controller,
		Gains:              req.Heating.Gains,
	}, req.OutsideTempsC, setpoints, gains, req.Heating.InitialInsideC)
	if err != nil {
		return nil, fmt.Errorf("heating simulation: %w", err)
	}

	kinds := req.Appliances
	if kinds == nil {
		kinds = appliance.Kinds()
	}
	applianceKWh := make(map[appliance.Kind][]float64, len(kinds))
	var infeasible []appliance.Kind
	for i, kind := range kinds {
		load, err := generateAppliance(kind, req, int64(i))
		if err != nil {
			if _, ok := err.(*model.SamplingInfeasibleError); ok {
				// Zero-usage substitute; reported, never silently retried.
				infeasible = append(infeasible, kind)
				load = make([]float64, model.HoursPerDay)
			} else {
				return nil, fmt.Errorf("appliance %s: %w", kind, err)
			}
		}
		applianceKWh[kind] = load
	}

	applianceTotal, consumption, netLoad := aggregate(heat.ElectricalKWh, applianceKWh, req.SolarKWh)

	plan, err := dispatch.Optimize(netLoad, req.PricesPerKWh, req.Battery)
	if err != nil {
		return nil, fmt.Errorf("dispatch optimization: %w", err)
	}

	return &Result{
		OutsideTempsC:        req.OutsideTempsC,
		InsideTempsC:         heat.InsideTempsC,
		HeatingKWh:           heat.ElectricalKWh,
		HeatOutputKW:         heat.HeatOutputKW,
		HeatLossKW:           heat.HeatLossKW,
		ApplianceKWh:         applianceKWh,
		ApplianceTotalKWh:    applianceTotal,
		SolarKWh:             req.SolarKWh,
		ConsumptionKWh:       consumption,
		NetLoadKW:            netLoad,
		PricesPerKWh:         req.PricesPerKWh,
		SOC:                  plan.SOC,
		BatteryPowerKW:       plan.BatteryPowerKW,
		GridPowerKW:          plan.GridPowerKW,
		PlanCost:             plan.Cost,
		BaselineCost:         plan.BaselineCost,
		InfeasibleAppliances: infeasible,
	}, nil
}

func generateAppliance(kind appliance.Kind, req *Request, offset int64) ([]float64, error) {
	stats, err := appliance.StatsFor(kind)
	if err != nil {
		return nil, err
	}
	seed := req.Seed
	if seed != 0 {
		// Decorrelate appliances while keeping the run reproducible.
		seed += offset
	}
	gen, err := appliance.NewGenerator(stats, appliance.GeneratorConfig{
		ResolutionMin: req.ResolutionMin,
		Seed:          seed,
	})
	if err != nil {
		return nil, err
	}
	return gen.HourlyLoad(req.Occupancy)
}

func validate(req *Request) error {
	if req == nil {
		return &model.ConfigError{Field: "request", Message: "is nil"}
	}
	if err := req.Envelope.Validate(); err != nil {
		return err
	}
	if err := req.Battery.Validate(); err != nil {
		return err
	}
	if err := model.CheckHourly("occupancy", req.Occupancy); err != nil {
		return err
	}
	if err := model.CheckHourly("outside_temperatures", req.OutsideTempsC); err != nil {
		return err
	}
	if err := model.CheckHourly("solar_generation", req.SolarKWh); err != nil {
		return err
	}
	if err := model.CheckHourly("spot_prices", req.PricesPerKWh); err != nil {
		return err
	}
	if req.Heating.SetpointsC != nil {
		if err := model.CheckHourly("setpoints", req.Heating.SetpointsC); err != nil {
			return err
		}
	}
	return nil
}

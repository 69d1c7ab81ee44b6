package models

import (
	"homeplan/internal/appliance"
	"homeplan/internal/data"
	"homeplan/internal/model"
	"homeplan/internal/sim"
)

// SimulateRequest represents the request body for running a simulation.
type SimulateRequest struct {
	Day      string   `json:"day" binding:"required"` // YYYY-MM-DD, the planned day
	Location Location `json:"location" binding:"required"`

	Building model.BuildingEnvelope `json:"building" binding:"required"`
	Heating  sim.HeatingParams      `json:"heating,omitempty"`
	Battery  model.BatteryConfig    `json:"battery" binding:"required"`
	Solar    data.PVSetup           `json:"solar,omitempty"`

	Occupancy     []float64        `json:"occupancy,omitempty"`
	Appliances    []appliance.Kind `json:"appliances,omitempty"`
	ResolutionMin int              `json:"resolution_min,omitempty"`

	// Seed makes appliance sampling reproducible; zero draws fresh samples.
	Seed int64 `json:"seed,omitempty"`

	// Series optionally pre-resolves the external inputs, bypassing the
	// live weather/price/solar collaborators.
	Series *SeriesOverride `json:"series,omitempty"`
}

// Location pins the building and its price area.
type Location struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	PriceArea string  `json:"price_area,omitempty"` // default "NO1"
}

// SeriesOverride carries externally resolved hourly series.
type SeriesOverride struct {
	OutsideTempsC []float64 `json:"outside_temps_c,omitempty"`
	SolarKWh      []float64 `json:"solar_kwh,omitempty"`
	PricesPerKWh  []float64 `json:"prices_per_kwh,omitempty"`
}

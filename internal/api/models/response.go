package models

import (
	"homeplan/internal/analysis"
	"homeplan/internal/appliance"
	"homeplan/internal/sim"
)

// SimulateResponse represents the response from a simulation run.
type SimulateResponse struct {
	Status       string `json:"status"`
	Day          string `json:"day"`
	LocationName string `json:"location_name,omitempty"`

	Summary analysis.Summary `json:"summary"`
	Result  *sim.Result      `json:"result"`
}

// ApplianceInfo describes one catalog entry.
type ApplianceInfo struct {
	Kind  appliance.Kind  `json:"kind"`
	Stats appliance.Stats `json:"stats"`
}

// BuildingInfo represents one building preset on disk.
type BuildingInfo struct {
	ID   string `json:"id"`
	File string `json:"file"`

	FloorAreaM2  float64 `json:"floor_area_m2"`
	GlazingRatio float64 `json:"glazing_ratio"`
	RoofType     string  `json:"roof_type"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

package data

import (
	"encoding/json"
	"fmt"
	"os"

	"homeplan/internal/model"
)

// SeriesFile is the on-disk shape for pre-resolved external series, used by
// the CLI when running offline instead of against the live collaborators.
type SeriesFile struct {
	OutsideTempsC []float64 `json:"outside_temps_c"`
	SolarKWh      []float64 `json:"solar_kwh"`
	PricesPerKWh  []float64 `json:"prices_per_kwh"`
	Occupancy     []float64 `json:"occupancy,omitempty"`
}

// LoadSeriesJSON reads and length-checks a series file.
func LoadSeriesJSON(path string) (*SeriesFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf SeriesFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("failed to decode series JSON: %w", err)
	}
	if err := model.CheckHourly("outside_temps_c", sf.OutsideTempsC); err != nil {
		return nil, err
	}
	if err := model.CheckHourly("solar_kwh", sf.SolarKWh); err != nil {
		return nil, err
	}
	if err := model.CheckHourly("prices_per_kwh", sf.PricesPerKWh); err != nil {
		return nil, err
	}
	if sf.Occupancy != nil {
		if err := model.CheckHourly("occupancy", sf.Occupancy); err != nil {
			return nil, err
		}
	}
	return &sf, nil
}

package data

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"homeplan/internal/model"
)

// PVSetup describes a rooftop installation.
type PVSetup struct {
	PeakPowerKW float64 `yaml:"peak_power_kw" json:"peak_power_kw"`
	TiltDeg     float64 `yaml:"tilt_deg" json:"tilt_deg"`
	AzimuthDeg  float64 `yaml:"azimuth_deg" json:"azimuth_deg"` // 180 = south-facing
	Efficiency  float64 `yaml:"efficiency" json:"efficiency"`   // system losses, (0, 1]
	// TempCoefficient is the power derating per °C above 25°C, in %/°C
	// (typically around -0.4).
	TempCoefficient float64 `yaml:"temp_coefficient" json:"temp_coefficient"`
}

func (s PVSetup) withDefaults() PVSetup {
	if s.Efficiency == 0 {
		s.Efficiency = 0.95
	}
	return s
}

// SolarEstimator approximates hourly PV generation from the sun's position.
// It is a collaborator of the simulation, not part of it: the core consumes
// the resulting series without knowing where it came from.
type SolarEstimator struct {
	Setup PVSetup
}

// HourlyGeneration estimates 24 hourly PV yields (kWh) for the given day at
// (lat, lon). tempsC feeds the cell-temperature derating; a nil series
// assumes 15°C throughout.
func (e SolarEstimator) HourlyGeneration(lat, lon float64, day time.Time, tempsC []float64) []float64 {
	setup := e.Setup.withDefaults()
	gen := make([]float64, model.HoursPerDay)
	if setup.PeakPowerKW <= 0 {
		return gen
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	tiltRad := setup.TiltDeg * math.Pi / 180

	for h := 0; h < model.HoursPerDay; h++ {
		// Sample the sun at the middle of the hour.
		ts := midnight.Add(time.Duration(h)*time.Hour + 30*time.Minute)
		pos := suncalc.GetPosition(ts, lat, lon)
		if pos.Altitude <= 0 {
			continue
		}

		// Geometric factor: sun height plus a crude plane-of-array gain
		// for tilt and azimuth alignment. suncalc azimuths are measured
		// from south, ours from north.
		sunAzDeg := pos.Azimuth*180/math.Pi + 180
		alignment := math.Cos((sunAzDeg - setup.AzimuthDeg) * math.Pi / 180)
		incidence := math.Sin(pos.Altitude)*math.Cos(tiltRad) +
			math.Cos(pos.Altitude)*math.Sin(tiltRad)*math.Max(alignment, 0)
		if incidence <= 0 {
			continue
		}

		temp := 15.0
		if tempsC != nil && h < len(tempsC) {
			temp = tempsC[h]
		}
		tempFactor := 1 + setup.TempCoefficient*(temp-25)/100

		kw := setup.PeakPowerKW * incidence * tempFactor * setup.Efficiency
		if kw > 0 {
			gen[h] = kw // 1-hour buckets, kW == kWh
		}
	}
	return gen
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"homeplan/internal/appliance"
	"homeplan/internal/data"
	"homeplan/internal/model"
	"homeplan/internal/sim"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load the building envelope from a separate YAML preset
	// (e.g. examples/buildings/*.yaml). Explicit fields under Building
	// override the preset.
	BuildingFile string                 `yaml:"building_file"`
	Building     model.BuildingEnvelope `yaml:"building"`

	Heating sim.HeatingParams   `yaml:"heating"`
	Battery model.BatteryConfig `yaml:"battery"`
	Solar   data.PVSetup        `yaml:"solar"`

	Location Location `yaml:"location"`

	// Occupancy is 24 hourly occupant counts; nil uses DefaultOccupancy.
	Occupancy []float64 `yaml:"occupancy"`

	// Appliances defaults to the full catalog when empty.
	Appliances    []appliance.Kind `yaml:"appliances"`
	ResolutionMin int              `yaml:"resolution_min"`

	// UserAgent identifies this instance to the MET and Nominatim APIs.
	UserAgent string `yaml:"user_agent"`
}

type Location struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	PriceArea string  `yaml:"price_area"` // e.g. "NO1"
}

// DefaultOccupancy is a two-person household: home overnight and evenings,
// away during working hours.
func DefaultOccupancy() []float64 {
	occ := make([]float64, model.HoursPerDay)
	for h := range occ {
		switch {
		case h < 8:
			occ[h] = 2
		case h < 16:
			occ[h] = 0
		default:
			occ[h] = 2
		}
	}
	return occ
}

// Load reads, merges and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if c.Occupancy == nil {
		c.Occupancy = DefaultOccupancy()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config without validating it. Useful for
// debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.BuildingFile != "" {
		presetPath := c.BuildingFile
		if !filepath.IsAbs(presetPath) {
			// Prefer paths relative to the config file directory, falling
			// back to the cwd-relative path when that does not exist.
			cand := filepath.Join(filepath.Dir(path), presetPath)
			if _, err := os.Stat(cand); err == nil {
				presetPath = cand
			}
		}
		preset, err := loadBuildingFile(presetPath)
		if err != nil {
			return nil, err
		}
		c.Building = MergeBuilding(preset, c.Building)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Building.Validate(); err != nil {
		return fmt.Errorf("building config invalid: %w", err)
	}
	if err := c.Battery.Validate(); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return &model.ConfigError{Field: "location.latitude", Message: fmt.Sprintf("must be within [-90, 90], got %g", c.Location.Latitude)}
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return &model.ConfigError{Field: "location.longitude", Message: fmt.Sprintf("must be within [-180, 180], got %g", c.Location.Longitude)}
	}
	if c.Occupancy != nil {
		if err := model.CheckHourly("occupancy", c.Occupancy); err != nil {
			return err
		}
	}
	for _, kind := range c.Appliances {
		if _, err := appliance.StatsFor(kind); err != nil {
			return err
		}
	}
	return nil
}

type buildingFileWrapper struct {
	Building model.BuildingEnvelope `yaml:"building"`
}

func loadBuildingFile(path string) (model.BuildingEnvelope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.BuildingEnvelope{}, err
	}
	var w buildingFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return model.BuildingEnvelope{}, err
	}
	return w.Building, nil
}

// MergeBuilding overlays non-zero fields from override onto base. Used when
// a building preset file is combined with inline overrides.
func MergeBuilding(base, override model.BuildingEnvelope) model.BuildingEnvelope {
	out := base
	if override.LengthM != 0 {
		out.LengthM = override.LengthM
	}
	if override.WidthM != 0 {
		out.WidthM = override.WidthM
	}
	if override.WallHeightM != 0 {
		out.WallHeightM = override.WallHeightM
	}
	if override.GlazingRatio != 0 {
		out.GlazingRatio = override.GlazingRatio
	}
	if override.NumWindows != 0 {
		out.NumWindows = override.NumWindows
	}
	if override.NumDoors != 0 {
		out.NumDoors = override.NumDoors
	}
	if override.RoofType != "" {
		out.RoofType = override.RoofType
	}
	if override.RoofPitchDeg != 0 {
		out.RoofPitchDeg = override.RoofPitchDeg
	}
	if override.WallUValue != 0 {
		out.WallUValue = override.WallUValue
	}
	if override.FloorUValue != 0 {
		out.FloorUValue = override.FloorUValue
	}
	if override.RoofUValue != 0 {
		out.RoofUValue = override.RoofUValue
	}
	if override.WindowUValue != 0 {
		out.WindowUValue = override.WindowUValue
	}
	if override.DoorUValue != 0 {
		out.DoorUValue = override.DoorUValue
	}
	if override.VentilationRate != 0 {
		out.VentilationRate = override.VentilationRate
	}
	if override.AirLeakageRate != 0 {
		out.AirLeakageRate = override.AirLeakageRate
	}
	if override.WallMaterial != "" {
		out.WallMaterial = override.WallMaterial
	}
	if override.FloorMaterial != "" {
		out.FloorMaterial = override.FloorMaterial
	}
	if override.RoofMaterial != "" {
		out.RoofMaterial = override.RoofMaterial
	}
	return out
}

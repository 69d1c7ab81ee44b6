package model

import (
	"fmt"
	"math"
)

// Roof shapes recognized by the envelope model.
const (
	RoofFlat  = "flat"
	RoofGable = "gable"
	RoofShed  = "shed"
	RoofHip   = "hip"
)

// Thermal mass per square metre for typical constructions, kJ/(m²·K).
var (
	wallThermalMass = map[string]float64{
		"timber_frame":   110,
		"brick":          190,
		"cavity_brick":   150,
		"concrete_block": 170,
		"stone":          250,
		"light_steel":    120,
		"log":            160,
	}
	floorThermalMass = map[string]float64{
		"timber":          70,
		"concrete_slab":   180,
		"concrete_screed": 110,
		"raised_access":   60,
	}
	roofThermalMass = map[string]float64{
		"timber_joist":  100,
		"concrete_deck": 140,
		"metal_deck":    80,
		"green_roof":    170,
	}
)

// Linear thermal bridge psi values, W/(m·K).
var bridgePsi = map[string]float64{
	"window": 0.03,
	"door":   0.03,
	"roof":   0.06,
	"floor":  0.07,
	"corner": 0.04,
}

const (
	airDensity  = 1.2    // kg/m³
	airHeatCap  = 1005.0 // J/(kg·K)
	doorHeightM = 2.033
	doorWidthM  = 0.925
)

// BuildingEnvelope describes the geometry and fabric of a single-zone
// residential building. The thermal engine consumes only the two derived
// scalars Conductance and ThermalMass.
//
// Default U-values follow the TEK17 minimum criteria.
type BuildingEnvelope struct {
	LengthM     float64 `yaml:"length_m" json:"length_m"`
	WidthM      float64 `yaml:"width_m" json:"width_m"`
	WallHeightM float64 `yaml:"wall_height_m" json:"wall_height_m"`

	GlazingRatio float64 `yaml:"glazing_ratio" json:"glazing_ratio"` // window area / wall area, [0.05, 0.5]
	NumWindows   int     `yaml:"num_windows" json:"num_windows"`
	NumDoors     int     `yaml:"num_doors" json:"num_doors"`

	RoofType     string  `yaml:"roof_type" json:"roof_type"`
	RoofPitchDeg float64 `yaml:"roof_pitch_deg" json:"roof_pitch_deg"`

	// U-values in W/(m²·K). Zero means "use the default".
	WallUValue   float64 `yaml:"wall_u_value" json:"wall_u_value,omitempty"`
	FloorUValue  float64 `yaml:"floor_u_value" json:"floor_u_value,omitempty"`
	RoofUValue   float64 `yaml:"roof_u_value" json:"roof_u_value,omitempty"`
	WindowUValue float64 `yaml:"window_u_value" json:"window_u_value,omitempty"`
	DoorUValue   float64 `yaml:"door_u_value" json:"door_u_value,omitempty"`

	// Air exchange. VentilationRate in m³/(m²·h) of floor area,
	// AirLeakageRate in air changes per hour of the heated volume.
	VentilationRate float64 `yaml:"ventilation_rate" json:"ventilation_rate,omitempty"`
	AirLeakageRate  float64 `yaml:"air_leakage_rate" json:"air_leakage_rate,omitempty"`

	WallMaterial  string `yaml:"wall_material" json:"wall_material,omitempty"`
	FloorMaterial string `yaml:"floor_material" json:"floor_material,omitempty"`
	RoofMaterial  string `yaml:"roof_material" json:"roof_material,omitempty"`
}

// withDefaults returns a copy with zero-valued fabric parameters replaced by
// the TEK17 defaults.
func (b BuildingEnvelope) withDefaults() BuildingEnvelope {
	if b.WallUValue == 0 {
		b.WallUValue = 0.18
	}
	if b.FloorUValue == 0 {
		b.FloorUValue = 0.10
	}
	if b.RoofUValue == 0 {
		b.RoofUValue = 0.13
	}
	if b.WindowUValue == 0 {
		b.WindowUValue = 0.8
	}
	if b.DoorUValue == 0 {
		b.DoorUValue = 0.8
	}
	if b.VentilationRate == 0 {
		b.VentilationRate = 0.7
	}
	if b.AirLeakageRate == 0 {
		b.AirLeakageRate = 0.1
	}
	if b.WallMaterial == "" {
		b.WallMaterial = "timber_frame"
	}
	if b.FloorMaterial == "" {
		b.FloorMaterial = "timber"
	}
	if b.RoofMaterial == "" {
		b.RoofMaterial = "timber_joist"
	}
	return b
}

func (b BuildingEnvelope) Validate() error {
	if b.LengthM <= 0 {
		return &ConfigError{Field: "length_m", Message: "must be > 0"}
	}
	if b.WidthM <= 0 {
		return &ConfigError{Field: "width_m", Message: "must be > 0"}
	}
	if b.WallHeightM <= 0 {
		return &ConfigError{Field: "wall_height_m", Message: "must be > 0"}
	}
	if b.GlazingRatio < 0.05 || b.GlazingRatio > 0.5 {
		return &ConfigError{Field: "glazing_ratio", Message: fmt.Sprintf("must be within [0.05, 0.5], got %g", b.GlazingRatio)}
	}
	if b.NumWindows <= 0 {
		return &ConfigError{Field: "num_windows", Message: "must be > 0"}
	}
	if b.NumDoors < 0 {
		return &ConfigError{Field: "num_doors", Message: "must be >= 0"}
	}
	switch b.RoofType {
	case RoofFlat, RoofGable, RoofShed, RoofHip:
	default:
		return &ConfigError{Field: "roof_type", Message: fmt.Sprintf("unknown roof type %q", b.RoofType)}
	}
	if b.RoofType != RoofFlat && (b.RoofPitchDeg <= 0 || b.RoofPitchDeg >= 90) {
		return &ConfigError{Field: "roof_pitch_deg", Message: "must be within (0, 90) for pitched roofs"}
	}
	d := b.withDefaults()
	if _, ok := wallThermalMass[d.WallMaterial]; !ok {
		return &ConfigError{Field: "wall_material", Message: fmt.Sprintf("unknown material %q", d.WallMaterial)}
	}
	if _, ok := floorThermalMass[d.FloorMaterial]; !ok {
		return &ConfigError{Field: "floor_material", Message: fmt.Sprintf("unknown material %q", d.FloorMaterial)}
	}
	if _, ok := roofThermalMass[d.RoofMaterial]; !ok {
		return &ConfigError{Field: "roof_material", Message: fmt.Sprintf("unknown material %q", d.RoofMaterial)}
	}
	return nil
}

func (b BuildingEnvelope) wallArea() float64 {
	return 2 * (b.LengthM + b.WidthM) * b.WallHeightM
}

func (b BuildingEnvelope) floorArea() float64 {
	return b.LengthM * b.WidthM
}

func (b BuildingEnvelope) roofArea() float64 {
	pitch := b.RoofPitchDeg * math.Pi / 180
	switch b.RoofType {
	case RoofGable:
		return 2 * b.LengthM * (b.WidthM / math.Cos(pitch))
	case RoofShed:
		return b.LengthM * (b.WidthM / math.Cos(pitch))
	case RoofHip:
		return (b.WidthM / math.Cos(pitch)) * (b.LengthM / math.Cos(pitch))
	default: // flat
		return b.LengthM * b.WidthM
	}
}

// totalHeight is the ridge height including the roof.
func (b BuildingEnvelope) totalHeight() float64 {
	pitch := b.RoofPitchDeg * math.Pi / 180
	switch b.RoofType {
	case RoofGable, RoofHip:
		return b.WallHeightM + (b.WidthM/2)*math.Tan(pitch)
	case RoofShed:
		return b.WallHeightM + b.WidthM*math.Tan(pitch)
	default:
		return b.WallHeightM
	}
}

func (b BuildingEnvelope) heatedVolume() float64 {
	return b.LengthM * b.WidthM * b.totalHeight()
}

func (b BuildingEnvelope) windowArea() float64 {
	return b.wallArea() * b.GlazingRatio
}

func (b BuildingEnvelope) doorArea() float64 {
	return float64(b.NumDoors) * doorHeightM * doorWidthM
}

// Conductance returns the aggregate heat-loss conductance in kW/°C:
// fabric transmission, ventilation, infiltration and linear thermal bridges
// summed per degree of inside/outside temperature difference.
func (b BuildingEnvelope) Conductance() float64 {
	d := b.withDefaults()

	// Fabric transmission, W/K.
	transmission := d.WallUValue*d.wallArea() +
		d.RoofUValue*d.roofArea() +
		d.DoorUValue*d.doorArea() +
		d.FloorUValue*d.floorArea()

	// Ventilation and infiltration, W/K: air volume flow per hour times the
	// volumetric heat capacity of air.
	airFlow := d.VentilationRate*d.floorArea() + d.AirLeakageRate*d.heatedVolume() // m³/h
	ventilation := airFlow * airDensity * airHeatCap / 3600.0

	// Linear thermal bridges, W/K.
	var bridges float64
	for kind, length := range d.bridgeLengths() {
		bridges += bridgePsi[kind] * length
	}

	return (transmission + ventilation + bridges) / 1000.0
}

// bridgeLengths estimates the junction lengths per bridge kind in metres.
func (b BuildingEnvelope) bridgeLengths() map[string]float64 {
	windowSide := math.Sqrt(b.windowArea() / float64(b.NumWindows))

	roofLen := 2 * (b.LengthM + b.WidthM)
	switch b.RoofType {
	case RoofGable:
		roofLen += b.LengthM
	case RoofHip:
		roofLen += 4 * math.Hypot(b.LengthM/2, b.WidthM/2)
	}

	return map[string]float64{
		"window": 4 * windowSide * float64(b.NumWindows),
		"door":   2 * (doorHeightM + doorWidthM) * float64(b.NumDoors),
		"floor":  2 * (b.LengthM + b.WidthM),
		"corner": 4 * b.totalHeight(),
		"roof":   roofLen,
	}
}

// ThermalMass returns the effective heat capacity of the zone in kWh/°C:
// construction mass of walls, floor and roof plus the enclosed air.
func (b BuildingEnvelope) ThermalMass() float64 {
	d := b.withDefaults()

	// Material values are kJ/(m²·K); convert everything to J/K first.
	mass := d.wallArea()*wallThermalMass[d.WallMaterial]*1000 +
		d.floorArea()*floorThermalMass[d.FloorMaterial]*1000 +
		d.roofArea()*roofThermalMass[d.RoofMaterial]*1000 +
		d.heatedVolume()*airDensity*airHeatCap

	return mass / 3.6e6
}

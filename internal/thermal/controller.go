package thermal

// Controller kinds selectable in Params.
const (
	ControllerPID   = "pid"
	ControllerOnOff = "on_off"
)

// PIDGains are the controller gains. Zero value means "use defaults".
type PIDGains struct {
	Kp float64 `yaml:"kp" json:"kp"`
	Ki float64 `yaml:"ki" json:"ki"`
	Kd float64 `yaml:"kd" json:"kd"`
}

// DefaultPIDGains are tuned for a single-zone residential model with an
// hourly timestep.
func DefaultPIDGains() PIDGains {
	return PIDGains{Kp: 10.0, Ki: 0.05, Kd: 5.0}
}

// ControllerState is the controller memory for a single simulation run.
// It is owned by exactly one run and must not be shared or reused.
type ControllerState struct {
	Integral  float64
	PrevError float64
}

// pidOutput advances the controller by one step of length dt hours and
// returns the unclamped heating request in kW. The integral term is
// deliberately unclamped; saturation is handled only by output clamping.
func (s *ControllerState) pidOutput(g PIDGains, setpointC, insideC, dt float64) float64 {
	err := setpointC - insideC
	s.Integral += err * dt
	derivative := (err - s.PrevError) / dt
	out := g.Kp*err + g.Ki*s.Integral + g.Kd*derivative
	s.PrevError = err
	return out
}

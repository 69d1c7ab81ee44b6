package appliance

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"homeplan/internal/model"
)

const (
	// burnInDays of simulated process time are discarded before recording,
	// so the recorded day reflects stationary behavior rather than the
	// fixed OFF start state.
	burnInDays = 14

	// maxRetries bounds each rejection-sampling loop. Parameters that
	// cannot satisfy the occupancy or minimum-time constraints fail with
	// SamplingInfeasibleError instead of looping forever.
	maxRetries = 10000
)

// GeneratorConfig tunes the renewal sampling.
type GeneratorConfig struct {
	// ResolutionMin is the bucket length in minutes. Must divide 60.
	// Zero defaults to 10.
	ResolutionMin int

	// InactiveWindows are [start, end) minute-of-day intervals during which
	// occupancy is masked to zero (occupants asleep or away). Nil defaults
	// to the overnight window 23:00–07:00.
	InactiveWindows [][2]int

	// Seed makes output reproducible when non-zero. Zero seeds from the
	// clock, so every invocation draws fresh samples.
	Seed int64
}

// Generator produces stochastic usage and load profiles for one appliance
// kind via an alternating OFF/ON renewal process with geometric sojourn
// times. A Generator is for single-goroutine use.
type Generator struct {
	stats   Stats
	res     int
	windows [][2]int
	rng     *rand.Rand
}

func NewGenerator(stats Stats, cfg GeneratorConfig) (*Generator, error) {
	if cfg.ResolutionMin == 0 {
		cfg.ResolutionMin = 10
	}
	if cfg.ResolutionMin < 1 || cfg.ResolutionMin > 60 || 60%cfg.ResolutionMin != 0 {
		return nil, &model.ConfigError{Field: "resolution_min", Message: fmt.Sprintf("must divide 60, got %d", cfg.ResolutionMin)}
	}
	if cfg.InactiveWindows == nil {
		cfg.InactiveWindows = [][2]int{{0, 7 * 60}, {23 * 60, 24 * 60}}
	}
	for _, w := range cfg.InactiveWindows {
		if w[0] < 0 || w[1] > model.MinutesPerDay || w[0] >= w[1] {
			return nil, &model.ConfigError{Field: "inactive_windows", Message: fmt.Sprintf("window [%d, %d) out of range", w[0], w[1])}
		}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		stats:   stats,
		res:     cfg.ResolutionMin,
		windows: cfg.InactiveWindows,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// SampleUsage simulates the renewal process against the hourly occupancy
// series and returns a 0/1 usage value per bucket for one day.
func (g *Generator) SampleUsage(occupancy []float64) ([]float64, error) {
	mask, err := g.occupancyMask(occupancy)
	if err != nil {
		return nil, err
	}

	buckets := model.MinutesPerDay / g.res
	meanRestart := math.Max(g.stats.MeanRestartMin/float64(g.res), 1.0)
	meanCycle := math.Max(g.stats.MeanCycleMin/float64(g.res), 1.0)

	usage := make([]float64, buckets)
	recordFrom := burnInDays * buckets
	horizon := (burnInDays + 1) * buckets

	on := false
	for t := 0; t < horizon; {
		local := t % buckets
		var span int
		if !on {
			// Restart must land on an occupied bucket and respect the
			// minimum idle floor.
			span, err = g.sampleAccepted(meanRestart, func(w int) bool {
				return mask[(local+w)%buckets] >= 1 &&
					float64(w*g.res) >= g.stats.MinRestartMin
			})
		} else {
			span, err = g.sampleAccepted(meanCycle, func(w int) bool {
				return float64(w*g.res) >= g.stats.MinCycleMin
			})
		}
		if err != nil {
			return nil, err
		}
		if on && t >= recordFrom {
			// Record the ON segment, wrapping bucket indices into the day.
			for i := 0; i < span && i < buckets; i++ {
				usage[(local+i)%buckets] = 1
			}
		}
		t += span
		on = !on
	}

	return usage, nil
}

// HourlyLoad samples a usage profile and folds it into 24 hourly kWh values.
func (g *Generator) HourlyLoad(occupancy []float64) ([]float64, error) {
	usage, err := g.SampleUsage(occupancy)
	if err != nil {
		return nil, err
	}
	perBucketKWh := g.stats.AvgPowerKW * float64(g.res) / 60.0
	hourly := make([]float64, model.HoursPerDay)
	for i, u := range usage {
		hour := i * g.res / 60
		hourly[hour] += u * perBucketKWh
	}
	return hourly, nil
}

// occupancyMask expands hourly occupant counts to buckets and zeroes the
// inactive windows.
func (g *Generator) occupancyMask(occupancy []float64) ([]float64, error) {
	if err := model.CheckHourly("occupancy", occupancy); err != nil {
		return nil, err
	}
	for h, o := range occupancy {
		if o < 0 {
			return nil, &model.ConfigError{Field: "occupancy", Message: fmt.Sprintf("hour %d: must be >= 0, got %g", h, o)}
		}
	}
	buckets := model.MinutesPerDay / g.res
	mask := make([]float64, buckets)
	for i := range mask {
		mask[i] = occupancy[i*g.res/60]
	}
	for _, w := range g.windows {
		for m := w[0]; m < w[1]; m += g.res {
			mask[m/g.res] = 0
		}
	}
	return mask, nil
}

// sampleAccepted draws geometric sojourn times until accept passes, failing
// once the retry budget is exhausted.
func (g *Generator) sampleAccepted(mean float64, accept func(int) bool) (int, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		w := g.geometric(1.0 / mean)
		if accept(w) {
			return w, nil
		}
	}
	return 0, &model.SamplingInfeasibleError{Appliance: string(g.stats.Kind), Attempts: maxRetries}
}

// geometric draws from the geometric distribution on {1, 2, ...} with
// success probability p, by inversion.
func (g *Generator) geometric(p float64) int {
	if p >= 1 {
		return 1
	}
	u := g.rng.Float64()
	return int(math.Floor(math.Log(1-u)/math.Log(1-p))) + 1
}

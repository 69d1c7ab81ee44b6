package sim

import (
	"time"

	"homeplan/internal/model"
)

// Timestamps attaches wall-clock hour starts to the simulated day. The
// engines themselves are timezone-free; this is the only place timestamps
// enter the picture.
func Timestamps(day time.Time) []time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	ts := make([]time.Time, model.HoursPerDay)
	for h := range ts {
		ts[h] = midnight.Add(time.Duration(h) * time.Hour)
	}
	return ts
}

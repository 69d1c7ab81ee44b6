package data

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homeplan/internal/model"
)

func metTestServer(t *testing.T, day time.Time, hours int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("request missing User-Agent")
		}

		type entry struct {
			Time time.Time `json:"time"`
			Data struct {
				Instant struct {
					Details struct {
						AirTemperature float64 `json:"air_temperature"`
					} `json:"details"`
				} `json:"instant"`
			} `json:"data"`
		}
		var series []entry
		midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		for h := 0; h < hours; h++ {
			var e entry
			e.Time = midnight.Add(time.Duration(h) * time.Hour)
			e.Data.Instant.Details.AirTemperature = float64(h) - 5
			series = append(series, e)
		}
		resp := map[string]interface{}{
			"properties": map[string]interface{}{"timeseries": series},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestHourlyTemperatures(t *testing.T) {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	srv := metTestServer(t, day, 24)
	defer srv.Close()

	c := NewMETClient("homeplan-test/1.0")
	c.BaseURL = srv.URL

	temps, err := c.HourlyTemperatures(59.91, 10.75, day)
	if err != nil {
		t.Fatalf("HourlyTemperatures() error: %v", err)
	}
	if len(temps) != model.HoursPerDay {
		t.Fatalf("len = %d, want %d", len(temps), model.HoursPerDay)
	}
	if temps[0] != -5 || temps[23] != 18 {
		t.Fatalf("temps = [%g ... %g], want -5 ... 18", temps[0], temps[23])
	}
}

func TestHourlyTemperaturesCached(t *testing.T) {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	srv := metTestServer(t, day, 24)

	c := NewMETClient("homeplan-test/1.0")
	c.BaseURL = srv.URL

	first, err := c.HourlyTemperatures(59.91, 10.75, day)
	if err != nil {
		t.Fatalf("HourlyTemperatures() error: %v", err)
	}
	// With the server gone, only the cache can answer.
	srv.Close()
	second, err := c.HourlyTemperatures(59.91, 10.75, day)
	if err != nil {
		t.Fatalf("HourlyTemperatures() after close: %v", err)
	}
	for h := range first {
		if first[h] != second[h] {
			t.Fatalf("hour %d: cached value %g differs from %g", h, second[h], first[h])
		}
	}
}

func TestHourlyTemperaturesIncomplete(t *testing.T) {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	srv := metTestServer(t, day, 12)
	defer srv.Close()

	c := NewMETClient("homeplan-test/1.0")
	c.BaseURL = srv.URL

	_, err := c.HourlyTemperatures(59.91, 10.75, day)
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
}

func TestHourlyTemperaturesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forecast unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewMETClient("homeplan-test/1.0")
	c.BaseURL = srv.URL

	_, err := c.HourlyTemperatures(59.91, 10.75, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if upErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("StatusCode = %d, want %d", upErr.StatusCode, http.StatusServiceUnavailable)
	}
}

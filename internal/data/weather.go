package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"homeplan/internal/model"
)

// METClient fetches hourly air temperatures from the MET Norway Location
// Forecast API. Responses are cached per (location, day) for an hour, as
// the upstream forecast updates on that cadence.
type METClient struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client

	cache *Cache[[]float64]
}

// NewMETClient creates a weather client. The MET API requires an
// identifying User-Agent.
func NewMETClient(userAgent string) *METClient {
	return &METClient{
		BaseURL:   "https://api.met.no/weatherapi/locationforecast/2.0",
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: 30 * time.Second},
		cache:     NewCache[[]float64](1*time.Hour, 100),
	}
}

// metForecast is the subset of the compact forecast response we consume.
type metForecast struct {
	Properties struct {
		Timeseries []struct {
			Time time.Time `json:"time"`
			Data struct {
				Instant struct {
					Details struct {
						AirTemperature *float64 `json:"air_temperature"`
					} `json:"details"`
				} `json:"instant"`
			} `json:"data"`
		} `json:"timeseries"`
	} `json:"properties"`
}

// HourlyTemperatures returns 24 outside air temperatures (°C) for the given
// day at (lat, lon). Fails with UpstreamError if the forecast does not cover
// every hour of the day; the simulation never runs on a partial series.
func (c *METClient) HourlyTemperatures(lat, lon float64, day time.Time) ([]float64, error) {
	key := fmt.Sprintf("%.4f:%.4f:%s", lat, lon, day.Format("2006-01-02"))
	if temps, ok := c.cache.Get(key); ok {
		return temps, nil
	}

	u, err := url.Parse(c.BaseURL + "/compact")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("lat", fmt.Sprintf("%.4f", lat))
	q.Set("lon", fmt.Sprintf("%.4f", lon))
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Source: "met.no", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Source: "met.no", StatusCode: resp.StatusCode, Message: string(body)}
	}

	var forecast metForecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to decode forecast: %w", err)
	}

	temps := make([]float64, model.HoursPerDay)
	found := make([]bool, model.HoursPerDay)
	dayStr := day.Format("2006-01-02")
	for _, step := range forecast.Properties.Timeseries {
		local := step.Time.In(day.Location())
		if local.Format("2006-01-02") != dayStr || step.Data.Instant.Details.AirTemperature == nil {
			continue
		}
		h := local.Hour()
		if !found[h] {
			temps[h] = *step.Data.Instant.Details.AirTemperature
			found[h] = true
		}
	}
	for h, ok := range found {
		if !ok {
			return nil, &UpstreamError{
				Source:  "met.no",
				Message: fmt.Sprintf("forecast missing hour %d of %s", h, dayStr),
			}
		}
	}

	c.cache.Set(key, temps)
	return temps, nil
}

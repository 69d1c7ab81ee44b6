package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"homeplan/internal/model"
)

// PriceClient fetches day-ahead spot prices from the hvakosterstrommen.no
// API, one JSON document per bidding area and day. Prices there are
// published around 13:00 the day before delivery and never change, so
// cached entries stay valid for the whole process lifetime budget.
type PriceClient struct {
	BaseURL string
	Area    string // bidding area, e.g. "NO1"
	Client  *http.Client

	cache *Cache[[]float64]
}

// NewPriceClient creates a spot-price client for the given bidding area.
// An empty area defaults to NO1 (south-east Norway).
func NewPriceClient(area string) *PriceClient {
	if area == "" {
		area = "NO1"
	}
	return &PriceClient{
		BaseURL: "https://www.hvakosterstrommen.no/api/v1/prices",
		Area:    area,
		Client:  &http.Client{Timeout: 30 * time.Second},
		cache:   NewCache[[]float64](24*time.Hour, 50),
	}
}

type spotPrice struct {
	NOKPerKWh float64   `json:"NOK_per_kWh"`
	TimeStart time.Time `json:"time_start"`
}

// HourlyPrices returns 24 spot prices (NOK/kWh) for the given day. Prices
// may be negative. Fails with UpstreamError when the day is not published
// yet or the series is incomplete.
func (c *PriceClient) HourlyPrices(day time.Time) ([]float64, error) {
	key := c.Area + ":" + day.Format("2006-01-02")
	if prices, ok := c.cache.Get(key); ok {
		return prices, nil
	}

	// URL shape: /api/v1/prices/2026/08-29_NO1.json
	u := fmt.Sprintf("%s/%d/%02d-%02d_%s.json", c.BaseURL, day.Year(), int(day.Month()), day.Day(), c.Area)

	resp, err := c.Client.Get(u)
	if err != nil {
		return nil, &UpstreamError{Source: "hvakosterstrommen.no", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Source: "hvakosterstrommen.no", StatusCode: resp.StatusCode, Message: string(body)}
	}

	var rows []spotPrice
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode prices: %w", err)
	}

	prices := make([]float64, model.HoursPerDay)
	found := make([]bool, model.HoursPerDay)
	for _, row := range rows {
		h := row.TimeStart.In(day.Location()).Hour()
		if h >= 0 && h < model.HoursPerDay && !found[h] {
			prices[h] = row.NOKPerKWh
			found[h] = true
		}
	}
	for h, ok := range found {
		if !ok {
			return nil, &UpstreamError{
				Source:  "hvakosterstrommen.no",
				Message: fmt.Sprintf("prices missing hour %d of %s", h, day.Format("2006-01-02")),
			}
		}
	}

	c.cache.Set(key, prices)
	return prices, nil
}

package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GeocodeClient resolves coordinates to a display name via Nominatim.
// Purely cosmetic: results only label the report.
type GeocodeClient struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client

	cache *Cache[string]
}

func NewGeocodeClient(userAgent string) *GeocodeClient {
	return &GeocodeClient{
		BaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: 10 * time.Second},
		cache:     NewCache[string](24*time.Hour, 100),
	}
}

// LocationName returns a human-readable name for (lat, lon), or "Unknown
// Location" when the lookup fails. Geocoding failures never fail a run.
func (c *GeocodeClient) LocationName(lat, lon float64) string {
	key := fmt.Sprintf("%.4f:%.4f", lat, lon)
	if name, ok := c.cache.Get(key); ok {
		return name
	}

	u, err := url.Parse(c.BaseURL + "/reverse")
	if err != nil {
		return "Unknown Location"
	}
	q := u.Query()
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return "Unknown Location"
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "Unknown Location"
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "Unknown Location"
	}

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.DisplayName == "" {
		return "Unknown Location"
	}

	c.cache.Set(key, body.DisplayName)
	return body.DisplayName
}

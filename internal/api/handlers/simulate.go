package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"homeplan/internal/analysis"
	"homeplan/internal/api/models"
	"homeplan/internal/config"
	"homeplan/internal/data"
	"homeplan/internal/model"
	"homeplan/internal/sim"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	weather *data.METClient
	geocode *data.GeocodeClient

	mu     sync.Mutex
	prices map[string]*data.PriceClient // one client per bidding area
}

// NewSimulateHandler creates a new simulate handler. The userAgent
// identifies this instance to the MET and Nominatim APIs.
func NewSimulateHandler(userAgent string) *SimulateHandler {
	return &SimulateHandler{
		weather: data.NewMETClient(userAgent),
		geocode: data.NewGeocodeClient(userAgent),
		prices:  make(map[string]*data.PriceClient),
	}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Day, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "day must be formatted YYYY-MM-DD: " + err.Error(),
			},
		})
		return
	}

	occupancy := req.Occupancy
	if occupancy == nil {
		occupancy = config.DefaultOccupancy()
	}

	temps, solar, prices, err := h.resolveSeries(&req, day)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := sim.Run(&sim.Request{
		Envelope:      req.Building,
		Heating:       req.Heating,
		Battery:       req.Battery,
		Appliances:    req.Appliances,
		ResolutionMin: req.ResolutionMin,
		Seed:          req.Seed,
		Occupancy:     occupancy,
		OutsideTempsC: temps,
		SolarKWh:      solar,
		PricesPerKWh:  prices,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SimulateResponse{
		Status:       "completed",
		Day:          req.Day,
		LocationName: h.geocode.LocationName(req.Location.Latitude, req.Location.Longitude),
		Summary:      analysis.SummarizeResult(result),
		Result:       result,
	})
}

// resolveSeries fills in the three external hourly series, preferring
// explicit overrides from the request over the live collaborators.
func (h *SimulateHandler) resolveSeries(req *models.SimulateRequest, day time.Time) (temps, solar, prices []float64, err error) {
	if req.Series != nil {
		temps = req.Series.OutsideTempsC
		solar = req.Series.SolarKWh
		prices = req.Series.PricesPerKWh
	}

	lat, lon := req.Location.Latitude, req.Location.Longitude

	if temps == nil {
		temps, err = h.weather.HourlyTemperatures(lat, lon, day)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if prices == nil {
		prices, err = h.priceClient(req.Location.PriceArea).HourlyPrices(day)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if solar == nil {
		solar = data.SolarEstimator{Setup: req.Solar}.HourlyGeneration(lat, lon, day, temps)
	}
	return temps, solar, prices, nil
}

func (h *SimulateHandler) priceClient(area string) *data.PriceClient {
	if area == "" {
		area = "NO1"
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if pc, ok := h.prices[area]; ok {
		return pc
	}
	pc := data.NewPriceClient(area)
	h.prices[area] = pc
	return pc
}

// writeError maps internal errors onto the API error envelope.
func writeError(c *gin.Context, err error) {
	var cfgErr *model.ConfigError
	if errors.As(err, &cfgErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CONFIG_ERROR",
				Message: cfgErr.Error(),
				Details: map[string]interface{}{"field": cfgErr.Field},
			},
		})
		return
	}

	var upErr *data.UpstreamError
	if errors.As(err, &upErr) {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UPSTREAM_UNAVAILABLE",
				Message: upErr.Error(),
				Details: map[string]interface{}{
					"source":      upErr.Source,
					"status_code": upErr.StatusCode,
				},
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "SIMULATION_ERROR",
			Message: err.Error(),
		},
	})
}

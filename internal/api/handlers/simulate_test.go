package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homeplan/internal/api/models"

	"github.com/gin-gonic/gin"
)

func testRouter() (*gin.Engine, *SimulateHandler) {
	gin.SetMode(gin.TestMode)
	h := NewSimulateHandler("homeplan-test/1.0")
	// Keep tests offline: any accidental geocode call fails immediately.
	h.geocode.BaseURL = "http://127.0.0.1:0"

	r := gin.New()
	r.POST("/api/v1/simulate", h.Simulate)
	r.GET("/api/v1/appliances", ListAppliances)
	return r, h
}

func simulateBody() map[string]interface{} {
	series := func(v float64) []float64 {
		s := make([]float64, 24)
		for i := range s {
			s[i] = v
		}
		return s
	}
	return map[string]interface{}{
		"day": "2026-01-15",
		"location": map[string]interface{}{
			"latitude":  59.91,
			"longitude": 10.75,
		},
		"building": map[string]interface{}{
			"length_m":       10,
			"width_m":        8,
			"wall_height_m":  2.4,
			"glazing_ratio":  0.2,
			"num_windows":    8,
			"num_doors":      2,
			"roof_type":      "gable",
			"roof_pitch_deg": 35,
		},
		"battery": map[string]interface{}{
			"capacity_kwh": 10,
			"max_power_kw": 5,
			"initial_soc":  50,
		},
		"seed": 42,
		"series": map[string]interface{}{
			"outside_temps_c": series(-2),
			"solar_kwh":       series(0),
			"prices_per_kwh":  series(0.5),
		},
	}
}

func postSimulate(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSimulateEndpoint(t *testing.T) {
	r, _ := testRouter()
	w := postSimulate(t, r, simulateBody())

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp models.SimulateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "completed" {
		t.Fatalf("Status = %q, want completed", resp.Status)
	}
	if resp.Result == nil || len(resp.Result.GridPowerKW) != 24 {
		t.Fatalf("incomplete result: %+v", resp.Result)
	}
	if resp.Summary.PlanCost > resp.Summary.BaselineCost+1e-9 {
		t.Fatalf("plan cost %g exceeds baseline %g", resp.Summary.PlanCost, resp.Summary.BaselineCost)
	}
	if resp.LocationName != "Unknown Location" {
		t.Fatalf("LocationName = %q, want offline fallback", resp.LocationName)
	}
}

func TestSimulateEndpointBadDay(t *testing.T) {
	r, _ := testRouter()
	body := simulateBody()
	body["day"] = "15.01.2026"

	w := postSimulate(t, r, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_REQUEST" {
		t.Fatalf("code = %q, want INVALID_REQUEST", resp.Error.Code)
	}
}

func TestSimulateEndpointConfigError(t *testing.T) {
	r, _ := testRouter()
	body := simulateBody()
	body["building"].(map[string]interface{})["glazing_ratio"] = 0.9

	w := postSimulate(t, r, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "CONFIG_ERROR" {
		t.Fatalf("code = %q, want CONFIG_ERROR", resp.Error.Code)
	}
	if resp.Error.Details["field"] != "glazing_ratio" {
		t.Fatalf("details = %v, want field glazing_ratio", resp.Error.Details)
	}
}

func TestAppliancesEndpoint(t *testing.T) {
	r, _ := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appliances", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Appliances []models.ApplianceInfo `json:"appliances"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Appliances) != 4 {
		t.Fatalf("catalog size = %d, want 4", len(resp.Appliances))
	}
	for _, a := range resp.Appliances {
		if a.Stats.AvgPowerKW <= 0 {
			t.Fatalf("appliance %s has no power rating", a.Kind)
		}
	}
}

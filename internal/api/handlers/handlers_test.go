package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backup-power-sim/internal/api/models"
	"backup-power-sim/internal/data"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(store *data.ResultStore) *gin.Engine {
	r := gin.New()
	sh := NewSimulateHandler(store)
	ph := NewPolicyHandler()
	r.POST("/api/v1/simulate", sh.RunSimulation)
	r.GET("/api/v1/simulations/:id/ledger", sh.GetLedger)
	r.GET("/api/v1/policies", ph.ListPolicies)
	return r
}

func simConfig() models.SimConfig {
	return models.SimConfig{
		Battery: models.BatteryConfig{
			StackCount:          16,
			AutonomyDays:        1,
			UnitCapacityKWh:     12.8,
			ChargeEfficiency:    0.96,
			DischargeEfficiency: 0.96,
			MinSOC:              0.2,
			MaxSOC:              0.9,
		},
		Hydrogen: models.HydrogenConfig{
			TankCapacityKg:         150,
			ElectrolyzerEfficiency: 0.65,
			FuelCellEfficiency:     0.5,
			EnergyDensityKWhPerKg:  39.4,
			ElectrolyzerMaxKW:      100,
			FuelCellMaxKW:          50,
			NominalPressureBar:     350,
			InitialFillPercent:     28,
		},
	}
}

func postSimulate(t *testing.T, r *gin.Engine, req models.SimulateRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, httpReq)
	return w
}

func TestRunSimulation_Synthetic(t *testing.T) {
	r := testRouter(data.NewResultStore(time.Hour))

	req := models.SimulateRequest{
		Synthetic: &models.SyntheticInput{
			Start:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Hours:           24,
			StepMinutes:     60,
			BaseLoadKW:      20,
			PeakLoadKW:      60,
			SurplusPeakKW:   40,
			OutageStartHour: 18,
			OutageHours:     4,
		},
		Config: simConfig(),
	}

	w := postSimulate(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 24, resp.Summary.TotalIntervals)
	assert.Greater(t, resp.Summary.DemandKWh, 0.0)
	assert.Empty(t, resp.Ledger) // include_ledger defaults to false
}

func TestRunSimulation_InlineProfileWithLedger(t *testing.T) {
	r := testRouter(data.NewResultStore(time.Hour))

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	req := models.SimulateRequest{
		Profile: &models.ProfileInput{
			Name: "unit",
			Data: []models.NetLoadInterval{
				{IntervalStart: start, IntervalEnd: start.Add(time.Hour), Site: "depot", NetLoadKW: 50},
				{IntervalStart: start.Add(time.Hour), IntervalEnd: start.Add(2 * time.Hour), Site: "depot", NetLoadKW: -80},
			},
		},
		Config:  simConfig(),
		Options: models.SimulateOptions{IncludeLedger: true},
	}

	w := postSimulate(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Ledger, 2)
	assert.Equal(t, "DISCHARGING", resp.Ledger[0].BatteryStatus)
	assert.InDelta(t, 50, resp.Ledger[0].ServedKW, 1e-6)
	assert.Equal(t, "CHARGING", resp.Ledger[1].BatteryStatus)
}

func TestRunSimulation_LimitIntervals(t *testing.T) {
	r := testRouter(data.NewResultStore(time.Hour))

	req := models.SimulateRequest{
		Synthetic: &models.SyntheticInput{
			Start:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Hours:       24,
			StepMinutes: 60,
			BaseLoadKW:  20,
			PeakLoadKW:  60,
		},
		Config:  simConfig(),
		Options: models.SimulateOptions{LimitIntervals: 5},
	}

	w := postSimulate(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Summary.TotalIntervals)
}

func TestRunSimulation_MissingProfile(t *testing.T) {
	r := testRouter(data.NewResultStore(time.Hour))

	w := postSimulate(t, r, models.SimulateRequest{Config: simConfig()})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PROFILE", resp.Error.Code)
}

func TestRunSimulation_InvalidConfig(t *testing.T) {
	r := testRouter(data.NewResultStore(time.Hour))

	cfg := simConfig()
	cfg.Battery.ChargeEfficiency = 1.5

	req := models.SimulateRequest{
		Synthetic: &models.SyntheticInput{
			Start:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Hours:       2,
			StepMinutes: 60,
			BaseLoadKW:  20,
			PeakLoadKW:  60,
		},
		Config: cfg,
	}

	w := postSimulate(t, r, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CONFIG", resp.Error.Code)
}

func TestGetLedger_RoundTrip(t *testing.T) {
	store := data.NewResultStore(time.Hour)
	r := testRouter(store)

	req := models.SimulateRequest{
		Synthetic: &models.SyntheticInput{
			Start:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Hours:           6,
			StepMinutes:     60,
			BaseLoadKW:      20,
			PeakLoadKW:      60,
			OutageStartHour: 0,
			OutageHours:     6,
		},
		Config: simConfig(),
	}

	w := postSimulate(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/simulations/"+resp.ID+"/ledger", nil))
	require.Equal(t, http.StatusOK, w2.Code)

	var ledgerResp struct {
		ID     string             `json:"id"`
		Ledger []models.LedgerRow `json:"ledger"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &ledgerResp))
	assert.Equal(t, resp.ID, ledgerResp.ID)
	assert.Len(t, ledgerResp.Ledger, 6)
}

func TestGetLedger_NotFound(t *testing.T) {
	r := testRouter(data.NewResultStore(time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/simulations/missing/ledger", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPolicies(t *testing.T) {
	r := testRouter(data.NewResultStore(time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/policies", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Policies []models.PolicyInfo `json:"policies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Policies, 2)
	assert.Equal(t, "greedy", resp.Policies[0].Name)
	assert.Equal(t, "schedule", resp.Policies[1].Name)
}

func TestListAssets_FromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "island.yaml"), []byte(`battery:
  name: island-bank
  stack_count: 16
  autonomy_days: 1
  unit_capacity_kwh: 12.8
hydrogen:
  tank_capacity_kg: 150
  fuelcell_max_kw: 50
`), 0o644))
	t.Setenv("ASSET_DIR", dir)

	r := gin.New()
	r.GET("/api/v1/assets", NewAssetHandler().ListAssets)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Assets []models.AssetInfo `json:"assets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Assets, 1)
	assert.Equal(t, "island", resp.Assets[0].ID)
	assert.Equal(t, "island-bank", resp.Assets[0].Name)
	assert.InDelta(t, 204.8, resp.Assets[0].Specs.BatteryCapacityKWh, 0.001)
	assert.InDelta(t, 150, resp.Assets[0].Specs.TankCapacityKg, 0.001)
}

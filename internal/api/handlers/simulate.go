package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"backup-power-sim/internal/analysis"
	"backup-power-sim/internal/api/models"
	"backup-power-sim/internal/config"
	"backup-power-sim/internal/data"
	"backup-power-sim/internal/dispatch"
	"backup-power-sim/internal/model"
	"backup-power-sim/internal/sim"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles simulation-related requests
type SimulateHandler struct {
	store *data.ResultStore
}

// NewSimulateHandler creates a new simulation handler
func NewSimulateHandler(store *data.ResultStore) *SimulateHandler {
	return &SimulateHandler{store: store}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
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

	intervals, err := buildIntervals(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PROFILE",
				Message: err.Error(),
			},
		})
		return
	}

	// Apply interval limit if specified
	if req.Options.LimitIntervals > 0 && req.Options.LimitIntervals < len(intervals) {
		intervals = intervals[:req.Options.LimitIntervals]
	}

	cfg, err := buildConfig(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	bank, hfs, err := cfg.ToInputs().Build()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_ASSETS",
				Message: err.Error(),
			},
		})
		return
	}

	pol, err := dispatch.Build(cfg.Policy.Name, cfg.Policy.Params, bank.Params.CapacityKWh())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_POLICY",
				Message: err.Error(),
			},
		})
		return
	}

	engine := sim.New()
	result, err := engine.Run(intervals, bank, hfs, pol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	id := h.store.Put(result)

	response := models.SimulateResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(result),
	}
	if req.Options.IncludeLedger {
		response.Ledger = convertLedger(result.Ledger)
	}

	c.JSON(http.StatusOK, response)
}

// GetLedger handles GET /api/v1/simulations/:id/ledger
func (h *SimulateHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")

	result, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("no stored simulation with id %q (results expire)", id),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     id,
		"ledger": convertLedger(result.Ledger),
	})
}

// Helper functions shared by the REST and websocket handlers.

func buildIntervals(req *models.SimulateRequest) ([]model.NetLoadInterval, error) {
	switch {
	case req.Profile != nil && req.Synthetic != nil:
		return nil, fmt.Errorf("provide either profile or synthetic, not both")
	case req.Profile != nil:
		if len(req.Profile.Data) == 0 {
			return nil, fmt.Errorf("profile.data is empty")
		}
		intervals := make([]model.NetLoadInterval, len(req.Profile.Data))
		for i, it := range req.Profile.Data {
			intervals[i] = model.NetLoadInterval{
				IntervalStart: it.IntervalStart,
				IntervalEnd:   it.IntervalEnd,
				Site:          it.Site,
				NetLoadKW:     it.NetLoadKW,
			}
		}
		return intervals, nil
	case req.Synthetic != nil:
		s := req.Synthetic
		p, err := data.GenerateProfile(data.SyntheticSpec{
			Site:            s.Site,
			Start:           s.Start,
			Hours:           s.Hours,
			StepMinutes:     s.StepMinutes,
			BaseLoadKW:      s.BaseLoadKW,
			PeakLoadKW:      s.PeakLoadKW,
			SurplusPeakKW:   s.SurplusPeakKW,
			OutageStartHour: s.OutageStartHour,
			OutageHours:     s.OutageHours,
			JitterKW:        s.JitterKW,
			Seed:            s.Seed,
		})
		if err != nil {
			return nil, err
		}
		return p.Data, nil
	default:
		return nil, fmt.Errorf("either profile or synthetic is required")
	}
}

func buildConfig(req models.SimConfig) (*config.Config, error) {
	cfg := &config.Config{
		Battery: config.BatteryConfig{
			Name:                req.Battery.Name,
			StackCount:          req.Battery.StackCount,
			AutonomyDays:        req.Battery.AutonomyDays,
			UnitCapacityKWh:     req.Battery.UnitCapacityKWh,
			ChargeEfficiency:    req.Battery.ChargeEfficiency,
			DischargeEfficiency: req.Battery.DischargeEfficiency,
			MinSOC:              req.Battery.MinSOC,
			MaxSOC:              req.Battery.MaxSOC,
			InitialSOC:          req.Battery.InitialSOC,
		},
		Hydrogen: config.HydrogenConfig{
			Name:                   req.Hydrogen.Name,
			TankCapacityKg:         req.Hydrogen.TankCapacityKg,
			ElectrolyzerEfficiency: req.Hydrogen.ElectrolyzerEfficiency,
			FuelCellEfficiency:     req.Hydrogen.FuelCellEfficiency,
			EnergyDensityKWhPerKg:  req.Hydrogen.EnergyDensityKWhPerKg,
			ElectrolyzerMaxKW:      req.Hydrogen.ElectrolyzerMaxKW,
			FuelCellMaxKW:          req.Hydrogen.FuelCellMaxKW,
			NominalPressureBar:     req.Hydrogen.NominalPressureBar,
			ProduceHeatRateC:       req.Hydrogen.ProduceHeatRateC,
			ConsumeHeatRateC:       req.Hydrogen.ConsumeHeatRateC,
			CooldownRateC:          req.Hydrogen.CooldownRateC,
			InitialFillPercent:     req.Hydrogen.InitialFillPercent,
			InitialTemperatureC:    req.Hydrogen.InitialTemperatureC,
		},
		Policy: config.PolicyConfig{
			Name:   req.Policy.Name,
			Params: req.Policy.Params,
		},
	}

	// If asset_file is set, resolve it in ASSET_DIR and merge request
	// overrides onto the loaded preset.
	if req.AssetFile != "" {
		assetPath := filepath.Join(AssetDir(), req.AssetFile+".yaml")
		loaded, err := config.LoadAssetFile(assetPath)
		if err != nil {
			log.Printf("SimulateHandler: failed to load asset file %s: %v", assetPath, err)
			return nil, fmt.Errorf("asset_file %q not found", req.AssetFile)
		}
		cfg.Battery = config.MergeBattery(loaded.Battery, cfg.Battery)
		cfg.Hydrogen = config.MergeHydrogen(loaded.Hydrogen, cfg.Hydrogen)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AssetDir resolves the asset preset directory: ASSET_DIR if set, otherwise
// examples/assets under the working directory.
func AssetDir() string {
	dir := os.Getenv("ASSET_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "assets")
		} else {
			dir = "./examples/assets"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

func buildSummary(result *sim.Result) models.SimSummary {
	summary := models.SimSummary{
		TotalIntervals:    len(result.Ledger),
		FinalSOC:          result.FinalSOC,
		FinalFillPercent:  result.FinalFillPercent,
		FinalTemperatureC: result.FinalTemperatureC,
		FinalPressureBar:  result.FinalPressureBar,
	}
	if len(result.Ledger) == 0 {
		summary.HoursToFirstShortfall = -1
		return summary
	}

	cov := analysis.Compute(result.Ledger)
	summary.Window = models.TimeWindow{Start: cov.Start, End: cov.End}
	summary.DemandKWh = cov.DemandKWh
	summary.ServedKWh = cov.ServedKWh
	summary.UnservedKWh = cov.UnservedKWh
	summary.CoverageFraction = cov.CoverageFraction
	summary.HoursToFirstShortfall = cov.HoursToFirstShortfall
	return summary
}

func convertLedger(ledger []sim.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(ledger))
	for i, row := range ledger {
		out[i] = convertRow(row)
	}
	return out
}

func convertRow(row sim.LedgerRow) models.LedgerRow {
	return models.LedgerRow{
		Index:              row.Index,
		IntervalStart:      row.IntervalStart,
		IntervalEnd:        row.IntervalEnd,
		Site:               row.Site,
		NetLoadKW:          row.NetLoadKW,
		BatteryChargeKW:    row.Command.BatteryChargeKW,
		BatteryDischargeKW: row.Command.BatteryDischargeKW,
		ElectrolyzerKW:     row.Command.ElectrolyzerKW,
		FuelCellKW:         row.Command.FuelCellKW,
		BatterySOCStart:    row.BatterySOCStart,
		BatterySOCEnd:      row.BatterySOCEnd,
		BatteryEnergyKWh:   row.BatteryEnergyKWh,
		BatteryStatus:      string(row.BatteryStatus.Category),
		HydrogenMassKg:     row.HydrogenMassKg,
		HydrogenFillPct:    row.HydrogenFillPercent,
		HydrogenTempC:      row.HydrogenTemperatureC,
		HydrogenPressure:   row.HydrogenPressureBar,
		HydrogenStatus:     string(row.HydrogenStatus.Category),
		ServedKW:           row.ServedKW,
		UnservedKW:         row.UnservedKW,
		AbsorbedKW:         row.AbsorbedKW,
	}
}

package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"backup-power-sim/internal/api/models"
	"backup-power-sim/internal/config"

	"github.com/gin-gonic/gin"
)

// AssetHandler handles asset preset requests
type AssetHandler struct {
	assetDir string
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler() *AssetHandler {
	dir := AssetDir()
	log.Printf("AssetHandler: using asset directory: %s", dir)
	return &AssetHandler{assetDir: dir}
}

// ListAssets handles GET /api/v1/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	assets := []models.AssetInfo{}

	entries, err := os.ReadDir(h.assetDir)
	if err != nil {
		log.Printf("AssetHandler: failed to read asset directory %s: %v", h.assetDir, err)
		c.JSON(http.StatusOK, gin.H{"assets": assets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.assetDir, entry.Name())
		info, err := h.loadAssetInfo(path, entry.Name())
		if err != nil {
			log.Printf("AssetHandler: failed to load asset file %s: %v", path, err)
			continue // Skip invalid files
		}
		assets = append(assets, *info)
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

func (h *AssetHandler) loadAssetInfo(path, filename string) (*models.AssetInfo, error) {
	w, err := config.LoadAssetFile(path)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSuffix(filename, ".yaml")
	name := w.Battery.Name
	if name == "" {
		name = id
	}

	capacity := w.Battery.UnitCapacityKWh * float64(w.Battery.StackCount) * w.Battery.AutonomyDays

	return &models.AssetInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.AssetSpecs{
			BatteryCapacityKWh: capacity,
			TankCapacityKg:     w.Hydrogen.TankCapacityKg,
			FuelCellMaxKW:      w.Hydrogen.FuelCellMaxKW,
		},
	}, nil
}

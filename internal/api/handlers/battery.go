package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"flexkit/internal/api/models"
	"flexkit/internal/config"
	"flexkit/internal/logging"

	"github.com/gin-gonic/gin"
)

// BatteryHandler lists battery presets stored as YAML files
type BatteryHandler struct {
	batteryDir string
	log        logging.Logger
}

// BatteryDir resolves BATTERY_DIR, defaulting to ./examples/batteries.
func BatteryDir() string {
	dir := os.Getenv("BATTERY_DIR")
	if dir == "" {
		dir = filepath.Join("examples", "batteries")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

// NewBatteryHandler creates a new battery handler
func NewBatteryHandler(dir string, log logging.Logger) *BatteryHandler {
	return &BatteryHandler{batteryDir: dir, log: logging.OrNop(log)}
}

// ListBatteries handles GET /api/v1/batteries
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	batteries := []models.BatteryInfo{}

	entries, err := os.ReadDir(h.batteryDir)
	if err != nil {
		h.log.Warnf("BatteryHandler: Failed to read battery directory %s: %v", h.batteryDir, err)
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.batteryDir, entry.Name())
		b, err := config.LoadBatteryFile(path)
		if err != nil {
			h.log.Warnf("BatteryHandler: Failed to load battery file %s: %v", path, err)
			continue
		}
		batteries = append(batteries, models.BatteryInfo{
			ID:   strings.TrimSuffix(entry.Name(), ".yaml"),
			Name: b.Name,
			File: path,
			Specs: models.BatterySpecs{
				CapacityKWh: b.CapacityKWh,
				PowerKW:     b.PowerKW,
			},
		})
	}

	h.log.Debugf("BatteryHandler: Returning %d batteries", len(batteries))
	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}

package handlers

import (
	"net/http"

	"flexkit/internal/api/models"
	"flexkit/internal/strategy"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

var (
	chargePriceParam = models.ParameterInfo{
		Name:        "charge_price",
		Type:        "float",
		Description: "Charge when price is below this level (per MWh)",
		Default:     100.0,
	}
	dischargePriceParam = models.ParameterInfo{
		Name:        "discharge_price",
		Type:        "float",
		Description: "Discharge when price is above this level (per MWh)",
		Default:     130.0,
	}
	greenParam = models.ParameterInfo{
		Name:        "green_threshold",
		Type:        "float",
		Description: "Charge when carbon intensity is below this level (gCO2/kWh)",
		Default:     230.0,
	}
	dirtyParam = models.ParameterInfo{
		Name:        "dirty_threshold",
		Type:        "float",
		Description: "Discharge when carbon intensity is above this level (gCO2/kWh)",
		Default:     270.0,
	}
	carbonWeightParam = models.ParameterInfo{
		Name:        "carbon_weight",
		Type:        "float",
		Description: "Weight of the carbon score in [0, 1]; the price score gets the remainder",
		Default:     0.5,
	}
)

func describe(k strategy.Kind) models.StrategyInfo {
	switch k {
	case strategy.KindPriceArbitrage:
		return models.StrategyInfo{
			Name:        string(k),
			Description: "Charges on cheap prices and discharges on expensive ones.",
			Parameters:  []models.ParameterInfo{chargePriceParam, dischargePriceParam},
		}
	case strategy.KindCarbonMinimizer:
		return models.StrategyInfo{
			Name:        string(k),
			Description: "Charges on low-carbon grid intensity and discharges on high.",
			Parameters:  []models.ParameterInfo{greenParam, dirtyParam},
		}
	case strategy.KindBlended:
		return models.StrategyInfo{
			Name:        string(k),
			Description: "Scores each step on normalized price and carbon; charges above 0.7, discharges below 0.3.",
			Parameters:  []models.ParameterInfo{carbonWeightParam},
		}
	case strategy.KindTariffAvoidance:
		return models.StrategyInfo{
			Name:        string(k),
			Description: "Charges on cheap prices and never discharges.",
			Parameters:  []models.ParameterInfo{chargePriceParam},
		}
	}
	return models.StrategyInfo{Name: string(k)}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	kinds := strategy.AllKinds()
	strategies := make([]models.StrategyInfo, 0, len(kinds))
	for _, k := range kinds {
		strategies = append(strategies, describe(k))
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}

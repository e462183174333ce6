package handlers

import (
	"net/http"

	"flexkit/internal/analysis"
	"flexkit/internal/api/models"

	"github.com/gin-gonic/gin"
)

// EstimateSize handles POST /api/v1/sizing
func EstimateSize(c *gin.Context) {
	var req models.SizingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	if req.Efficiency == 0 {
		req.Efficiency = 0.9
	}

	capacity, err := analysis.RequiredCapacity(req.DailyKWh, req.Days, req.Efficiency)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}
	c.JSON(http.StatusOK, models.SizingResponse{
		DailyKWh:            req.DailyKWh,
		Days:                req.Days,
		Efficiency:          req.Efficiency,
		RequiredCapacityKWh: capacity,
	})
}

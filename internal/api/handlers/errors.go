package handlers

import (
	"errors"
	"net/http"

	"flexkit/internal/api/models"
	"flexkit/internal/data"
	"flexkit/internal/model"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code string, err error) {
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// respondSignalError maps a signal source failure onto an HTTP status.
// Upstream API errors keep their code and retry hint.
func respondSignalError(c *gin.Context, err error) {
	var apiErr *data.APIError
	if errors.As(err, &apiErr) {
		statusCode := http.StatusBadGateway
		if apiErr.StatusCode == http.StatusTooManyRequests {
			statusCode = http.StatusTooManyRequests
		}
		_ = c.Error(err)
		c.JSON(statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: map[string]interface{}{
					"status_code": apiErr.StatusCode,
					"retry_after": apiErr.RetryAfter,
				},
			},
		})
		return
	}
	if errors.Is(err, model.ErrInvalidInput) {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}
	respondError(c, http.StatusBadGateway, "SIGNAL_FETCH_ERROR", err)
}

// respondRunError distinguishes rejected inputs from engine failures.
func respondRunError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrInvalidInput) {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}
	respondError(c, http.StatusInternalServerError, "SIMULATION_ERROR", err)
}

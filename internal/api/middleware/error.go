package middleware

import (
	"net/http"

	"flexkit/internal/api/models"
	"flexkit/internal/logging"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers panics and answers with a JSON error
func ErrorHandler(log logging.Logger) gin.HandlerFunc {
	log = logging.OrNop(log)
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		} else if err, ok := recovered.(error); ok {
			message = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}

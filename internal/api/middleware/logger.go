package middleware

import (
	"time"

	"flexkit/internal/logging"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request.
func Logger(log logging.Logger) gin.HandlerFunc {
	log = logging.OrNop(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= 500:
			log.Errorf("%s %s -> %d (%v) %s", c.Request.Method, c.Request.URL.Path, status, latency, c.Errors.String())
		case status >= 400:
			log.Warnf("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, latency)
		default:
			log.Infof("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, latency)
		}
	}
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fxsentinel/internal/logger"
	"fxsentinel/internal/metrics"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// StatusSource reports the state of the most recent signal cycle.
type StatusSource interface {
	Snapshot() metrics.Status
}

// NewRouter builds the operations router.
//
// Routes:
//   - GET /healthz: liveness, always 200 with the last cycle status.
//   - GET /readyz: 200 once the latest cycle succeeded, 503 otherwise.
//   - GET /metrics: Prometheus exposition for gatherer.
func NewRouter(status StatusSource, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(requestID(), requestLogger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cycle": status.Snapshot()})
	})

	router.GET("/readyz", func(c *gin.Context) {
		st := status.Snapshot()
		if st.LastOutcome != metrics.OutcomeOK {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "cycle": st})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "cycle": st})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.L().Debug().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Msg("http_request")
	}
}

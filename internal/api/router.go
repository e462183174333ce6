// Package api wires the HTTP handlers into a gin router.
package api

import (
	"net/http"

	"flexkit/internal/api/handlers"
	"flexkit/internal/api/metrics"
	"flexkit/internal/api/middleware"
	"flexkit/internal/data"
	"flexkit/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures NewRouter. Zero values are usable.
type Options struct {
	Regions []data.Region
	// Remote backs source "carbon_intensity"; nil disables it.
	Remote     data.Source
	BatteryDir string
	// Registry receives the simulation metrics and backs /metrics. Nil uses
	// the prometheus default registry.
	Registry *prometheus.Registry
	Log      logging.Logger
}

// NewRouter builds the API router.
func NewRouter(opts Options) (*gin.Engine, error) {
	log := logging.OrNop(opts.Log)
	if opts.Regions == nil {
		opts.Regions = data.DefaultRegions()
	}

	var (
		reg      prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		reg, gatherer = opts.Registry, opts.Registry
	}
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	provider := &handlers.SignalProvider{Regions: opts.Regions, Remote: opts.Remote, Log: log}
	simulationHandler := handlers.NewSimulationHandler(provider, opts.BatteryDir, rec, log)
	signalsHandler := handlers.NewSignalsHandler(provider)
	strategyHandler := handlers.NewStrategyHandler()
	batteryHandler := handlers.NewBatteryHandler(opts.BatteryDir, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulationHandler.Simulate)
		api.POST("/simulate/compare", simulationHandler.Compare)

		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/batteries", batteryHandler.ListBatteries)

		api.GET("/signals", signalsHandler.GetSignals)
		api.GET("/regions", signalsHandler.ListRegions)

		api.POST("/sizing", handlers.EstimateSize)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return router, nil
}

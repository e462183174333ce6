package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flexkit/internal/api"
	"flexkit/internal/api/handlers"
	"flexkit/internal/data"
	"flexkit/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	log := logging.New("api")
	if err := run(log); err != nil {
		log.Errorf("api server: %v", err)
		os.Exit(1)
	}
}

func run(log logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	regions, err := data.RegionsFromEnv()
	if err != nil {
		return err
	}
	uk, err := data.LookupRegion(regions, "UK")
	if err != nil {
		uk = data.DefaultRegions()[0]
	}

	// The remote forecast falls back to the synthetic UK profile when the API is unavailable.
	synthetic := data.NewSynthetic(uk, time.Now().UTC().Truncate(time.Hour), 30*time.Minute, 42)
	client := data.NewCarbonIntensityClient(os.Getenv("CARBON_INTENSITY_URL"), 30, synthetic, logging.New("carbon-intensity"))
	client.Cache = data.NewResponseCache(30 * time.Minute)
	fallback := data.RollingSynthetic{Synthetic: synthetic, Align: 30 * time.Minute}
	remote := data.FallbackSource{Primary: client, Fallback: fallback, Log: log}

	batteryDir := handlers.BatteryDir()
	log.Infof("Battery directory: %s", batteryDir)

	router, err := api.NewRouter(api.Options{
		Regions:    regions,
		Remote:     remote,
		BatteryDir: batteryDir,
		Log:        logging.New("http"),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.Infof("Starting API server on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

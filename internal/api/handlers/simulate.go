package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"flexkit/internal/analysis"
	"flexkit/internal/api/metrics"
	"flexkit/internal/api/models"
	"flexkit/internal/backtest"
	"flexkit/internal/config"
	"flexkit/internal/logging"
	"flexkit/internal/model"
	"flexkit/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SimulationHandler handles simulate and compare requests
type SimulationHandler struct {
	engine     *backtest.Engine
	signals    *SignalProvider
	batteryDir string
	metrics    *metrics.Recorder
	log        logging.Logger
}

// NewSimulationHandler creates a new simulation handler. rec may be nil.
func NewSimulationHandler(signals *SignalProvider, batteryDir string, rec *metrics.Recorder, log logging.Logger) *SimulationHandler {
	log = logging.OrNop(log)
	return &SimulationHandler{
		engine:     backtest.New(log),
		signals:    signals,
		batteryDir: batteryDir,
		metrics:    rec,
		log:        log,
	}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	sig, _, err := h.signals.Resolve(c.Request.Context(), req.Signals)
	if err != nil {
		respondSignalError(c, err)
		return
	}

	cfg, err := h.buildConfig(req.Config, req.Signals, sig)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}
	kind, err := strategy.ParseKind(cfg.Strategy.Name)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}
	battery := cfg.ToModel()
	strat, err := strategy.New(kind, battery.Thresholds)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}
	socStart := initialSOC(req.Config)

	start := time.Now()
	result, err := h.engine.Run(sig, battery, strat, socStart)
	h.metrics.ObserveRun(string(kind), outcome(err), time.Since(start))
	if err != nil {
		respondRunError(c, err)
		return
	}

	id := uuid.NewString()
	h.log.Infof("SimulationHandler: run %s strategy=%s steps=%d cost=%.4f emissions=%.4f",
		id, kind, sig.Len(), result.Totals.CostGBP, result.Totals.EmissionsKg)

	resp := models.SimulateResponse{
		ID:       id,
		Status:   "completed",
		Strategy: string(kind),
		Summary:  buildSummary(result, sig, socStart),
	}
	if req.Options.IncludeSchedule {
		resp.Schedule = result.Schedule
	}
	c.JSON(http.StatusOK, resp)
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulationHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	kinds := make([]strategy.Kind, 0, len(req.Strategies))
	seen := make(map[strategy.Kind]bool, len(req.Strategies))
	for _, name := range req.Strategies {
		k, err := strategy.ParseKind(name)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
			return
		}
		// Results are ranked by strategy name, so each kind may appear once.
		if seen[k] {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Errorf("strategy %q listed more than once", k))
			return
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		kinds = strategy.AllKinds()
	}

	sig, _, err := h.signals.Resolve(c.Request.Context(), req.Signals)
	if err != nil {
		respondSignalError(c, err)
		return
	}
	cfg, err := h.buildConfig(req.Config, req.Signals, sig)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}
	socStart := initialSOC(req.Config)

	start := time.Now()
	results, err := h.engine.Compare(c.Request.Context(), sig, cfg.ToModel(), kinds, socStart)
	h.metrics.ObserveRun("compare", outcome(err), time.Since(start))
	if err != nil {
		respondRunError(c, err)
		return
	}

	costWeight := 0.5
	if req.CostWeight != nil {
		costWeight = *req.CostWeight
	}
	ranked := analysis.Rank(backtest.Candidates(results), costWeight)
	position := make(map[string]int, len(ranked))
	for i, r := range ranked {
		position[r.Name] = i
	}

	resp := models.CompareResponse{
		ID:         uuid.NewString(),
		CostWeight: min(max(costWeight, 0), 1),
		Best:       ranked[0].Name,
		Comparison: make([]models.ComparisonResult, 0, len(results)),
	}
	for _, res := range results {
		i := position[string(res.Kind)]
		resp.Comparison = append(resp.Comparison, models.ComparisonResult{
			Name:    string(res.Kind),
			Score:   ranked[i].Score,
			Rank:    i + 1,
			Best:    ranked[i].Best,
			Summary: buildSummary(res, sig, socStart),
		})
	}
	h.log.Infof("SimulationHandler: compare %s strategies=%d best=%s", resp.ID, len(results), resp.Best)
	c.JSON(http.StatusOK, resp)
}

// buildConfig turns the request into a defaulted, validated config. A battery
// preset named by battery_file is the base; explicit fields override it.
func (h *SimulationHandler) buildConfig(req models.SimulationConfig, sigReq models.SignalsRequest, sig model.Signals) (*config.Config, error) {
	cfg := &config.Config{
		Battery: config.BatteryConfig{
			Name:                 req.Battery.Name,
			CapacityKWh:          req.Battery.CapacityKWh,
			PowerKW:              req.Battery.PowerKW,
			ChargeEfficiency:     req.Battery.ChargeEfficiency,
			DischargeEfficiency:  req.Battery.DischargeEfficiency,
			PassiveDischargeRate: req.Battery.PassiveDischargeRate,
		},
		Strategy: config.StrategyConfig{
			Name:           req.Strategy.Name,
			ChargePrice:    req.Strategy.ChargePrice,
			DischargePrice: req.Strategy.DischargePrice,
			GreenThreshold: req.Strategy.GreenThreshold,
			DirtyThreshold: req.Strategy.DirtyThreshold,
			CarbonWeight:   req.Strategy.CarbonWeight,
		},
		Simulation: config.SimulationConfig{
			Steps:        sig.Len(),
			StepsPerHour: sigReq.StepsPerHour,
		},
	}
	// Unless the request pins it, the resolution is that of the resolved series
	// (inline, synthetic or remote alike).
	if cfg.Simulation.StepsPerHour == 0 {
		cfg.Simulation.StepsPerHour = float64(time.Hour) / float64(sig.StepDuration())
	}

	if req.BatteryFile != "" {
		if filepath.Base(req.BatteryFile) != req.BatteryFile {
			return nil, fmt.Errorf("invalid battery_file %q", req.BatteryFile)
		}
		path := filepath.Join(h.batteryDir, req.BatteryFile+".yaml")
		loaded, err := config.LoadBatteryFile(path)
		if err != nil {
			return nil, fmt.Errorf("battery_file %q: %w", req.BatteryFile, err)
		}
		cfg.Battery = config.MergeBattery(loaded, cfg.Battery)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings() {
		h.log.Warnf("SimulationHandler: %s", w)
	}
	return cfg, nil
}

func initialSOC(req models.SimulationConfig) float64 {
	if req.InitialSOC != nil {
		return *req.InitialSOC
	}
	return model.DefaultInitialSOC
}

func outcome(err error) string {
	if err != nil {
		return metrics.OutcomeError
	}
	return metrics.OutcomeOK
}

func buildSummary(res *backtest.Result, sig model.Signals, socStart float64) models.SimulationSummary {
	n := sig.Len()
	return models.SimulationSummary{
		TotalSteps: len(res.Schedule),
		Window: models.TimeWindow{
			Start: sig.Timestamps[0],
			End:   sig.Timestamps[n-1].Add(sig.StepDuration()),
		},
		InitialSOC:     socStart,
		FinalSOC:       res.FinalSOC,
		GridEnergyKWh:  res.Totals.GridEnergyKWh,
		CostGBP:        res.Totals.CostGBP,
		EmissionsKg:    res.Totals.EmissionsKg,
		ChargeSteps:    res.Totals.ChargeSteps,
		DischargeSteps: res.Totals.DischargeSteps,
		IdleSteps:      res.Totals.IdleSteps,
	}
}

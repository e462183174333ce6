package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flexkit/internal/analysis"
	"flexkit/internal/api/models"
	"flexkit/internal/data"
	"flexkit/internal/logging"
	"flexkit/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	defaultSteps = 24
	// maxSteps bounds generated series; one week at one-minute resolution.
	maxSteps = 7 * 24 * 60
)

// SignalProvider resolves the signals block of a request into a series.
type SignalProvider struct {
	Regions []data.Region
	// Remote serves source "carbon_intensity". Nil disables it.
	Remote data.Source
	Log    logging.Logger
}

// Resolve returns inline signals as-is, or generates/fetches them. The second
// return value is the region id used, if any.
func (p *SignalProvider) Resolve(ctx context.Context, req models.SignalsRequest) (model.Signals, string, error) {
	if req.Inline != nil {
		if err := req.Inline.Validate(); err != nil {
			return model.Signals{}, "", err
		}
		return *req.Inline, "", nil
	}

	steps := req.Steps
	if steps == 0 {
		steps = defaultSteps
	}
	if steps < 0 || steps > maxSteps {
		return model.Signals{}, "", fmt.Errorf("steps must be in [1, %d], got %d: %w", maxSteps, steps, model.ErrInvalidInput)
	}

	switch req.Source {
	case "", "synthetic":
		gen, regionID, err := p.synthetic(req)
		if err != nil {
			return model.Signals{}, "", err
		}
		sig, err := gen.Fetch(ctx, steps)
		return sig, regionID, err
	case "carbon_intensity":
		if p.Remote == nil {
			return model.Signals{}, "", fmt.Errorf("carbon_intensity source is not configured: %w", model.ErrInvalidInput)
		}
		logging.OrNop(p.Log).Debugf("fetching %d steps from remote source", steps)
		sig, err := p.Remote.Fetch(ctx, steps)
		return sig, "UK", err
	default:
		return model.Signals{}, "", fmt.Errorf("unsupported signal source %q: %w", req.Source, model.ErrInvalidInput)
	}
}

func (p *SignalProvider) synthetic(req models.SignalsRequest) (data.Synthetic, string, error) {
	regionKey := req.Region
	if regionKey == "" {
		regionKey = "UK"
	}
	region, err := data.LookupRegion(p.Regions, regionKey)
	if err != nil {
		return data.Synthetic{}, "", fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
	}

	stepsPerHour := req.StepsPerHour
	if stepsPerHour == 0 {
		stepsPerHour = 1
	}
	if stepsPerHour < 0 {
		return data.Synthetic{}, "", fmt.Errorf("steps_per_hour must be > 0: %w", model.ErrInvalidInput)
	}

	start := time.Now().UTC().Truncate(time.Hour)
	if req.Start != "" {
		start, err = time.Parse(time.RFC3339, req.Start)
		if err != nil {
			return data.Synthetic{}, "", fmt.Errorf("start: %v: %w", err, model.ErrInvalidInput)
		}
	}

	seed := req.Seed
	if seed == 0 {
		seed = 42
	}
	gen := data.NewSynthetic(region, start, time.Duration(float64(time.Hour)/stepsPerHour), seed)
	gen.WithDemand = req.WithDemand
	return gen, region.ID, nil
}

// SignalsHandler serves generated or fetched signals
type SignalsHandler struct {
	provider *SignalProvider
}

// NewSignalsHandler creates a new signals handler
func NewSignalsHandler(provider *SignalProvider) *SignalsHandler {
	return &SignalsHandler{provider: provider}
}

// GetSignals handles GET /api/v1/signals
func (h *SignalsHandler) GetSignals(c *gin.Context) {
	var q models.SignalsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	req := models.SignalsRequest{
		Source:       q.Source,
		Steps:        q.Steps,
		StepsPerHour: q.StepsPerHour,
		Region:       q.Region,
		Seed:         q.Seed,
		WithDemand:   q.WithDemand,
		Start:        q.Start,
	}
	sig, region, err := h.provider.Resolve(c.Request.Context(), req)
	if err != nil {
		respondSignalError(c, err)
		return
	}

	source := q.Source
	if source == "" {
		source = "synthetic"
	}
	c.JSON(http.StatusOK, models.SignalsResponse{
		Source:      source,
		Region:      region,
		Signals:     sig,
		PriceStats:  analysis.ComputeSeriesStats(sig.Price),
		CarbonStats: analysis.ComputeSeriesStats(sig.Carbon),
	})
}

// ListRegions handles GET /api/v1/regions
func (h *SignalsHandler) ListRegions(c *gin.Context) {
	regions := make([]models.RegionInfo, 0, len(h.provider.Regions))
	for _, r := range h.provider.Regions {
		regions = append(regions, models.RegionInfo{ID: r.ID, Name: r.Name, BaseCarbon: r.BaseCarbon})
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"flexkit/internal/logging"
	"flexkit/internal/model"
)

const (
	defaultCarbonIntensityURL = "https://api.carbonintensity.org.uk"
	// Timestamps in the API omit seconds.
	carbonIntensityLayout = "2006-01-02T15:04Z"
)

// CarbonIntensityClient fetches the half-hourly national carbon intensity
// forecast from the GB Carbon Intensity API. Prices are not part of that
// API, so the client pairs the forecast with a synthetic price profile.
type CarbonIntensityClient struct {
	BaseURL string
	Client  *http.Client
	// StepMinutes is 30 (native) or 60 (adjacent half hours averaged).
	StepMinutes int
	// Prices fills the price (and optional demand) series on the forecast's
	// time axis. Its Start and Step are overwritten per request.
	Prices Synthetic
	// Cache is optional.
	Cache *ResponseCache
	Log   logging.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewCarbonIntensityClient creates a client. If baseURL is empty, defaults to
// the public API.
func NewCarbonIntensityClient(baseURL string, stepMinutes int, prices Synthetic, log logging.Logger) *CarbonIntensityClient {
	if baseURL == "" {
		baseURL = defaultCarbonIntensityURL
	}
	return &CarbonIntensityClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Client:      &http.Client{Timeout: 30 * time.Second},
		StepMinutes: stepMinutes,
		Prices:      prices,
		Log:         logging.OrNop(log),
		Now:         time.Now,
	}
}

// APIError represents a non-200 response from the forecast API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *APIError) Error() string {
	return e.Message
}

// ForecastPoint is one half-hour forecast sample.
type ForecastPoint struct {
	From      time.Time
	To        time.Time
	Intensity float64
}

type intensityResponse struct {
	Data []struct {
		From      string `json:"from"`
		To        string `json:"to"`
		Intensity struct {
			Forecast *float64 `json:"forecast"`
			Actual   *float64 `json:"actual"`
			Index    string   `json:"index"`
		} `json:"intensity"`
	} `json:"data"`
}

// Forecast returns the next 24h of half-hourly forecasts starting at from
// (truncated to the half hour).
func (c *CarbonIntensityClient) Forecast(ctx context.Context, from time.Time) ([]ForecastPoint, error) {
	log := logging.OrNop(c.Log)
	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	from = from.UTC().Truncate(30 * time.Minute)
	key := "fw24h:" + from.Format(carbonIntensityLayout)
	if cached, ok := c.Cache.Get(key); ok {
		log.Debugf("[CarbonIntensity] Cache hit: %d points from %s", len(cached), key)
		return cached, nil
	}

	u := fmt.Sprintf("%s/intensity/%s/fw24h", c.BaseURL, from.Format(carbonIntensityLayout))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Warnf("[CarbonIntensity] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Infof("[CarbonIntensity] Response: %d (duration: %v, from=%s)", resp.StatusCode, duration, from.Format(carbonIntensityLayout))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusBadRequest:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "BAD_REQUEST",
			Message:    "Carbon intensity API rejected the request",
		}
	default:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var body intensityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	points := make([]ForecastPoint, 0, len(body.Data))
	for i, d := range body.Data {
		f, err := time.Parse(carbonIntensityLayout, d.From)
		if err != nil {
			return nil, fmt.Errorf("data[%d].from: %w", i, err)
		}
		to, err := time.Parse(carbonIntensityLayout, d.To)
		if err != nil {
			return nil, fmt.Errorf("data[%d].to: %w", i, err)
		}
		v := d.Intensity.Forecast
		if v == nil {
			v = d.Intensity.Actual
		}
		if v == nil {
			return nil, fmt.Errorf("data[%d] has no intensity value", i)
		}
		points = append(points, ForecastPoint{From: f, To: to, Intensity: max(0, *v)})
	}

	c.Cache.Set(key, points)
	return points, nil
}

// Fetch implements Source.
func (c *CarbonIntensityClient) Fetch(ctx context.Context, steps int) (model.Signals, error) {
	if steps <= 0 {
		return model.Signals{}, fmt.Errorf("steps must be > 0, got %d: %w", steps, model.ErrInvalidInput)
	}
	stepMinutes := c.StepMinutes
	if stepMinutes == 0 {
		stepMinutes = 30
	}
	if stepMinutes != 30 && stepMinutes != 60 {
		return model.Signals{}, fmt.Errorf("unsupported step of %d minutes: %w", stepMinutes, model.ErrInvalidInput)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	points, err := c.Forecast(ctx, now())
	if err != nil {
		return model.Signals{}, err
	}
	if stepMinutes == 60 {
		points = hourly(points)
	}
	if len(points) < steps {
		return model.Signals{}, fmt.Errorf("forecast has %d steps, %d requested", len(points), steps)
	}
	points = points[:steps]

	prices := c.Prices
	prices.Start = points[0].From
	prices.Step = time.Duration(stepMinutes) * time.Minute
	sig, err := prices.Fetch(ctx, steps)
	if err != nil {
		return model.Signals{}, err
	}
	for i, p := range points {
		sig.Timestamps[i] = p.From
		sig.Carbon[i] = p.Intensity
	}
	return sig, nil
}

// hourly averages consecutive pairs of half-hour points. A trailing odd point
// is dropped.
func hourly(points []ForecastPoint) []ForecastPoint {
	out := make([]ForecastPoint, 0, len(points)/2)
	for i := 0; i+1 < len(points); i += 2 {
		out = append(out, ForecastPoint{
			From:      points[i].From,
			To:        points[i+1].To,
			Intensity: (points[i].Intensity + points[i+1].Intensity) / 2,
		})
	}
	return out
}

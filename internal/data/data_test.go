package data

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexkit/internal/model"
)

var testStart = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type failingSource struct{ err error }

func (f failingSource) Fetch(context.Context, int) (model.Signals, error) {
	return model.Signals{}, f.err
}

func TestSyntheticDeterministic(t *testing.T) {
	uk, err := LookupRegion(DefaultRegions(), "uk")
	require.NoError(t, err)

	gen := NewSynthetic(uk, testStart, time.Hour, 42)
	gen.WithDemand = true

	a, err := gen.Fetch(context.Background(), 48)
	require.NoError(t, err)
	b, err := gen.Fetch(context.Background(), 48)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	require.NoError(t, a.Validate())
	assert.Equal(t, 48, a.Len())
	assert.True(t, a.HasDemand())
	assert.Equal(t, testStart.Add(47*time.Hour), a.Timestamps[47])
	assert.InDelta(t, 100.0, a.Price[0], 1e-9)
	assert.InDelta(t, 2.0, a.Demand[0], 1e-9)

	gen.Seed = 7
	c, err := gen.Fetch(context.Background(), 48)
	require.NoError(t, err)
	assert.Equal(t, a.Price, c.Price)
	assert.NotEqual(t, a.Carbon, c.Carbon)
}

func TestSyntheticCarbonNeverNegative(t *testing.T) {
	gen := NewSynthetic(Region{ID: "X", BaseCarbon: 5}, testStart, 30*time.Minute, 1)
	sig, err := gen.Fetch(context.Background(), 96)
	require.NoError(t, err)
	for i, c := range sig.Carbon {
		assert.GreaterOrEqual(t, c, 0.0, "carbon[%d]", i)
	}
	assert.Nil(t, sig.Demand)
}

func TestSyntheticRejectsBadSteps(t *testing.T) {
	_, err := NewSynthetic(DefaultRegions()[0], testStart, time.Hour, 1).Fetch(context.Background(), 0)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestFallbackSource(t *testing.T) {
	gen := NewSynthetic(DefaultRegions()[0], testStart, time.Hour, 42)

	src := FallbackSource{Primary: failingSource{err: errors.New("boom")}, Fallback: gen}
	sig, err := src.Fetch(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, 12, sig.Len())

	src = FallbackSource{Primary: gen, Fallback: failingSource{err: errors.New("unused")}}
	_, err = src.Fetch(context.Background(), 12)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src = FallbackSource{Primary: failingSource{err: context.Canceled}, Fallback: gen}
	_, err = src.Fetch(ctx, 12)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRollingSyntheticFollowsClock(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 47, 0, 0, time.UTC)
	gen := RollingSynthetic{
		Synthetic: NewSynthetic(DefaultRegions()[0], testStart, 30*time.Minute, 42),
		Align:     30 * time.Minute,
		Now:       func() time.Time { return now },
	}

	sig, err := gen.Fetch(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), sig.Timestamps[0])
	assert.Equal(t, time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC), sig.Timestamps[3])

	now = now.Add(26 * time.Hour)
	src := FallbackSource{Primary: failingSource{err: errors.New("upstream down")}, Fallback: gen}
	sig, err = src.Fetch(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 14, 30, 0, 0, time.UTC), sig.Timestamps[0])
}

func TestRegions(t *testing.T) {
	r, err := LookupRegion(DefaultRegions(), " Texas ")
	require.NoError(t, err)
	assert.Equal(t, "TX", r.ID)
	assert.Equal(t, 400.0, r.BaseCarbon)

	_, err = LookupRegion(DefaultRegions(), "Mars")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"NO","name":"Norway","base_carbon":30}]`), 0o644))
	t.Setenv("REGIONS_FILE", path)

	regions, err := RegionsFromEnv()
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Norway", regions[0].Name)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	body := `{
  "timestamps": ["2024-06-01T00:00:00Z", "2024-06-01T01:00:00Z", "2024-06-01T02:00:00Z"],
  "price": [50, 120, 200],
  "carbon": [100, 250, 300]
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	sig, err := FileSource{Path: path}.Fetch(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 120}, sig.Price)
	assert.Equal(t, []float64{100, 250}, sig.Carbon)
	assert.Len(t, sig.Timestamps, 2)

	_, err = FileSource{Path: path}.Fetch(context.Background(), 4)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Fetch(context.Background(), 1)
	assert.Error(t, err)
}

func forecastBody(from time.Time, n int) string {
	var parts []string
	for i := 0; i < n; i++ {
		f := from.Add(time.Duration(i) * 30 * time.Minute)
		parts = append(parts, fmt.Sprintf(
			`{"from":%q,"to":%q,"intensity":{"forecast":%d,"actual":null,"index":"moderate"}}`,
			f.Format(carbonIntensityLayout), f.Add(30*time.Minute).Format(carbonIntensityLayout), 100+10*i))
	}
	return `{"data":[` + strings.Join(parts, ",") + `]}`
}

func TestCarbonIntensityClient(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 17, 0, 0, time.UTC)
	from := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/intensity/2024-06-01T12:00Z/fw24h", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody(from, 48)))
	}))
	defer srv.Close()

	client := NewCarbonIntensityClient(srv.URL, 30, NewSynthetic(DefaultRegions()[0], time.Time{}, 0, 42), nil)
	client.Now = func() time.Time { return now }
	client.Cache = NewResponseCache(time.Minute)

	t.Run("half hourly", func(t *testing.T) {
		sig, err := client.Fetch(context.Background(), 4)
		require.NoError(t, err)
		require.NoError(t, sig.Validate())
		assert.Equal(t, []float64{100, 110, 120, 130}, sig.Carbon)
		assert.Equal(t, from.Add(30*time.Minute), sig.Timestamps[1])
		assert.Len(t, sig.Price, 4)
	})

	t.Run("hourly averages pairs", func(t *testing.T) {
		client.StepMinutes = 60
		defer func() { client.StepMinutes = 30 }()

		sig, err := client.Fetch(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{105, 125, 145}, sig.Carbon)
		assert.Equal(t, from.Add(time.Hour), sig.Timestamps[1])
	})

	t.Run("served from cache", func(t *testing.T) {
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := client.Fetch(context.Background(), 49)
		assert.Error(t, err)
	})
}

func TestCarbonIntensityClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewCarbonIntensityClient(srv.URL, 30, Synthetic{}, nil)
	_, err := client.Fetch(context.Background(), 4)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", apiErr.Code)
	assert.Equal(t, "60", apiErr.RetryAfter)

	client.StepMinutes = 15
	_, err = client.Fetch(context.Background(), 4)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestResponseCache(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewResponseCache(time.Minute)
	cache.now = func() time.Time { return now }

	points := []ForecastPoint{{Intensity: 1}}
	cache.Set("k", points)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, points, got)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())

	cache.Set("k", points)
	cache.Clear()
	assert.Equal(t, 0, cache.Len())

	var nilCache *ResponseCache
	nilCache.Set("k", points)
	_, ok = nilCache.Get("k")
	assert.False(t, ok)
}

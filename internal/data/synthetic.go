package data

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"flexkit/internal/model"
)

// Synthetic generates deterministic signals from closed-form daily profiles
// plus seeded Gaussian noise. The same configuration always yields the same
// series.
//
//	price[t]  = PriceBase + PriceAmplitude*sin(2πt/T) + N(0, PriceNoise)
//	carbon[t] = BaseCarbon + CarbonAmplitude*sin((hour-16)π/12) + N(0, CarbonNoise), floored at 0
//	demand[t] = DemandBase + DemandAmplitude*sin(2πt/T)
type Synthetic struct {
	Start time.Time
	Step  time.Duration
	Seed  int64

	PriceBase      float64
	PriceAmplitude float64
	PriceNoise     float64

	BaseCarbon      float64
	CarbonAmplitude float64
	CarbonNoise     float64

	// WithDemand attaches a demand series (kW).
	WithDemand      bool
	DemandBase      float64
	DemandAmplitude float64
}

// NewSynthetic returns a generator for region with the default profile shape.
func NewSynthetic(region Region, start time.Time, step time.Duration, seed int64) Synthetic {
	return Synthetic{
		Start:           start,
		Step:            step,
		Seed:            seed,
		PriceBase:       100,
		PriceAmplitude:  30,
		BaseCarbon:      region.BaseCarbon,
		CarbonAmplitude: 50,
		CarbonNoise:     10,
		DemandBase:      2,
		DemandAmplitude: 0.5,
	}
}

func (s Synthetic) Fetch(ctx context.Context, steps int) (model.Signals, error) {
	if steps <= 0 {
		return model.Signals{}, fmt.Errorf("steps must be > 0, got %d: %w", steps, model.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return model.Signals{}, err
	}
	step := s.Step
	if step <= 0 {
		step = time.Hour
	}
	rng := rand.New(rand.NewSource(s.Seed))

	sig := model.Signals{
		Timestamps: make([]time.Time, steps),
		Price:      make([]float64, steps),
		Carbon:     make([]float64, steps),
	}
	if s.WithDemand {
		sig.Demand = make([]float64, steps)
	}

	for t := 0; t < steps; t++ {
		ts := s.Start.Add(time.Duration(t) * step)
		phase := 2 * math.Pi * float64(t) / float64(steps)
		hour := float64(ts.Hour()) + float64(ts.Minute())/60

		sig.Timestamps[t] = ts
		sig.Price[t] = s.PriceBase + s.PriceAmplitude*math.Sin(phase) + s.PriceNoise*rng.NormFloat64()
		carbon := s.BaseCarbon + s.CarbonAmplitude*math.Sin((hour-16)*math.Pi/12) + s.CarbonNoise*rng.NormFloat64()
		sig.Carbon[t] = math.Max(0, carbon)
		if s.WithDemand {
			sig.Demand[t] = s.DemandBase + s.DemandAmplitude*math.Sin(phase)
		}
	}
	return sig, nil
}

// RollingSynthetic is a Synthetic whose Start follows the clock: every Fetch
// anchors the series at the current time truncated to Align. Long-lived
// servers use it so generated timestamps never go stale.
type RollingSynthetic struct {
	Synthetic
	// Align defaults to the step length.
	Align time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s RollingSynthetic) Fetch(ctx context.Context, steps int) (model.Signals, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	align := s.Align
	if align <= 0 {
		align = s.Step
	}
	if align <= 0 {
		align = time.Hour
	}
	gen := s.Synthetic
	gen.Start = now().UTC().Truncate(align)
	return gen.Fetch(ctx, steps)
}

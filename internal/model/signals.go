package model

import (
	"fmt"
	"time"
)

// Signals is the exogenous input to one simulation run: a price and a carbon
// series on a shared time axis, plus an optional user demand series.
//
// JSON shape:
//
//	{
//	  "timestamps": ["2025-01-01T00:00:00Z", ...],
//	  "price":  [95.2, ...],   // £/MWh
//	  "carbon": [231.0, ...],  // gCO2/kWh
//	  "demand": [2.1, ...]     // kW, optional
//	}
type Signals struct {
	Timestamps []time.Time `json:"timestamps"`
	Price      []float64   `json:"price"`
	Carbon     []float64   `json:"carbon"`
	Demand     []float64   `json:"demand,omitempty"`
}

// Len is the number of timesteps T.
func (s Signals) Len() int {
	return len(s.Price)
}

// HasDemand reports whether a demand series is attached.
func (s Signals) HasDemand() bool {
	return len(s.Demand) > 0
}

// Validate enforces the shape invariants: T > 0, every series the same
// length, and only finite samples. It never truncates.
func (s Signals) Validate() error {
	n := len(s.Price)
	if n == 0 {
		return fmt.Errorf("price series is empty: %w", ErrInvalidInput)
	}
	if len(s.Carbon) != n {
		return fmt.Errorf("carbon length %d != price length %d: %w", len(s.Carbon), n, ErrInvalidInput)
	}
	if len(s.Timestamps) != n {
		return fmt.Errorf("timestamps length %d != price length %d: %w", len(s.Timestamps), n, ErrInvalidInput)
	}
	if s.HasDemand() && len(s.Demand) != n {
		return fmt.Errorf("demand length %d != price length %d: %w", len(s.Demand), n, ErrInvalidInput)
	}
	for i := 0; i < n; i++ {
		if isBad(s.Price[i]) {
			return fmt.Errorf("price[%d] is not finite: %w", i, ErrInvalidInput)
		}
		if isBad(s.Carbon[i]) {
			return fmt.Errorf("carbon[%d] is not finite: %w", i, ErrInvalidInput)
		}
		if s.HasDemand() && isBad(s.Demand[i]) {
			return fmt.Errorf("demand[%d] is not finite: %w", i, ErrInvalidInput)
		}
	}
	return nil
}

// DemandAt returns the demand sample for step i, or 0 when no demand is attached.
func (s Signals) DemandAt(i int) float64 {
	if !s.HasDemand() {
		return 0
	}
	return s.Demand[i]
}

// StepDuration infers the interval length from the first two timestamps.
// Single-sample series fall back to one hour.
func (s Signals) StepDuration() time.Duration {
	if len(s.Timestamps) < 2 {
		return time.Hour
	}
	d := s.Timestamps[1].Sub(s.Timestamps[0])
	if d <= 0 {
		return time.Hour
	}
	return d
}

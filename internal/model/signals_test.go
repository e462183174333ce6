package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hourly(n int) []time.Time {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = t0.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func TestSignals_Validate(t *testing.T) {
	good := Signals{
		Timestamps: hourly(3),
		Price:      []float64{1, 2, 3},
		Carbon:     []float64{4, 5, 6},
	}
	assert.NoError(t, good.Validate())

	withDemand := good
	withDemand.Demand = []float64{1, 1, 1}
	assert.NoError(t, withDemand.Validate())

	tests := []struct {
		name string
		sig  Signals
	}{
		{"empty", Signals{}},
		{"carbon short", Signals{Timestamps: hourly(3), Price: []float64{1, 2, 3}, Carbon: []float64{1, 2}}},
		{"timestamps long", Signals{Timestamps: hourly(4), Price: []float64{1, 2, 3}, Carbon: []float64{1, 2, 3}}},
		{"demand short", Signals{Timestamps: hourly(3), Price: []float64{1, 2, 3}, Carbon: []float64{1, 2, 3}, Demand: []float64{1}}},
		{"NaN price", Signals{Timestamps: hourly(2), Price: []float64{1, math.NaN()}, Carbon: []float64{1, 2}}},
		{"Inf carbon", Signals{Timestamps: hourly(2), Price: []float64{1, 2}, Carbon: []float64{math.Inf(1), 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.sig.Validate(), ErrInvalidInput)
		})
	}
}

func TestSignals_StepDuration(t *testing.T) {
	s := Signals{Timestamps: hourly(2)}
	assert.Equal(t, time.Hour, s.StepDuration())

	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Timestamps = []time.Time{t0, t0.Add(15 * time.Minute)}
	assert.Equal(t, 15*time.Minute, s.StepDuration())

	s.Timestamps = s.Timestamps[:1]
	assert.Equal(t, time.Hour, s.StepDuration())
}

func TestSignals_DemandAt(t *testing.T) {
	s := Signals{Price: []float64{1, 2}}
	assert.Equal(t, 0.0, s.DemandAt(1))
	s.Demand = []float64{3, 4}
	assert.Equal(t, 4.0, s.DemandAt(1))
}

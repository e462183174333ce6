package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesStats summarizes a price or carbon series. It is independent of any
// battery or strategy and is mostly used to explain why a strategy behaved
// the way it did (e.g. a narrow spread means few arbitrage opportunities).
type SeriesStats struct {
	Count int `json:"count"`

	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	P05  float64 `json:"p05"`
	P95  float64 `json:"p95"`

	SpreadP95P05 float64 `json:"spread_p95_p05"`
}

func ComputeSeriesStats(values []float64) SeriesStats {
	s := SeriesStats{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Mean = stat.Mean(sorted, nil)
	s.P05 = percentileSorted(sorted, 0.05)
	s.P95 = percentileSorted(sorted, 0.95)
	s.SpreadP95P05 = s.P95 - s.P05
	return s
}

// percentileSorted interpolates linearly between order statistics.
func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

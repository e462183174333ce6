package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Candidate is the per-strategy outcome being ranked.
type Candidate struct {
	Name        string
	EnergyKWh   float64
	CostGBP     float64
	EmissionsKg float64
}

type RankedCandidate struct {
	Candidate
	Score float64
	Best  bool
}

// Rank scores each candidate on normalized cost and emissions:
//
//	costWeight*(1 - norm(cost)) + (1-costWeight)*(1 - norm(emissions))
//
// and returns them sorted by descending score. The first entry is marked Best;
// ties keep input order. costWeight is clamped to [0,1].
func Rank(cands []Candidate, costWeight float64) []RankedCandidate {
	out := make([]RankedCandidate, 0, len(cands))
	if len(cands) == 0 {
		return out
	}
	if costWeight < 0 {
		costWeight = 0
	}
	if costWeight > 1 {
		costWeight = 1
	}

	costs := make([]float64, len(cands))
	emissions := make([]float64, len(cands))
	for i, c := range cands {
		costs[i] = c.CostGBP
		emissions[i] = c.EmissionsKg
	}
	costLo, costHi := floats.Min(costs), floats.Max(costs)
	emLo, emHi := floats.Min(emissions), floats.Max(emissions)

	for _, c := range cands {
		score := costWeight*Favorability(c.CostGBP, costLo, costHi) +
			(1-costWeight)*Favorability(c.EmissionsKg, emLo, emHi)
		out = append(out, RankedCandidate{Candidate: c, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	out[0].Best = true
	return out
}

package strategy

import (
	"flexkit/internal/analysis"
	"flexkit/internal/model"
)

const (
	// BlendedChargeAbove is the score above which the blended strategy charges.
	BlendedChargeAbove = 0.7
	// BlendedDischargeBelow is the score below which the blended strategy discharges.
	BlendedDischargeBelow = 0.3
)

// Blended weighs how favorable the current price and carbon intensity are
// relative to the whole run. A score of 1 means the cheapest and greenest step.
type Blended struct {
	// CarbonWeight in [0,1]; the price score gets 1-CarbonWeight.
	CarbonWeight float64
}

func (Blended) Kind() Kind { return KindBlended }

// Score computes the blended favorability for one step. Constant series score
// analysis.NeutralScore.
func (s Blended) Score(ctx Context) float64 {
	priceScore := analysis.Favorability(ctx.Price, ctx.Series.PriceMin, ctx.Series.PriceMax)
	carbonScore := analysis.Favorability(ctx.Carbon, ctx.Series.CarbonMin, ctx.Series.CarbonMax)
	return s.CarbonWeight*carbonScore + (1-s.CarbonWeight)*priceScore
}

func (s Blended) Decide(ctx Context) Decision {
	score := s.Score(ctx)
	d := Decision{Action: model.ActionIdle, Score: &score}
	switch {
	case score > BlendedChargeAbove && ctx.SOC < model.MaxChargeSOC:
		d.Action = model.ActionCharge
	case score < BlendedDischargeBelow && ctx.SOC > model.MinDischargeSOC:
		d.Action = model.ActionDischarge
	}
	return d
}

package strategy

import (
	"fmt"
	"strings"
	"time"

	"flexkit/internal/model"

	"gonum.org/v1/gonum/floats"
)

// Kind is the closed set of dispatch strategies.
type Kind string

const (
	KindPriceArbitrage  Kind = "price_arbitrage"
	KindCarbonMinimizer Kind = "carbon_minimizer"
	KindBlended         Kind = "blended"
	KindTariffAvoidance Kind = "tariff_avoidance"
)

// AllKinds lists every strategy in a stable order.
func AllKinds() []Kind {
	return []Kind{KindBlended, KindTariffAvoidance, KindPriceArbitrage, KindCarbonMinimizer}
}

// ParseKind accepts the canonical names plus hyphenated/upper-case spellings.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch k {
	case KindPriceArbitrage, KindCarbonMinimizer, KindBlended, KindTariffAvoidance:
		return k, nil
	}
	return "", fmt.Errorf("unsupported strategy %q: %w", s, model.ErrInvalidInput)
}

// SeriesContext exposes whole-run properties of the input series. The blended
// strategy normalizes each sample against these bounds.
type SeriesContext struct {
	PriceMin  float64
	PriceMax  float64
	CarbonMin float64
	CarbonMax float64
}

// NewSeriesContext computes the bounds of a validated Signals value.
func NewSeriesContext(sig model.Signals) SeriesContext {
	if sig.Len() == 0 {
		return SeriesContext{}
	}
	return SeriesContext{
		PriceMin:  floats.Min(sig.Price),
		PriceMax:  floats.Max(sig.Price),
		CarbonMin: floats.Min(sig.Carbon),
		CarbonMax: floats.Max(sig.Carbon),
	}
}

// Context is everything a strategy may look at for one timestep.
type Context struct {
	Index     int
	Timestamp time.Time
	Price     float64
	Carbon    float64
	SOC       float64
	// DemandKWh is the user load drawn this step (0 when no demand series).
	DemandKWh float64
	Series    SeriesContext
}

// Decision is the output of a strategy for one step. Score is only set by
// strategies that compute one (blended).
type Decision struct {
	Action model.Action
	Score  *float64
}

func idle() Decision { return Decision{Action: model.ActionIdle} }

// Strategy decides one action per step. Implementations are pure: the same
// Context always yields the same Decision.
type Strategy interface {
	Kind() Kind
	Decide(ctx Context) Decision
}

// New returns the strategy implementation for kind. Selection happens once
// per run; the engine then only calls Decide.
func New(kind Kind, th model.Thresholds) (Strategy, error) {
	switch kind {
	case KindPriceArbitrage:
		return PriceArbitrage{ChargeBelow: th.ChargePrice, DischargeAbove: th.DischargePrice}, nil
	case KindCarbonMinimizer:
		return CarbonMinimizer{ChargeBelow: th.Green, DischargeAbove: th.Dirty}, nil
	case KindTariffAvoidance:
		return TariffAvoidance{ChargeBelow: th.ChargePrice}, nil
	case KindBlended:
		return Blended{CarbonWeight: th.CarbonWeight}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy %q: %w", kind, model.ErrInvalidInput)
	}
}

// threshold is the shared rule behind the single-signal strategies: charge
// when the signal is below one level, discharge when above another, subject to
// the fixed SOC bounds.
func threshold(signal, soc, chargeBelow, dischargeAbove float64, canDischarge bool) Decision {
	if signal < chargeBelow && soc < model.MaxChargeSOC {
		return Decision{Action: model.ActionCharge}
	}
	if canDischarge && signal > dischargeAbove && soc > model.MinDischargeSOC {
		return Decision{Action: model.ActionDischarge}
	}
	return idle()
}

package strategy

// PriceArbitrage buys cheap energy and sells it back when prices are high.
type PriceArbitrage struct {
	ChargeBelow    float64
	DischargeAbove float64
}

func (PriceArbitrage) Kind() Kind { return KindPriceArbitrage }

func (s PriceArbitrage) Decide(ctx Context) Decision {
	return threshold(ctx.Price, ctx.SOC, s.ChargeBelow, s.DischargeAbove, true)
}

// CarbonMinimizer charges when the grid is green and discharges when it is dirty.
type CarbonMinimizer struct {
	ChargeBelow    float64
	DischargeAbove float64
}

func (CarbonMinimizer) Kind() Kind { return KindCarbonMinimizer }

func (s CarbonMinimizer) Decide(ctx Context) Decision {
	return threshold(ctx.Carbon, ctx.SOC, s.ChargeBelow, s.DischargeAbove, true)
}

// TariffAvoidance only charges during cheap periods. It never discharges;
// stored energy leaves through user demand and self-discharge.
type TariffAvoidance struct {
	ChargeBelow float64
}

func (TariffAvoidance) Kind() Kind { return KindTariffAvoidance }

func (s TariffAvoidance) Decide(ctx Context) Decision {
	return threshold(ctx.Price, ctx.SOC, s.ChargeBelow, 0, false)
}

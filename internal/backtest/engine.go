package backtest

import (
	"fmt"
	"math"

	"flexkit/internal/logging"
	"flexkit/internal/model"
	"flexkit/internal/strategy"
)

type Engine struct {
	log logging.Logger
}

// New returns an Engine. A nil logger disables logging.
func New(log logging.Logger) *Engine {
	return &Engine{log: logging.OrNop(log)}
}

// Run simulates one strategy over the signals. Inputs are validated before
// the first step; after that the run cannot fail.
//
// Steps are applied strictly in order: the SOC at step t is the output of
// step t-1.
func (e *Engine) Run(sig model.Signals, cfg model.BatteryConfig, strat strategy.Strategy, socStart float64) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil: %w", model.ErrInvalidInput)
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("battery config: %w", err)
	}
	if socStart < 0 || socStart > 1 || math.IsNaN(socStart) {
		return nil, fmt.Errorf("initial SOC %v outside [0, 1]: %w", socStart, model.ErrInvalidInput)
	}

	series := strategy.NewSeriesContext(sig)
	sched := make(Schedule, 0, sig.Len())
	soc := socStart
	var cumCost, cumEmissions float64

	for t := 0; t < sig.Len(); t++ {
		demand := cfg.DemandEnergyKWh(sig.DemandAt(t))
		d := strat.Decide(strategy.Context{
			Index:     t,
			Timestamp: sig.Timestamps[t],
			Price:     sig.Price[t],
			Carbon:    sig.Carbon[t],
			SOC:       soc,
			DemandKWh: demand,
			Series:    series,
		})

		next := model.UpdateSOC(soc, d.Action, cfg, demand)

		grid := math.Abs(next-soc) * cfg.CapacityKWh
		cost := grid * sig.Price[t] / 1000
		emissions := grid * sig.Carbon[t] / 1000
		cumCost += cost
		cumEmissions += emissions

		sched = append(sched, Record{
			Index:     t,
			Timestamp: sig.Timestamps[t],

			Price:     sig.Price[t],
			Carbon:    sig.Carbon[t],
			DemandKWh: demand,

			Action: d.Action,
			Score:  d.Score,

			SOC:      soc,
			SOCAfter: next,

			GridEnergyKWh: grid,
			CostGBP:       cost,
			EmissionsKg:   emissions,

			CumCostGBP:     cumCost,
			CumEmissionsKg: cumEmissions,
		})
		soc = next
	}

	res := &Result{
		Kind:     strat.Kind(),
		Schedule: sched,
		Totals:   sched.Totals(),
		FinalSOC: soc,
	}
	e.log.Debugw("simulation complete", map[string]any{
		"strategy":  string(res.Kind),
		"steps":     len(sched),
		"final_soc": res.FinalSOC,
		"cost_gbp":  res.Totals.CostGBP,
	})
	return res, nil
}

// Simulate builds the strategy for kind and runs it.
func (e *Engine) Simulate(sig model.Signals, cfg model.BatteryConfig, kind strategy.Kind, socStart float64) (*Result, error) {
	strat, err := strategy.New(kind, cfg.Thresholds)
	if err != nil {
		return nil, err
	}
	return e.Run(sig, cfg, strat, socStart)
}

// Simulate runs kind with a silent engine.
func Simulate(sig model.Signals, cfg model.BatteryConfig, kind strategy.Kind, socStart float64) (*Result, error) {
	return New(nil).Simulate(sig, cfg, kind, socStart)
}

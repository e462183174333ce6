package backtest

import (
	"context"
	"fmt"

	"flexkit/internal/analysis"
	"flexkit/internal/model"
	"flexkit/internal/strategy"

	"golang.org/x/sync/errgroup"
)

// Compare runs one independent simulation per kind. Runs share only the
// read-only inputs, so they execute concurrently; results come back in the
// order of kinds.
func (e *Engine) Compare(ctx context.Context, sig model.Signals, cfg model.BatteryConfig, kinds []strategy.Kind, socStart float64) ([]*Result, error) {
	if len(kinds) == 0 {
		kinds = strategy.AllKinds()
	}
	// Validate once up front so every run fails the same way.
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		i, k := i, k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			strat, err := strategy.New(k, cfg.Thresholds)
			if err != nil {
				return err
			}
			res, err := e.Run(sig, cfg, strat, socStart)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Candidates converts results into ranking inputs.
func Candidates(results []*Result) []analysis.Candidate {
	out := make([]analysis.Candidate, 0, len(results))
	for _, r := range results {
		out = append(out, analysis.Candidate{
			Name:        string(r.Kind),
			EnergyKWh:   r.Totals.GridEnergyKWh,
			CostGBP:     r.Totals.CostGBP,
			EmissionsKg: r.Totals.EmissionsKg,
		})
	}
	return out
}

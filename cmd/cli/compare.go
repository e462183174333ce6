package main

import (
	"fmt"

	"flexkit/internal/analysis"
	"flexkit/internal/backtest"
	"flexkit/internal/logging"

	"github.com/spf13/cobra"
)

var costWeight float64

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every strategy on the same signals and rank them",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().Float64Var(&costWeight, "cost-weight", 0.5, "weight of cost versus emissions in the ranking score")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sig, err := fetchSignals(ctx, cfg)
	if err != nil {
		return fmt.Errorf("signals: %w", err)
	}

	results, err := backtest.New(logging.New("engine")).Compare(ctx, sig, cfg.ToModel(), nil, cfg.Battery.InitialSOC)
	if err != nil {
		return err
	}
	ranked := analysis.Rank(backtest.Candidates(results), costWeight)

	fmt.Printf("%-4s %-18s %-12s %-10s %-10s %-6s\n", "rank", "strategy", "energy_kwh", "cost_gbp", "co2_kg", "score")
	for i, r := range ranked {
		marker := ""
		if r.Best {
			marker = " *"
		}
		fmt.Printf("%-4d %-18s %-12.3f %-10.4f %-10.4f %-6.3f%s\n",
			i+1, r.Name, r.EnergyKWh, r.CostGBP, r.EmissionsKg, r.Score, marker)
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"flexkit/internal/analysis"

	"github.com/spf13/cobra"
)

var statsOnly bool

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Print the configured price and carbon signals as JSON",
	RunE:  runSignals,
}

func init() {
	signalsCmd.Flags().BoolVar(&statsOnly, "stats", false, "print summary statistics only")
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, args []string) error {
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

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if statsOnly {
		return enc.Encode(map[string]analysis.SeriesStats{
			"price":  analysis.ComputeSeriesStats(sig.Price),
			"carbon": analysis.ComputeSeriesStats(sig.Carbon),
		})
	}
	return enc.Encode(sig)
}

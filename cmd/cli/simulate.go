package main

import (
	"fmt"
	"os"
	"path/filepath"

	"flexkit/internal/backtest"
	"flexkit/internal/logging"
	"flexkit/internal/strategy"

	"github.com/spf13/cobra"
)

var outPath string

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one strategy and write the dispatch schedule as CSV",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&outPath, "out", "o", "results/schedule.csv", "output CSV path")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
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

	kind, err := strategy.ParseKind(cfg.Strategy.Name)
	if err != nil {
		return err
	}
	res, err := backtest.New(logging.New("engine")).Simulate(sig, cfg.ToModel(), kind, cfg.Battery.InitialSOC)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := backtest.WriteScheduleCSV(outPath, res.Schedule); err != nil {
		return err
	}

	t := res.Totals
	fmt.Printf("Wrote %d rows to %s\n", len(res.Schedule), outPath)
	fmt.Printf("Strategy=%s charge=%d discharge=%d idle=%d\n", kind, t.ChargeSteps, t.DischargeSteps, t.IdleSteps)
	fmt.Printf("Energy=%.3f kWh Cost=£%.4f CO2=%.4f kg Final SOC=%.3f\n", t.GridEnergyKWh, t.CostGBP, t.EmissionsKg, res.FinalSOC)
	return nil
}

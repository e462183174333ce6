package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"flexkit/internal/config"
	"flexkit/internal/data"
	"flexkit/internal/logging"
	"flexkit/internal/model"

	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	strategyFl string
	regionFl   string
	stepsFl    int
	seedFl     int64
	socFl      float64
)

var rootCmd = &cobra.Command{
	Use:           "flexkit",
	Short:         "Battery dispatch strategy simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "YAML config (defaults apply when empty)")
	pf.StringVarP(&strategyFl, "strategy", "s", "", "strategy override: price_arbitrage, carbon_minimizer, blended, tariff_avoidance")
	pf.StringVar(&regionFl, "region", "", "region override for synthetic signals")
	pf.IntVarP(&stepsFl, "steps", "n", 0, "number of timesteps override")
	pf.Int64Var(&seedFl, "seed", 0, "noise seed override")
	pf.Float64Var(&socFl, "soc", -1, "initial SOC override in [0, 1]")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads --config (or defaults) and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if strategyFl != "" {
		cfg.Strategy.Name = strategyFl
	}
	if regionFl != "" {
		cfg.Signals.Region = regionFl
	}
	if stepsFl != 0 {
		cfg.Simulation.Steps = stepsFl
	}
	if seedFl != 0 {
		cfg.Signals.Seed = seedFl
	}
	if socFl >= 0 {
		cfg.Battery.InitialSOC = socFl
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.New("cli")
	for _, w := range cfg.Warnings() {
		log.Warnf("config: %s", w)
	}
	return cfg, nil
}

// fetchSignals resolves the configured source and materializes the series.
func fetchSignals(ctx context.Context, cfg *config.Config) (model.Signals, error) {
	regions, err := data.RegionsFromEnv()
	if err != nil {
		return model.Signals{}, err
	}
	src, err := cfg.BuildSource(regions, logging.New("signals"))
	if err != nil {
		return model.Signals{}, err
	}
	return src.Fetch(ctx, cfg.Simulation.Steps)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"flexkit/internal/backtest"
	"flexkit/internal/logging"
	"flexkit/internal/model"
	"flexkit/internal/strategy"

	"github.com/spf13/cobra"
)

// Demo: one hour at one-second resolution, price-arbitrage dispatch, printed
// as a sequence of SOC frames.
var (
	capacityKWh float64
	powerKW     float64
	socStart    float64
	efficiency  float64
	withDemand  bool
	every       int
	outCSV      string
	delay       time.Duration
)

const demoSteps = 3600

var demoCmd = &cobra.Command{
	Use:          "demo",
	Short:        "Animated one-hour dispatch demo",
	SilenceUsage: true,
	RunE:         runDemo,
}

func init() {
	f := demoCmd.Flags()
	f.Float64Var(&capacityKWh, "capacity", 20, "battery capacity (kWh)")
	f.Float64Var(&powerKW, "power", 5, "power rating (kW)")
	f.Float64Var(&socStart, "soc", 0.5, "starting SOC")
	f.Float64Var(&efficiency, "efficiency", 1, "charge and discharge efficiency")
	f.BoolVar(&withDemand, "demand", false, "draw the synthetic household demand from the battery")
	f.IntVar(&every, "every", 300, "print one frame every N seconds")
	f.StringVar(&outCSV, "out", "", "optional path to write the schedule CSV")
	f.DurationVar(&delay, "delay", 0, "pause between frames, e.g. 100ms")
}

func main() {
	if err := demoCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// demoSignals is a one-hour cycle: price 100+30sin, carbon 250+40cos,
// demand 2+0.5sin.
func demoSignals(start time.Time) model.Signals {
	sig := model.Signals{
		Timestamps: make([]time.Time, demoSteps),
		Price:      make([]float64, demoSteps),
		Carbon:     make([]float64, demoSteps),
	}
	if withDemand {
		sig.Demand = make([]float64, demoSteps)
	}
	for t := 0; t < demoSteps; t++ {
		phase := 2 * math.Pi * float64(t) / demoSteps
		sig.Timestamps[t] = start.Add(time.Duration(t) * time.Second)
		sig.Price[t] = 100 + 30*math.Sin(phase)
		sig.Carbon[t] = 250 + 40*math.Cos(phase)
		if withDemand {
			sig.Demand[t] = 2 + 0.5*math.Sin(phase)
		}
	}
	return sig
}

func runDemo(cmd *cobra.Command, args []string) error {
	if every <= 0 {
		every = 1
	}
	cfg := model.BatteryConfig{
		CapacityKWh:         capacityKWh,
		PowerKW:             powerKW,
		ChargeEfficiency:    efficiency,
		DischargeEfficiency: efficiency,
		StepsPerHour:        demoSteps,
		Thresholds:          model.Thresholds{ChargePrice: 100, DischargePrice: 130},
	}
	sig := demoSignals(time.Now().UTC().Truncate(time.Hour))

	res, err := backtest.New(logging.New("demo")).Simulate(sig, cfg, strategy.KindPriceArbitrage, socStart)
	if err != nil {
		return err
	}

	fmt.Printf("Battery %.0f kWh / %.0f kW, start SOC=%.2f, %d one-second steps\n\n", capacityKWh, powerKW, socStart, demoSteps)
	for i := 0; i < len(res.Schedule); i += every {
		printFrame(res.Schedule[i])
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	printFrame(res.Schedule[len(res.Schedule)-1])

	if outCSV != "" {
		if err := backtest.WriteScheduleCSV(outCSV, res.Schedule); err != nil {
			return err
		}
		fmt.Printf("\nWrote CSV: %s\n", outCSV)
	}

	t := res.Totals
	fmt.Printf("\nDone. Final SOC=%.3f  charge=%ds discharge=%ds idle=%ds  cost=£%.4f  CO2=%.4f kg\n",
		res.FinalSOC, t.ChargeSteps, t.DischargeSteps, t.IdleSteps, t.CostGBP, t.EmissionsKg)
	return nil
}

func printFrame(r backtest.Record) {
	const width = 40
	filled := int(math.Round(r.SOCAfter * width))
	fmt.Printf("t=%4ds price=%6.2f carbon=%6.2f %-9s [%s%s] %.3f\n",
		r.Index, r.Price, r.Carbon, r.Action,
		strings.Repeat("#", filled), strings.Repeat(".", width-filled), r.SOCAfter)
}

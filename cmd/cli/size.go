package main

import (
	"fmt"

	"flexkit/internal/analysis"

	"github.com/spf13/cobra"
)

var (
	dailyKWh   float64
	days       int
	efficiency float64
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Estimate the battery capacity needed to cover a daily load",
	RunE: func(cmd *cobra.Command, args []string) error {
		capacity, err := analysis.RequiredCapacity(dailyKWh, days, efficiency)
		if err != nil {
			return err
		}
		fmt.Printf("Daily load %.2f kWh x %d day(s) at %.0f%% efficiency -> %.2f kWh\n",
			dailyKWh, days, efficiency*100, capacity)
		return nil
	},
}

func init() {
	sizeCmd.Flags().Float64Var(&dailyKWh, "daily-kwh", 10, "daily energy use (kWh)")
	sizeCmd.Flags().IntVar(&days, "days", 1, "days of autonomy")
	sizeCmd.Flags().Float64Var(&efficiency, "efficiency", 0.9, "round-trip efficiency (0, 1]")
	rootCmd.AddCommand(sizeCmd)
}

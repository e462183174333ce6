package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"
)

// WriteScheduleCSV writes the schedule to path, creating or truncating it.
func WriteScheduleCSV(path string, sched Schedule) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeScheduleCSV(f, sched); err != nil {
		return err
	}
	return f.Close()
}

func EncodeScheduleCSV(out io.Writer, sched Schedule) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"timestamp",
		"price",
		"carbon",
		"demand_kwh",
		"action",
		"score",
		"soc",
		"soc_after",
		"grid_energy_kwh",
		"cost_gbp",
		"emissions_kg",
		"cum_cost_gbp",
		"cum_emissions_kg",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range sched {
		score := ""
		if r.Score != nil {
			score = fmtFloat(*r.Score)
		}
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.Timestamp),
			fmtFloat(r.Price),
			fmtFloat(r.Carbon),
			fmtFloat(r.DemandKWh),
			string(r.Action),
			score,
			fmtFloat(r.SOC),
			fmtFloat(r.SOCAfter),
			fmtFloat(r.GridEnergyKWh),
			fmtFloat(r.CostGBP),
			fmtFloat(r.EmissionsKg),
			fmtFloat(r.CumCostGBP),
			fmtFloat(r.CumEmissionsKg),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

package backtest

import (
	"time"

	"flexkit/internal/model"
	"flexkit/internal/strategy"
)

// Record is one row of per-step output. SOC is the state of charge the
// strategy saw when deciding, i.e. before the step was applied.
type Record struct {
	Index     int       `json:"index"`
	Timestamp time.Time `json:"timestamp"`

	Price     float64 `json:"price"`
	Carbon    float64 `json:"carbon"`
	DemandKWh float64 `json:"demand_kwh"`

	Action model.Action `json:"action"`
	// Score is the blended favorability, set only by the blended strategy.
	Score *float64 `json:"score,omitempty"`

	SOC      float64 `json:"soc"`
	SOCAfter float64 `json:"soc_after"`

	GridEnergyKWh float64 `json:"grid_energy_kwh"`
	CostGBP       float64 `json:"cost_gbp"`
	EmissionsKg   float64 `json:"emissions_kg"`

	CumCostGBP     float64 `json:"cum_cost_gbp"`
	CumEmissionsKg float64 `json:"cum_emissions_kg"`
}

// Schedule is the ordered sequence of records for one run.
type Schedule []Record

// Totals are plain reductions over a Schedule.
type Totals struct {
	GridEnergyKWh float64 `json:"grid_energy_kwh"`
	CostGBP       float64 `json:"cost_gbp"`
	EmissionsKg   float64 `json:"emissions_kg"`

	ChargeSteps    int `json:"charge_steps"`
	DischargeSteps int `json:"discharge_steps"`
	IdleSteps      int `json:"idle_steps"`
}

// Totals sums the per-step metrics of s.
func (s Schedule) Totals() Totals {
	var t Totals
	for _, r := range s {
		t.GridEnergyKWh += r.GridEnergyKWh
		t.CostGBP += r.CostGBP
		t.EmissionsKg += r.EmissionsKg
		switch r.Action {
		case model.ActionCharge:
			t.ChargeSteps++
		case model.ActionDischarge:
			t.DischargeSteps++
		default:
			t.IdleSteps++
		}
	}
	return t
}

// Actions returns the action column of s.
func (s Schedule) Actions() []model.Action {
	out := make([]model.Action, len(s))
	for i, r := range s {
		out[i] = r.Action
	}
	return out
}

type Result struct {
	Kind     strategy.Kind `json:"kind"`
	Schedule Schedule      `json:"schedule"`
	Totals   Totals        `json:"totals"`
	FinalSOC float64       `json:"final_soc"`
}

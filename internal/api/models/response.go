package models

import (
	"time"

	"flexkit/internal/analysis"
	"flexkit/internal/backtest"
	"flexkit/internal/model"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Strategy string            `json:"strategy"`
	Summary  SimulationSummary `json:"summary"`
	Schedule []backtest.Record `json:"schedule,omitempty"`
}

// SimulationSummary contains aggregated run results
type SimulationSummary struct {
	TotalSteps     int        `json:"total_steps"`
	Window         TimeWindow `json:"window"`
	InitialSOC     float64    `json:"initial_soc"`
	FinalSOC       float64    `json:"final_soc"`
	GridEnergyKWh  float64    `json:"grid_energy_kwh"`
	CostGBP        float64    `json:"cost_gbp"`
	EmissionsKg    float64    `json:"emissions_kg"`
	ChargeSteps    int        `json:"charge_steps"`
	DischargeSteps int        `json:"discharge_steps"`
	IdleSteps      int        `json:"idle_steps"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	ID         string             `json:"id"`
	CostWeight float64            `json:"cost_weight"`
	Best       string             `json:"best"`
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one strategy, in request order
type ComparisonResult struct {
	Name    string            `json:"name"`
	Score   float64           `json:"score"`
	Rank    int               `json:"rank"`
	Best    bool              `json:"best"`
	Summary SimulationSummary `json:"summary"`
}

// SignalsResponse returns generated or fetched signals with summary statistics
type SignalsResponse struct {
	Source      string               `json:"source"`
	Region      string               `json:"region,omitempty"`
	Signals     model.Signals        `json:"signals"`
	PriceStats  analysis.SeriesStats `json:"price_stats"`
	CarbonStats analysis.SeriesStats `json:"carbon_stats"`
}

// SizingResponse is the result of a sizing estimate
type SizingResponse struct {
	DailyKWh            float64 `json:"daily_kwh"`
	Days                int     `json:"days"`
	Efficiency          float64 `json:"efficiency"`
	RequiredCapacityKWh float64 `json:"required_capacity_kwh"`
}

// BatteryInfo represents information about a battery preset
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

// BatterySpecs contains battery specifications
type BatterySpecs struct {
	CapacityKWh float64 `json:"capacity_kwh"`
	PowerKW     float64 `json:"power_kw"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// RegionInfo represents a region available to the synthetic carbon profile
type RegionInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	BaseCarbon float64 `json:"base_carbon"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

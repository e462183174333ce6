package models

import "flexkit/internal/model"

// SimulateRequest represents the request body for a single strategy run
type SimulateRequest struct {
	Config  SimulationConfig `json:"config"`
	Signals SignalsRequest   `json:"signals"`
	Options SimulateOptions  `json:"options,omitempty"`
}

// SimulationConfig contains battery and strategy configuration
type SimulationConfig struct {
	BatteryFile string         `json:"battery_file,omitempty"` // preset id, e.g. "home_13kwh"
	Battery     BatteryConfig  `json:"battery,omitempty"`
	Strategy    StrategyConfig `json:"strategy"`
	InitialSOC  *float64       `json:"initial_soc,omitempty"` // default: 0.5
}

// BatteryConfig defines battery parameters
type BatteryConfig struct {
	Name                 string  `json:"name,omitempty"`
	CapacityKWh          float64 `json:"capacity_kwh"`
	PowerKW              float64 `json:"power_kw"`
	ChargeEfficiency     float64 `json:"charge_efficiency"`
	DischargeEfficiency  float64 `json:"discharge_efficiency"`
	PassiveDischargeRate float64 `json:"passive_discharge_rate,omitempty"`
}

// StrategyConfig selects a strategy and its thresholds. Zero thresholds take defaults.
type StrategyConfig struct {
	Name           string   `json:"name"`
	ChargePrice    float64  `json:"charge_price,omitempty"`
	DischargePrice float64  `json:"discharge_price,omitempty"`
	GreenThreshold float64  `json:"green_threshold,omitempty"`
	DirtyThreshold float64  `json:"dirty_threshold,omitempty"`
	CarbonWeight   *float64 `json:"carbon_weight,omitempty"`
}

// SignalsRequest either carries the series inline or describes how to generate them
type SignalsRequest struct {
	Inline       *model.Signals `json:"inline,omitempty"`
	Source       string         `json:"source,omitempty"` // "synthetic" (default) or "carbon_intensity"
	Steps        int            `json:"steps,omitempty"`  // default: 24
	StepsPerHour float64        `json:"steps_per_hour,omitempty"`
	Region       string         `json:"region,omitempty"`
	Seed         int64          `json:"seed,omitempty"`
	WithDemand   bool           `json:"with_demand,omitempty"`
	Start        string         `json:"start,omitempty"` // RFC3339
}

// SimulateOptions contains optional parameters
type SimulateOptions struct {
	IncludeSchedule bool `json:"include_schedule,omitempty"` // default: false
}

// CompareRequest runs several strategies against the same signals
type CompareRequest struct {
	Config     SimulationConfig `json:"config"`
	Signals    SignalsRequest   `json:"signals"`
	Strategies []string         `json:"strategies,omitempty"`  // default: all
	CostWeight *float64         `json:"cost_weight,omitempty"` // default: 0.5
}

// SignalsQuery is the query string of GET /api/v1/signals
type SignalsQuery struct {
	Source       string  `form:"source"`
	Steps        int     `form:"steps"`
	StepsPerHour float64 `form:"steps_per_hour"`
	Region       string  `form:"region"`
	Seed         int64   `form:"seed"`
	WithDemand   bool    `form:"with_demand"`
	Start        string  `form:"start"`
}

// SizingRequest estimates the capacity needed to cover a daily load
type SizingRequest struct {
	DailyKWh   float64 `json:"daily_kwh" binding:"required"`
	Days       int     `json:"days" binding:"required"`
	Efficiency float64 `json:"efficiency,omitempty"` // default: 0.9
}

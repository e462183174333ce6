package model

import (
	"fmt"
	"math"
)

const (
	// MaxChargeSOC is the SOC at or above which no strategy charges.
	MaxChargeSOC = 1.0
	// MinDischargeSOC is the SOC at or below which no strategy discharges.
	MinDischargeSOC = 0.2
	// DefaultInitialSOC is used when the caller does not supply a starting SOC.
	DefaultInitialSOC = 0.5
)

// Thresholds holds the strategy-specific trigger levels.
// Units:
// - ChargePrice, DischargePrice: price units per MWh (e.g. £/MWh)
// - Green, Dirty: gCO2/kWh
// - CarbonWeight: 0..1, used by the blended strategy only
//
// Ordering between charge/discharge and green/dirty is not checked.
type Thresholds struct {
	ChargePrice    float64
	DischargePrice float64
	Green          float64
	Dirty          float64
	CarbonWeight   float64
}

// BatteryConfig defines the physical parameters of the battery and the
// thresholds the strategies act on. It is immutable for the duration of a run.
// Units:
// - CapacityKWh: kWh
// - PowerKW: kW
// - Efficiencies: (0, 1]
// - PassiveDischargeRate: fraction of capacity lost per step
// - StepsPerHour: timesteps per hour (1 = hourly, 4 = quarter-hourly)
type BatteryConfig struct {
	CapacityKWh          float64
	PowerKW              float64
	ChargeEfficiency     float64
	DischargeEfficiency  float64
	PassiveDischargeRate float64
	StepsPerHour         float64

	Thresholds Thresholds
}

// StepSize is the SOC fraction moved by one full-power step before efficiency losses.
func (c BatteryConfig) StepSize() float64 {
	return c.PowerKW / c.CapacityKWh / c.StepsPerHour
}

func (c BatteryConfig) Validate() error {
	if c.CapacityKWh <= 0 || isBad(c.CapacityKWh) {
		return fmt.Errorf("CapacityKWh must be > 0: %w", ErrInvalidInput)
	}
	if c.PowerKW <= 0 || isBad(c.PowerKW) {
		return fmt.Errorf("PowerKW must be > 0: %w", ErrInvalidInput)
	}
	if c.ChargeEfficiency <= 0 || c.ChargeEfficiency > 1 {
		return fmt.Errorf("ChargeEfficiency must be in (0, 1]: %w", ErrInvalidInput)
	}
	if c.DischargeEfficiency <= 0 || c.DischargeEfficiency > 1 {
		return fmt.Errorf("DischargeEfficiency must be in (0, 1]: %w", ErrInvalidInput)
	}
	if c.PassiveDischargeRate < 0 || c.PassiveDischargeRate > 1 {
		return fmt.Errorf("PassiveDischargeRate must be in [0, 1]: %w", ErrInvalidInput)
	}
	if c.StepsPerHour <= 0 || isBad(c.StepsPerHour) {
		return fmt.Errorf("StepsPerHour must be > 0: %w", ErrInvalidInput)
	}
	if c.Thresholds.CarbonWeight < 0 || c.Thresholds.CarbonWeight > 1 {
		return fmt.Errorf("CarbonWeight must be in [0, 1]: %w", ErrInvalidInput)
	}
	return nil
}

// DemandEnergyKWh converts a demand sample in kW to the energy drawn over one step.
func (c BatteryConfig) DemandEnergyKWh(demandKW float64) float64 {
	return demandKW / c.StepsPerHour
}

// UpdateSOC applies one step of battery physics and returns the next SOC:
//  1. passive self-discharge
//  2. user demand, drawn regardless of the chosen action
//  3. the action itself, with charge/discharge efficiency applied
//
// Out-of-range values are clamped to [0,1]; clamping is the recovery policy.
func UpdateSOC(soc float64, action Action, cfg BatteryConfig, demandEnergyKWh float64) float64 {
	soc = math.Max(0, soc-cfg.PassiveDischargeRate)
	if demandEnergyKWh > 0 {
		soc = math.Max(0, soc-demandEnergyKWh/cfg.CapacityKWh)
	}

	step := cfg.StepSize()
	switch action {
	case ActionCharge:
		soc = math.Min(1.0, soc+step*cfg.ChargeEfficiency)
	case ActionDischarge:
		soc = math.Max(0.0, soc-step/cfg.DischargeEfficiency)
	}
	return clamp01(soc)
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func isBad(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

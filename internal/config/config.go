package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flexkit/internal/data"
	"flexkit/internal/logging"
	"flexkit/internal/model"
	"flexkit/internal/strategy"

	"gopkg.in/yaml.v3"
)

const (
	SourceSynthetic       = "synthetic"
	SourceCarbonIntensity = "carbon_intensity"
	SourceFile            = "file"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML (e.g. examples/batteries/*.yaml).
	// If both BatteryFile and Battery are provided, Battery overrides BatteryFile.
	BatteryFile string           `yaml:"battery_file"`
	Battery     BatteryConfig    `yaml:"battery"`
	Strategy    StrategyConfig   `yaml:"strategy"`
	Simulation  SimulationConfig `yaml:"simulation"`
	Signals     SignalsConfig    `yaml:"signals"`
}

type BatteryConfig struct {
	Name                 string  `yaml:"name"`
	CapacityKWh          float64 `yaml:"capacity_kwh"`
	PowerKW              float64 `yaml:"power_kw"`
	ChargeEfficiency     float64 `yaml:"charge_efficiency"`
	DischargeEfficiency  float64 `yaml:"discharge_efficiency"`
	PassiveDischargeRate float64 `yaml:"passive_discharge_rate"`
	InitialSOC           float64 `yaml:"initial_soc"`
}

type StrategyConfig struct {
	Name           string   `yaml:"name"`
	ChargePrice    float64  `yaml:"charge_price"`
	DischargePrice float64  `yaml:"discharge_price"`
	GreenThreshold float64  `yaml:"green_threshold"`
	DirtyThreshold float64  `yaml:"dirty_threshold"`
	CarbonWeight   *float64 `yaml:"carbon_weight"`
}

type SimulationConfig struct {
	Steps        int     `yaml:"steps"`
	StepsPerHour float64 `yaml:"steps_per_hour"`
	// Start is RFC3339; empty means the current hour.
	Start string `yaml:"start"`
}

type SignalsConfig struct {
	Source     string `yaml:"source"`
	Region     string `yaml:"region"`
	Seed       int64  `yaml:"seed"`
	WithDemand bool   `yaml:"with_demand"`
	// File is read when Source is "file".
	File string `yaml:"file"`
	// BaseURL overrides the carbon intensity API endpoint.
	BaseURL string `yaml:"base_url"`
	// Fallback serves synthetic signals when a remote source fails.
	Fallback bool `yaml:"fallback"`
}

// Load reads, merges, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	// If battery_file is set, load it and merge in any explicit overrides from c.Battery.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Relative to the config file first, then to the working directory.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := LoadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

// Default returns a fully defaulted config.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills every zero-valued field.
func (c *Config) SetDefaults() {
	b := &c.Battery
	if b.CapacityKWh == 0 {
		b.CapacityKWh = 20
	}
	if b.PowerKW == 0 {
		b.PowerKW = 5
	}
	if b.ChargeEfficiency == 0 {
		b.ChargeEfficiency = 0.95
	}
	if b.DischargeEfficiency == 0 {
		b.DischargeEfficiency = 0.95
	}
	if b.InitialSOC == 0 {
		b.InitialSOC = model.DefaultInitialSOC
	}

	s := &c.Strategy
	if s.Name == "" {
		s.Name = string(strategy.KindBlended)
	}
	if s.ChargePrice == 0 {
		s.ChargePrice = 100
	}
	if s.DischargePrice == 0 {
		s.DischargePrice = 130
	}
	if s.GreenThreshold == 0 {
		s.GreenThreshold = 230
	}
	if s.DirtyThreshold == 0 {
		s.DirtyThreshold = 270
	}
	if s.CarbonWeight == nil {
		w := 0.5
		s.CarbonWeight = &w
	}

	if c.Simulation.Steps == 0 {
		c.Simulation.Steps = 24
	}
	if c.Simulation.StepsPerHour == 0 {
		c.Simulation.StepsPerHour = 1
	}

	if c.Signals.Source == "" {
		c.Signals.Source = SourceSynthetic
	}
	if c.Signals.Region == "" {
		c.Signals.Region = "UK"
	}
	if c.Signals.Seed == 0 {
		c.Signals.Seed = 42
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := strategy.ParseKind(c.Strategy.Name); err != nil {
		return fmt.Errorf("strategy.name: %w", err)
	}
	if err := c.ToModel().Validate(); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	if soc := c.Battery.InitialSOC; soc < 0 || soc > 1 {
		return fmt.Errorf("battery.initial_soc must be in [0, 1]: %w", model.ErrInvalidInput)
	}
	if c.Simulation.Steps <= 0 {
		return fmt.Errorf("simulation.steps must be > 0: %w", model.ErrInvalidInput)
	}
	if _, err := c.StartTime(); err != nil {
		return err
	}
	switch c.Signals.Source {
	case SourceSynthetic, SourceCarbonIntensity:
	case SourceFile:
		if c.Signals.File == "" {
			return errors.New("signals.file is required when signals.source is file")
		}
	default:
		return fmt.Errorf("unsupported signals.source %q", c.Signals.Source)
	}
	return nil
}

// Warnings lists suspicious but accepted settings.
func (c *Config) Warnings() []string {
	var out []string
	if c.Strategy.ChargePrice >= c.Strategy.DischargePrice {
		out = append(out, fmt.Sprintf("charge_price %.2f >= discharge_price %.2f", c.Strategy.ChargePrice, c.Strategy.DischargePrice))
	}
	if c.Strategy.GreenThreshold >= c.Strategy.DirtyThreshold {
		out = append(out, fmt.Sprintf("green_threshold %.2f >= dirty_threshold %.2f", c.Strategy.GreenThreshold, c.Strategy.DirtyThreshold))
	}
	return out
}

// ToModel converts the file shape into the engine's battery config.
func (c *Config) ToModel() model.BatteryConfig {
	w := 0.5
	if c.Strategy.CarbonWeight != nil {
		w = *c.Strategy.CarbonWeight
	}
	return model.BatteryConfig{
		CapacityKWh:          c.Battery.CapacityKWh,
		PowerKW:              c.Battery.PowerKW,
		ChargeEfficiency:     c.Battery.ChargeEfficiency,
		DischargeEfficiency:  c.Battery.DischargeEfficiency,
		PassiveDischargeRate: c.Battery.PassiveDischargeRate,
		StepsPerHour:         c.Simulation.StepsPerHour,
		Thresholds: model.Thresholds{
			ChargePrice:    c.Strategy.ChargePrice,
			DischargePrice: c.Strategy.DischargePrice,
			Green:          c.Strategy.GreenThreshold,
			Dirty:          c.Strategy.DirtyThreshold,
			CarbonWeight:   w,
		},
	}
}

// StartTime parses simulation.start, defaulting to the current UTC hour.
func (c *Config) StartTime() (time.Time, error) {
	if c.Simulation.Start == "" {
		return time.Now().UTC().Truncate(time.Hour), nil
	}
	t, err := time.Parse(time.RFC3339, c.Simulation.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("simulation.start: %w", err)
	}
	return t, nil
}

// BuildSource constructs the signal source named by the signals section.
func (c *Config) BuildSource(regions []data.Region, log logging.Logger) (data.Source, error) {
	region, err := data.LookupRegion(regions, c.Signals.Region)
	if err != nil {
		return nil, err
	}
	start, err := c.StartTime()
	if err != nil {
		return nil, err
	}
	step := time.Duration(float64(time.Hour) / c.Simulation.StepsPerHour)
	synthetic := data.NewSynthetic(region, start, step, c.Signals.Seed)
	synthetic.WithDemand = c.Signals.WithDemand

	var src data.Source
	switch c.Signals.Source {
	case SourceSynthetic:
		return synthetic, nil
	case SourceFile:
		src = data.FileSource{Path: c.Signals.File}
	case SourceCarbonIntensity:
		stepMinutes := int(step / time.Minute)
		client := data.NewCarbonIntensityClient(c.Signals.BaseURL, stepMinutes, synthetic, log)
		client.Cache = data.NewResponseCache(30 * time.Minute)
		src = client
	default:
		return nil, fmt.Errorf("unsupported signals.source %q", c.Signals.Source)
	}
	if c.Signals.Fallback {
		return data.FallbackSource{Primary: src, Fallback: synthetic, Log: log}, nil
	}
	return src, nil
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

// LoadBatteryFile reads a battery preset (a YAML document with a top-level battery key).
func LoadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	if w.Battery.Name == "" {
		w.Battery.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
// This is used when loading a battery file and then applying overrides from the request.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.PowerKW != 0 {
		out.PowerKW = override.PowerKW
	}
	if override.ChargeEfficiency != 0 {
		out.ChargeEfficiency = override.ChargeEfficiency
	}
	if override.DischargeEfficiency != 0 {
		out.DischargeEfficiency = override.DischargeEfficiency
	}
	if override.PassiveDischargeRate != 0 {
		out.PassiveDischargeRate = override.PassiveDischargeRate
	}
	if override.InitialSOC != 0 {
		out.InitialSOC = override.InitialSOC
	}
	return out
}

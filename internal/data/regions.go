package data

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Region is a grid area with a typical carbon intensity used to shape
// synthetic carbon signals.
type Region struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	BaseCarbon float64 `json:"base_carbon"` // gCO2/kWh
}

// DefaultRegions returns the built-in region list.
func DefaultRegions() []Region {
	return []Region{
		{ID: "UK", Name: "United Kingdom", BaseCarbon: 250},
		{ID: "DE", Name: "Germany", BaseCarbon: 300},
		{ID: "FR", Name: "France", BaseCarbon: 100},
		{ID: "CA", Name: "California", BaseCarbon: 200},
		{ID: "TX", Name: "Texas", BaseCarbon: 400},
	}
}

// LookupRegion matches id or name, case-insensitively.
func LookupRegion(regions []Region, key string) (Region, error) {
	key = strings.TrimSpace(key)
	for _, r := range regions {
		if strings.EqualFold(r.ID, key) || strings.EqualFold(r.Name, key) {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("unknown region %q", key)
}

// LoadRegions reads a JSON array of regions.
func LoadRegions(path string) ([]Region, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions file: %w", err)
	}
	var regions []Region
	if err := json.Unmarshal(raw, &regions); err != nil {
		return nil, fmt.Errorf("failed to parse regions file: %w", err)
	}
	return regions, nil
}

// RegionsFromEnv loads REGIONS_FILE when set, otherwise the defaults.
func RegionsFromEnv() ([]Region, error) {
	if path := os.Getenv("REGIONS_FILE"); path != "" {
		return LoadRegions(path)
	}
	return DefaultRegions(), nil
}

package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"flexkit/internal/model"
)

func LoadSignalsJSON(path string) (*model.Signals, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sig model.Signals
	if err := json.Unmarshal(raw, &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

// FileSource serves signals stored in a JSON file, truncated to the requested
// number of steps. A file shorter than steps is an error.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context, steps int) (model.Signals, error) {
	if err := ctx.Err(); err != nil {
		return model.Signals{}, err
	}
	sig, err := LoadSignalsJSON(s.Path)
	if err != nil {
		return model.Signals{}, err
	}
	if steps <= 0 || steps > sig.Len() {
		return model.Signals{}, fmt.Errorf("%s holds %d steps, %d requested: %w", s.Path, sig.Len(), steps, model.ErrInvalidInput)
	}
	return slice(*sig, steps), nil
}

func slice(sig model.Signals, n int) model.Signals {
	out := model.Signals{
		Timestamps: sig.Timestamps[:min(n, len(sig.Timestamps))],
		Price:      sig.Price[:n],
		Carbon:     sig.Carbon[:min(n, len(sig.Carbon))],
	}
	if sig.HasDemand() {
		out.Demand = sig.Demand[:min(n, len(sig.Demand))]
	}
	return out
}

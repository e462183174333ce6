package data

import (
	"context"

	"flexkit/internal/logging"
	"flexkit/internal/model"
)

// Source produces the exogenous signals for a run of the given length.
// Implementations may perform I/O and may fail; the simulation engine only
// ever sees the materialized result.
type Source interface {
	Fetch(ctx context.Context, steps int) (model.Signals, error)
}

// FallbackSource tries Primary and, on any error, serves Fallback instead.
type FallbackSource struct {
	Primary  Source
	Fallback Source
	Log      logging.Logger
}

func (s FallbackSource) Fetch(ctx context.Context, steps int) (model.Signals, error) {
	sig, err := s.Primary.Fetch(ctx, steps)
	if err == nil {
		return sig, nil
	}
	if ctx.Err() != nil {
		return model.Signals{}, ctx.Err()
	}
	logging.OrNop(s.Log).Warnf("primary signal source failed, using fallback: %v", err)
	return s.Fallback.Fetch(ctx, steps)
}

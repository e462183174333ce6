package strategy

import (
	"testing"
	"time"

	"flexkit/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testThresholds = model.Thresholds{
	ChargePrice:    90,
	DischargePrice: 150,
	Green:          200,
	Dirty:          300,
	CarbonWeight:   0.5,
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"price_arbitrage":  KindPriceArbitrage,
		"Carbon-Minimizer": KindCarbonMinimizer,
		" blended ":        KindBlended,
		"TARIFF_AVOIDANCE": KindTariffAvoidance,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("oracle")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestNew(t *testing.T) {
	for _, k := range AllKinds() {
		s, err := New(k, testThresholds)
		require.NoError(t, err)
		assert.Equal(t, k, s.Kind())
	}
	_, err := New(Kind("schedule"), testThresholds)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestNewSeriesContext(t *testing.T) {
	sig := model.Signals{
		Timestamps: make([]time.Time, 3),
		Price:      []float64{50, 20, 80},
		Carbon:     []float64{300, 100, 200},
	}
	sc := NewSeriesContext(sig)
	assert.Equal(t, SeriesContext{PriceMin: 20, PriceMax: 80, CarbonMin: 100, CarbonMax: 300}, sc)
	assert.Equal(t, SeriesContext{}, NewSeriesContext(model.Signals{}))
}

func TestPriceArbitrage(t *testing.T) {
	s := PriceArbitrage{ChargeBelow: 90, DischargeAbove: 150}
	tests := []struct {
		name  string
		price float64
		soc   float64
		want  model.Action
	}{
		{"cheap charges", 50, 0.5, model.ActionCharge},
		{"cheap but full idles", 50, 1.0, model.ActionIdle},
		{"expensive discharges", 200, 0.5, model.ActionDischarge},
		{"expensive at floor idles", 200, 0.2, model.ActionIdle},
		{"between thresholds idles", 120, 0.5, model.ActionIdle},
		{"exactly at charge threshold idles", 90, 0.5, model.ActionIdle},
		{"exactly at discharge threshold idles", 150, 0.5, model.ActionIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.Decide(Context{Price: tt.price, Carbon: 250, SOC: tt.soc})
			assert.Equal(t, tt.want, d.Action)
			assert.Nil(t, d.Score)
		})
	}
}

func TestPriceArbitrage_InvertedThresholds(t *testing.T) {
	// Charge threshold above discharge threshold is accepted; charging wins
	// while there is headroom, discharging once full.
	s := PriceArbitrage{ChargeBelow: 150, DischargeAbove: 90}
	assert.Equal(t, model.ActionCharge, s.Decide(Context{Price: 120, SOC: 0.5}).Action)
	assert.Equal(t, model.ActionDischarge, s.Decide(Context{Price: 120, SOC: 1.0}).Action)
}

func TestCarbonMinimizer(t *testing.T) {
	s := CarbonMinimizer{ChargeBelow: 200, DischargeAbove: 300}
	assert.Equal(t, model.ActionCharge, s.Decide(Context{Price: 999, Carbon: 150, SOC: 0.5}).Action)
	assert.Equal(t, model.ActionDischarge, s.Decide(Context{Price: 0, Carbon: 350, SOC: 0.5}).Action)
	assert.Equal(t, model.ActionIdle, s.Decide(Context{Carbon: 250, SOC: 0.5}).Action)
	assert.Equal(t, model.ActionIdle, s.Decide(Context{Carbon: 350, SOC: 0.1}).Action)
	assert.Equal(t, model.ActionIdle, s.Decide(Context{Carbon: 150, SOC: 1.0}).Action)
}

func TestTariffAvoidance_NeverDischarges(t *testing.T) {
	s := TariffAvoidance{ChargeBelow: 90}
	for _, price := range []float64{-50, 0, 50, 89.9, 90, 150, 1e6} {
		for _, soc := range []float64{0, 0.2, 0.5, 0.99, 1} {
			d := s.Decide(Context{Price: price, Carbon: 500, SOC: soc})
			assert.NotEqual(t, model.ActionDischarge, d.Action, "price=%v soc=%v", price, soc)
		}
	}
	assert.Equal(t, model.ActionCharge, s.Decide(Context{Price: 50, SOC: 0.5}).Action)
}

func TestBlended(t *testing.T) {
	sc := SeriesContext{PriceMin: 0, PriceMax: 100, CarbonMin: 100, CarbonMax: 300}
	s := Blended{CarbonWeight: 0.5}

	t.Run("cheap and green charges", func(t *testing.T) {
		d := s.Decide(Context{Price: 0, Carbon: 100, SOC: 0.5, Series: sc})
		require.NotNil(t, d.Score)
		assert.InDelta(t, 1.0, *d.Score, 1e-12)
		assert.Equal(t, model.ActionCharge, d.Action)
	})

	t.Run("expensive and dirty discharges", func(t *testing.T) {
		d := s.Decide(Context{Price: 100, Carbon: 300, SOC: 0.5, Series: sc})
		assert.InDelta(t, 0.0, *d.Score, 1e-12)
		assert.Equal(t, model.ActionDischarge, d.Action)
	})

	t.Run("mixed idles", func(t *testing.T) {
		// price score 1, carbon score 0 -> 0.5
		d := s.Decide(Context{Price: 0, Carbon: 300, SOC: 0.5, Series: sc})
		assert.InDelta(t, 0.5, *d.Score, 1e-12)
		assert.Equal(t, model.ActionIdle, d.Action)
	})

	t.Run("weight shifts decision", func(t *testing.T) {
		carbonOnly := Blended{CarbonWeight: 1}
		d := carbonOnly.Decide(Context{Price: 100, Carbon: 100, SOC: 0.5, Series: sc})
		assert.Equal(t, model.ActionCharge, d.Action)
		priceOnly := Blended{CarbonWeight: 0}
		d = priceOnly.Decide(Context{Price: 100, Carbon: 100, SOC: 0.5, Series: sc})
		assert.Equal(t, model.ActionDischarge, d.Action)
	})

	t.Run("SOC bounds respected", func(t *testing.T) {
		assert.Equal(t, model.ActionIdle, s.Decide(Context{Price: 0, Carbon: 100, SOC: 1.0, Series: sc}).Action)
		assert.Equal(t, model.ActionIdle, s.Decide(Context{Price: 100, Carbon: 300, SOC: 0.2, Series: sc}).Action)
	})

	t.Run("constant series is neutral", func(t *testing.T) {
		flat := SeriesContext{PriceMin: 50, PriceMax: 50, CarbonMin: 200, CarbonMax: 200}
		d := s.Decide(Context{Price: 50, Carbon: 200, SOC: 0.5, Series: flat})
		assert.InDelta(t, 0.5, *d.Score, 1e-12)
		assert.Equal(t, model.ActionIdle, d.Action)
	})
}

func TestDecideIsPure(t *testing.T) {
	ctx := Context{Price: 40, Carbon: 150, SOC: 0.4, Series: SeriesContext{PriceMax: 100, CarbonMin: 100, CarbonMax: 300}}
	for _, k := range AllKinds() {
		s, err := New(k, testThresholds)
		require.NoError(t, err)
		a := s.Decide(ctx)
		b := s.Decide(ctx)
		assert.Equal(t, a.Action, b.Action, k)
	}
}

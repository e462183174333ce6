package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorability(t *testing.T) {
	assert.InDelta(t, 1.0, Favorability(10, 10, 20), 1e-12)
	assert.InDelta(t, 0.0, Favorability(20, 10, 20), 1e-12)
	assert.InDelta(t, 0.25, Favorability(17.5, 10, 20), 1e-12)
	assert.Equal(t, NeutralScore, Favorability(5, 5, 5))
}

func TestComputeSeriesStats(t *testing.T) {
	s := ComputeSeriesStats([]float64{5, 1, 3, 2, 4})
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 3.0, s.Mean, 1e-12)
	// pos = 0.05*4 = 0.2 -> 1 + 0.2*(2-1)
	assert.InDelta(t, 1.2, s.P05, 1e-12)
	assert.InDelta(t, 4.8, s.P95, 1e-12)
	assert.InDelta(t, 3.6, s.SpreadP95P05, 1e-12)

	empty := ComputeSeriesStats(nil)
	assert.Equal(t, 0, empty.Count)
}

func TestComputeSeriesStatsDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	ComputeSeriesStats(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestRank(t *testing.T) {
	// Totals shaped like a typical day of the four strategies.
	cands := []Candidate{
		{Name: "blended", EnergyKWh: 14.6, CostGBP: 9.32, EmissionsKg: 7.1},
		{Name: "tariff_avoidance", EnergyKWh: 12.3, CostGBP: 6.85, EmissionsKg: 8.5},
		{Name: "price_arbitrage", EnergyKWh: 15.1, CostGBP: 11.2, EmissionsKg: 9.9},
		{Name: "carbon_minimizer", EnergyKWh: 13.8, CostGBP: 8.90, EmissionsKg: 5.3},
	}

	t.Run("balanced", func(t *testing.T) {
		ranked := Rank(cands, 0.5)
		require.Len(t, ranked, 4)
		assert.Equal(t, "carbon_minimizer", ranked[0].Name)
		assert.True(t, ranked[0].Best)
		assert.False(t, ranked[1].Best)
		assert.Equal(t, "price_arbitrage", ranked[3].Name)
		assert.InDelta(t, 0.0, ranked[3].Score, 1e-12)
	})

	t.Run("cost only", func(t *testing.T) {
		ranked := Rank(cands, 1)
		assert.Equal(t, "tariff_avoidance", ranked[0].Name)
		assert.InDelta(t, 1.0, ranked[0].Score, 1e-12)
	})

	t.Run("carbon only", func(t *testing.T) {
		ranked := Rank(cands, -3)
		assert.Equal(t, "carbon_minimizer", ranked[0].Name)
	})

	t.Run("identical candidates keep order", func(t *testing.T) {
		same := []Candidate{{Name: "a", CostGBP: 1, EmissionsKg: 1}, {Name: "b", CostGBP: 1, EmissionsKg: 1}}
		ranked := Rank(same, 0.5)
		assert.Equal(t, "a", ranked[0].Name)
		assert.InDelta(t, NeutralScore, ranked[0].Score, 1e-12)
	})

	assert.Empty(t, Rank(nil, 0.5))
}

func TestRequiredCapacity(t *testing.T) {
	got, err := RequiredCapacity(20, 2, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 44.444, got, 0.001)

	_, err = RequiredCapacity(0, 2, 0.9)
	assert.ErrorIs(t, err, ErrInvalidSizing)
	_, err = RequiredCapacity(20, 0, 0.9)
	assert.ErrorIs(t, err, ErrInvalidSizing)
	_, err = RequiredCapacity(20, 2, 1.2)
	assert.ErrorIs(t, err, ErrInvalidSizing)
}

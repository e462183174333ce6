package analysis

// NeutralScore is returned when a series is constant and min-max
// normalization is undefined.
const NeutralScore = 0.5

// Favorability maps v onto [0,1] where lo scores 1 and hi scores 0:
//
//	1 - (v - lo) / (hi - lo)
//
// A constant range (hi == lo) yields NeutralScore instead of dividing by zero.
func Favorability(v, lo, hi float64) float64 {
	span := hi - lo
	if span == 0 {
		return NeutralScore
	}
	return 1 - (v-lo)/span
}

package analysis

import (
	"errors"
	"fmt"
)

var ErrInvalidSizing = errors.New("invalid sizing input")

// RequiredCapacity estimates the battery capacity (kWh) needed to cover
// dailyKWh of load for days of autonomy at the given round-trip efficiency.
func RequiredCapacity(dailyKWh float64, days int, efficiency float64) (float64, error) {
	if dailyKWh <= 0 {
		return 0, fmt.Errorf("daily energy must be > 0: %w", ErrInvalidSizing)
	}
	if days < 1 {
		return 0, fmt.Errorf("days of autonomy must be >= 1: %w", ErrInvalidSizing)
	}
	if efficiency <= 0 || efficiency > 1 {
		return 0, fmt.Errorf("efficiency must be in (0, 1]: %w", ErrInvalidSizing)
	}
	return dailyKWh * float64(days) / efficiency, nil
}

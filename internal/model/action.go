package model

import "fmt"

// Action is the dispatch decision for a timestep.
// Keep these values stable; they are intended for CSV and JSON output.
type Action string

const (
	ActionCharge    Action = "charge"
	ActionIdle      Action = "idle"
	ActionDischarge Action = "discharge"
)

// Valid reports whether a is one of the three dispatch actions.
func (a Action) Valid() bool {
	switch a {
	case ActionCharge, ActionIdle, ActionDischarge:
		return true
	default:
		return false
	}
}

func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown action %q: %w", s, ErrInvalidInput)
	}
	return a, nil
}

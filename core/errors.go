package core

import "fmt"

// InvalidGoalError is returned when a run is started with an unusable goal.
// It aborts the run before any state mutation takes place.
type InvalidGoalError struct {
	Reason string
}

func (e *InvalidGoalError) Error() string {
	return fmt.Sprintf("invalid goal: %s", e.Reason)
}

package entity

import (
	"fmt"
	"strings"
)

// ValidationError collects every violation found in a single validation
// pass instead of failing on the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// InvalidTransitionError is returned when a status change is not allowed
// by the booking state machine. The booking keeps its current status.
type InvalidTransitionError struct {
	From  BookingStatus
	Event string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s booking with status %s", e.Event, e.From)
}

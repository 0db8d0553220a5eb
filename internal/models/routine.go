package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one timed step of a routine.
type Activity struct {
	Label           string `json:"label"`
	Start           string `json:"start"` // "HH:MM"
	DurationMinutes int    `json:"duration"`
}

// Routine is a one-shot planning template: it is consumed exactly once by
// the planner and never persisted as-is. Recurrence holds French lowercase
// weekday names ("lundi".."dimanche"), matching the assistant's contract.
type Routine struct {
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
	Recurrence []string   `json:"recurrence"`
}

// RoutineRecord is the descriptive row a planned routine leaves behind for
// display (its steps), distinct from the calendar events it produced.
type RoutineRecord struct {
	RoutineID uuid.UUID `json:"routine_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Steps     []string  `json:"steps"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

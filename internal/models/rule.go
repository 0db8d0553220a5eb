package models

import (
	"time"

	"github.com/google/uuid"
)

// RecurringRule is a weekly template re-evaluated daily to emit due events.
// Days uses the Monday-first convention: index 0 is Monday, index 6 is
// Sunday. This is NOT time.Weekday's Sunday-first numbering; conversion
// happens in one place (schedule.ToMondayFirst) and nowhere else.
type RecurringRule struct {
	RuleID          uuid.UUID `json:"rule_id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	StartTime       string    `json:"start_time"` // "HH:MM"
	DurationMinutes int       `json:"duration_minutes"`
	Days            [7]bool   `json:"days"`
	Category        string    `json:"category"`
	Color           string    `json:"color"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// HasDay reports whether any weekday is selected.
func (r *RecurringRule) HasDay() bool {
	for _, d := range r.Days {
		if d {
			return true
		}
	}
	return false
}

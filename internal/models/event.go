package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	EventID   uuid.UUID  `json:"event_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Category  string     `json:"category"`
	Color     string     `json:"color"`
	Location  string     `json:"location,omitempty"`
	RuleID    *uuid.UUID `json:"rule_id,omitempty"`   // Set when generated from a recurring rule
	RuleDate  *time.Time `json:"rule_date,omitempty"` // Generation date, part of the idempotency key
	CreatedAt time.Time  `json:"created_at"`
}

// Duration returns the event length.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

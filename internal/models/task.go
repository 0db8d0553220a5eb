package models

import (
	"time"

	"github.com/google/uuid"
)

// Task priorities, as the assistant emits them.
const (
	PriorityHigh   = "haute"
	PriorityMedium = "moyenne"
	PriorityLow    = "basse"
)

// NormalizePriority maps assistant output onto the known priority levels,
// falling back to medium for anything unrecognized.
func NormalizePriority(p string) string {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	}
	return PriorityMedium
}

// Task is an actionable item extracted from free text by the assistant.
type Task struct {
	TaskID          uuid.UUID `json:"task_id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	Subtasks        []string  `json:"subtasks"`
	Priority        string    `json:"priority"`
	DurationMinutes int       `json:"duration_minutes"`
	Delegable       bool      `json:"delegable"`
	Done            bool      `json:"done"`
	CreatedAt       time.Time `json:"created_at"`
}

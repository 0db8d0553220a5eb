package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Assistant log types.
const (
	LogRoutinePlanning   = "routine_planning"
	LogRoutineGeneration = "routine_generation"
	LogTaskExtraction    = "task_extraction"
	LogChat              = "chat"
	LogCalendarSync      = "calendar_sync"
)

// AssistantLog records one assistant interaction. Writes are fire-and-forget:
// a failed log must never fail the operation it describes.
type AssistantLog struct {
	LogID     int64           `json:"log_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Message   string          `json:"message"`
	LogType   string          `json:"type"`
	Context   json.RawMessage `json:"context,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

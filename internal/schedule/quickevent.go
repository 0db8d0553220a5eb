package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/models"
)

// QuickEventInput is a single ad-hoc calendar slot, optionally followed by a
// pause block.
type QuickEventInput struct {
	Title           string `json:"title"`
	Date            string `json:"date"` // "YYYY-MM-DD"
	Time            string `json:"time"` // "HH:MM"
	DurationMinutes int    `json:"duration_minutes"`
	Category        string `json:"category"`
	PauseMinutes    int    `json:"pause_minutes"`
}

// ComposeResult holds the composed primary event and, when requested, the
// pause event chained immediately after it.
type ComposeResult struct {
	Primary *models.Event
	Pause   *models.Event
}

// Compose validates the input and builds the event value(s). Nothing is
// persisted here. The pause, when present, starts exactly at the primary
// event's end.
func Compose(input QuickEventInput, userID uuid.UUID, loc *time.Location) (*ComposeResult, error) {
	if input.Title == "" {
		return nil, newValidationError("title is required")
	}
	if input.Date == "" {
		return nil, newValidationError("date is required")
	}
	if input.Time == "" {
		return nil, newValidationError("time is required")
	}
	if input.DurationMinutes <= 0 {
		return nil, newValidationError("duration must be positive")
	}
	if loc == nil {
		loc = time.Local
	}

	day, err := time.ParseInLocation("2006-01-02", input.Date, loc)
	if err != nil {
		return nil, newValidationError("invalid date " + input.Date)
	}
	start, err := AtClock(day, input.Time)
	if err != nil {
		return nil, newValidationError(err.Error())
	}
	end := start.Add(time.Duration(input.DurationMinutes) * time.Minute)

	title := input.Title
	if emoji := models.CategoryEmoji(input.Category); emoji != "" {
		title = emoji + " " + title
	}

	result := &ComposeResult{
		Primary: &models.Event{
			UserID:   userID,
			Title:    title,
			Start:    start,
			End:      end,
			Category: input.Category,
			Color:    models.EventColor(input.Category),
		},
	}

	if input.PauseMinutes > 0 {
		result.Pause = &models.Event{
			UserID:   userID,
			Title:    "☕ Pause",
			Start:    end,
			End:      end.Add(time.Duration(input.PauseMinutes) * time.Minute),
			Category: models.CategoryPause,
			Color:    models.PauseColor,
		}
	}

	return result, nil
}

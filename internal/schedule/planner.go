package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/models"
)

// PlanResult holds the events a routine expanded into. Count always equals
// len(routine.Recurrence) * len(routine.Activities).
type PlanResult struct {
	Events []*models.Event
	Count  int
}

// Plan expands a one-shot routine into concrete calendar events: one per
// (recurrence day, activity) pair, each scheduled at the next occurrence of
// that weekday relative to now. Days iterate in the outer loop, activities
// in the inner one, which fixes insertion order only.
func Plan(routine *models.Routine, userID uuid.UUID, now time.Time) (*PlanResult, error) {
	if routine.Title == "" {
		return nil, newValidationError("routine title is required")
	}
	if len(routine.Activities) == 0 {
		return nil, newValidationError("routine has no activities")
	}
	if len(routine.Recurrence) == 0 {
		return nil, newValidationError("routine has no recurrence days")
	}
	for _, activity := range routine.Activities {
		if activity.DurationMinutes <= 0 {
			return nil, newValidationError("activity " + activity.Label + " has no duration")
		}
	}

	events := make([]*models.Event, 0, len(routine.Recurrence)*len(routine.Activities))
	for _, day := range routine.Recurrence {
		for _, activity := range routine.Activities {
			start, err := NextOccurrence(day, activity.Start, now)
			if err != nil {
				return nil, newValidationError("invalid routine: " + err.Error())
			}
			end := start.Add(time.Duration(activity.DurationMinutes) * time.Minute)

			events = append(events, &models.Event{
				UserID:   userID,
				Title:    routine.Title + " - " + activity.Label,
				Start:    start,
				End:      end,
				Category: models.CategoryRoutine,
				Color:    models.RoutineColor,
			})
		}
	}

	return &PlanResult{Events: events, Count: len(events)}, nil
}

// Steps renders a routine's activities as display strings for the routine
// record saved alongside the planned events.
func Steps(routine *models.Routine) []string {
	steps := make([]string, 0, len(routine.Activities))
	for _, activity := range routine.Activities {
		steps = append(steps, activity.Start+" "+activity.Label)
	}
	return steps
}

package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/models"
)

func morningFlow() *models.Routine {
	return &models.Routine{
		Title: "Morning Flow",
		Activities: []models.Activity{
			{Label: "Meditation", Start: "07:00", DurationMinutes: 15},
			{Label: "Journaling", Start: "07:20", DurationMinutes: 10},
		},
		Recurrence: []string{"lundi", "mercredi"},
	}
}

func TestPlanWeeklyRoutine(t *testing.T) {
	userID := uuid.New()
	// Friday noon; next lundi is 03-10, next mercredi is 03-12.
	now := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)

	result, err := Plan(morningFlow(), userID, now)
	if err != nil {
		t.Fatal(err)
	}
	if result.Count != 4 {
		t.Fatalf("count = %d, want 4", result.Count)
	}

	type slot struct {
		title      string
		start, end time.Time
	}
	want := []slot{
		{"Morning Flow - Meditation",
			time.Date(2025, time.March, 10, 7, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 7, 15, 0, 0, time.UTC)},
		{"Morning Flow - Journaling",
			time.Date(2025, time.March, 10, 7, 20, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 7, 30, 0, 0, time.UTC)},
		{"Morning Flow - Meditation",
			time.Date(2025, time.March, 12, 7, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 12, 7, 15, 0, 0, time.UTC)},
		{"Morning Flow - Journaling",
			time.Date(2025, time.March, 12, 7, 20, 0, 0, time.UTC),
			time.Date(2025, time.March, 12, 7, 30, 0, 0, time.UTC)},
	}
	for i, w := range want {
		e := result.Events[i]
		if e.Title != w.title {
			t.Errorf("event %d title = %q, want %q", i, e.Title, w.title)
		}
		if !e.Start.Equal(w.start) || !e.End.Equal(w.end) {
			t.Errorf("event %d = [%v, %v), want [%v, %v)", i, e.Start, e.End, w.start, w.end)
		}
		if e.Category != models.CategoryRoutine {
			t.Errorf("event %d category = %q", i, e.Category)
		}
		if e.Color != models.RoutineColor {
			t.Errorf("event %d color = %q", i, e.Color)
		}
		if e.UserID != userID {
			t.Errorf("event %d owner mismatch", i)
		}
	}
}

func TestPlanCountInvariant(t *testing.T) {
	now := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		days       []string
		activities int
	}{
		{[]string{"lundi"}, 1},
		{[]string{"lundi", "mardi", "dimanche"}, 2},
		{[]string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}, 3},
	}
	for _, c := range cases {
		routine := &models.Routine{Title: "R", Recurrence: c.days}
		for i := 0; i < c.activities; i++ {
			routine.Activities = append(routine.Activities, models.Activity{
				Label: "A", Start: "10:00", DurationMinutes: 30,
			})
		}
		result, err := Plan(routine, uuid.New(), now)
		if err != nil {
			t.Fatal(err)
		}
		want := len(c.days) * c.activities
		if result.Count != want || len(result.Events) != want {
			t.Errorf("%d days x %d activities: count = %d, want %d",
				len(c.days), c.activities, result.Count, want)
		}
	}
}

func TestPlanDurationInvariant(t *testing.T) {
	now := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	routine := &models.Routine{
		Title: "Stretch",
		Activities: []models.Activity{
			{Label: "Neck", Start: "18:00", DurationMinutes: 7},
			{Label: "Back", Start: "18:10", DurationMinutes: 23},
		},
		Recurrence: []string{"jeudi"},
	}
	result, err := Plan(routine, uuid.New(), now)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range result.Events {
		want := time.Duration(routine.Activities[i].DurationMinutes) * time.Minute
		if e.Duration() != want {
			t.Errorf("event %d duration = %v, want %v", i, e.Duration(), want)
		}
	}
}

func TestPlanValidation(t *testing.T) {
	now := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		routine *models.Routine
	}{
		{"empty title", &models.Routine{
			Activities: []models.Activity{{Label: "A", Start: "10:00", DurationMinutes: 10}},
			Recurrence: []string{"lundi"},
		}},
		{"no activities", &models.Routine{Title: "R", Recurrence: []string{"lundi"}}},
		{"no recurrence", &models.Routine{
			Title:      "R",
			Activities: []models.Activity{{Label: "A", Start: "10:00", DurationMinutes: 10}},
		}},
		{"zero duration", &models.Routine{
			Title:      "R",
			Activities: []models.Activity{{Label: "A", Start: "10:00"}},
			Recurrence: []string{"lundi"},
		}},
		{"bad weekday", &models.Routine{
			Title:      "R",
			Activities: []models.Activity{{Label: "A", Start: "10:00", DurationMinutes: 10}},
			Recurrence: []string{"someday"},
		}},
		{"bad start time", &models.Routine{
			Title:      "R",
			Activities: []models.Activity{{Label: "A", Start: "10h", DurationMinutes: 10}},
			Recurrence: []string{"lundi"},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Plan(c.routine, uuid.New(), now)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSteps(t *testing.T) {
	steps := Steps(morningFlow())
	want := []string{"07:00 Meditation", "07:20 Journaling"}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps", len(steps))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, steps[i], want[i])
		}
	}
}

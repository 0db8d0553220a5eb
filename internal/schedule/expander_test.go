package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/models"
)

func mondayRule() *models.RecurringRule {
	return &models.RecurringRule{
		RuleID:          uuid.New(),
		UserID:          uuid.New(),
		Title:           "Réunion d'équipe",
		StartTime:       "08:00",
		DurationMinutes: 60,
		Days:            [7]bool{true, false, false, false, false, false, false},
		Category:        models.CategoryPro,
		Color:           "#1e3a8a",
		Active:          true,
	}
}

func TestDueTodayFiresOnSelectedDay(t *testing.T) {
	rule := mondayRule()
	monday := time.Date(2025, time.March, 10, 6, 45, 0, 0, time.UTC)

	event, due, err := DueToday(rule, monday)
	if err != nil {
		t.Fatal(err)
	}
	if !due {
		t.Fatal("expected the rule to fire on Monday")
	}

	wantStart := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	if !event.Start.Equal(wantStart) || !event.End.Equal(wantEnd) {
		t.Errorf("got [%v, %v), want [%v, %v)", event.Start, event.End, wantStart, wantEnd)
	}
	if event.Title != "🧠 Réunion d'équipe" {
		t.Errorf("title = %q", event.Title)
	}
	if event.Category != models.CategoryPro || event.Color != "#1e3a8a" {
		t.Errorf("category/color not copied: %q %q", event.Category, event.Color)
	}
	if event.RuleID == nil || *event.RuleID != rule.RuleID {
		t.Error("event not stamped with rule_id")
	}
	if event.RuleDate == nil || !event.RuleDate.Equal(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("rule_date = %v", event.RuleDate)
	}
}

func TestDueTodayDoesNotFireOnOtherDays(t *testing.T) {
	rule := mondayRule()
	// Tuesday 2025-03-11 through Sunday 2025-03-16.
	for offset := 1; offset <= 6; offset++ {
		day := time.Date(2025, time.March, 10+offset, 12, 0, 0, 0, time.UTC)
		_, due, err := DueToday(rule, day)
		if err != nil {
			t.Fatal(err)
		}
		if due {
			t.Errorf("rule fired on %v", day.Weekday())
		}
	}
}

func TestDueTodayNonFireForEveryAdjustedIndex(t *testing.T) {
	// A rule with no selected days never fires, whichever of the seven
	// adjusted indices the evaluation day maps to.
	rule := mondayRule()
	rule.Days = [7]bool{}
	for offset := 0; offset < 7; offset++ {
		day := time.Date(2025, time.March, 10+offset, 12, 0, 0, 0, time.UTC)
		if _, due, _ := DueToday(rule, day); due {
			t.Errorf("empty rule fired on %v", day.Weekday())
		}
	}
}

func TestDueTodaySundayUsesLastIndex(t *testing.T) {
	rule := mondayRule()
	rule.Days = [7]bool{false, false, false, false, false, false, true}
	sunday := time.Date(2025, time.March, 16, 12, 0, 0, 0, time.UTC)

	_, due, err := DueToday(rule, sunday)
	if err != nil {
		t.Fatal(err)
	}
	if !due {
		t.Error("Sunday rule (index 6) did not fire on a Sunday")
	}
}

func TestDueTodayRejectsBadStartTime(t *testing.T) {
	rule := mondayRule()
	rule.StartTime = "8h00"
	monday := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	if _, _, err := DueToday(rule, monday); err == nil {
		t.Error("expected error for malformed start time")
	}
}

func TestExpandAllDueToday(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 7, 0, 0, 0, time.UTC)

	firing := mondayRule()
	inactive := mondayRule()
	inactive.Active = false
	offDay := mondayRule()
	offDay.Days = [7]bool{false, true, false, false, false, false, false}

	events, err := ExpandAllDueToday([]*models.RecurringRule{firing, inactive, offDay}, monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 due event, got %d", len(events))
	}
	if *events[0].RuleID != firing.RuleID {
		t.Error("wrong rule expanded")
	}
}

func TestUpcomingOccurrences(t *testing.T) {
	rule := mondayRule()
	rule.Days = [7]bool{true, false, true, false, false, false, false} // Monday, Wednesday

	// Wednesday mid-morning, after the rule's 08:00 slot.
	from := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

	got, err := UpcomingOccurrences(rule, from, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []time.Time{
		time.Date(2025, time.March, 17, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 19, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 24, 8, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUpcomingOccurrencesEmptyBitmap(t *testing.T) {
	rule := mondayRule()
	rule.Days = [7]bool{}
	got, err := UpcomingOccurrences(rule, time.Now(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected no occurrences, got %v", got)
	}
}

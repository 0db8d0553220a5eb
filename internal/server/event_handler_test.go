package server

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/models"
)

func TestBuildCalendarSerializesEvents(t *testing.T) {
	eventID := uuid.New()
	events := []*models.Event{
		{
			EventID:   eventID,
			Title:     "Deep Work",
			Start:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			End:       time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC),
			Location:  "Bureau",
			CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			EventID: uuid.New(),
			Title:   "☕ Pause",
			Start:   time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC),
			End:     time.Date(2025, 3, 10, 10, 40, 0, 0, time.UTC),
		},
	}

	feed := buildCalendar(events).Serialize()

	want := []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"UID:" + eventID.String(),
		"SUMMARY:Deep Work",
		"DTSTART:20250310T090000Z",
		"DTEND:20250310T103000Z",
		"LOCATION:Bureau",
		"SUMMARY:☕ Pause",
		"END:VCALENDAR",
	}
	for _, line := range want {
		if !strings.Contains(feed, line) {
			t.Errorf("feed is missing %q\n%s", line, feed)
		}
	}

	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("feed has %d VEVENT blocks, want 2", got)
	}
}

func TestBuildCalendarEmpty(t *testing.T) {
	feed := buildCalendar(nil).Serialize()
	if strings.Contains(feed, "BEGIN:VEVENT") {
		t.Errorf("empty calendar should carry no VEVENT:\n%s", feed)
	}
	if !strings.Contains(feed, "END:VCALENDAR") {
		t.Errorf("feed is not a calendar:\n%s", feed)
	}
}

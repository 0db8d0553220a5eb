package schedule

import (
	"testing"
	"time"
)

func TestToMondayFirst(t *testing.T) {
	cases := []struct {
		native time.Weekday
		want   int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Wednesday, 2},
		{time.Thursday, 3},
		{time.Friday, 4},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}
	for _, c := range cases {
		if got := ToMondayFirst(c.native); got != c.want {
			t.Errorf("ToMondayFirst(%v) = %d, want %d", c.native, got, c.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	names := map[string]time.Weekday{
		"lundi":    time.Monday,
		"mardi":    time.Tuesday,
		"mercredi": time.Wednesday,
		"jeudi":    time.Thursday,
		"vendredi": time.Friday,
		"samedi":   time.Saturday,
		"dimanche": time.Sunday,
	}
	for name, want := range names {
		got, err := ParseWeekday(name)
		if err != nil {
			t.Fatalf("ParseWeekday(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", name, got, want)
		}
	}

	if got, err := ParseWeekday("  Lundi "); err != nil || got != time.Monday {
		t.Errorf("ParseWeekday with case/space = %v, %v", got, err)
	}

	if _, err := ParseWeekday("monday"); err == nil {
		t.Error("expected error for untranslated weekday name")
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:05")
	if err != nil || h != 7 || m != 5 {
		t.Fatalf("ParseClock(07:05) = %d, %d, %v", h, m, err)
	}

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:cd", "12:5x"} {
		if _, _, err := ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q): expected error", bad)
		}
	}
}

func TestNextOccurrence(t *testing.T) {
	// Wednesday afternoon.
	now := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

	t.Run("upcoming weekday", func(t *testing.T) {
		got, err := NextOccurrence("vendredi", "07:30", now)
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2025, time.March, 14, 7, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("same day keeps today even when the time has passed", func(t *testing.T) {
		got, err := NextOccurrence("mercredi", "09:00", now)
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v (must not advance a week)", got, want)
		}
		if !got.Before(now) {
			t.Error("expected a past timestamp for an elapsed same-day slot")
		}
	})

	t.Run("week rollover", func(t *testing.T) {
		// Saturday asking for next mardi crosses into the following week.
		saturday := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
		got, err := NextOccurrence("mardi", "18:00", saturday)
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2025, time.March, 18, 18, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("lands on the requested weekday for every name", func(t *testing.T) {
		for name, want := range weekdayIndex {
			got, err := NextOccurrence(name, "12:00", now)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if got.Weekday() != want {
				t.Errorf("%s: landed on %v, want %v", name, got.Weekday(), want)
			}
			if got.Second() != 0 || got.Nanosecond() != 0 {
				t.Errorf("%s: seconds not zeroed: %v", name, got)
			}
			days := int(got.Sub(time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)).Hours() / 24)
			if days < 0 || days > 6 {
				t.Errorf("%s: offset %d days outside [0,6]", name, days)
			}
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		if _, err := NextOccurrence("florsday", "12:00", now); err == nil {
			t.Error("expected error for unknown weekday")
		}
		if _, err := NextOccurrence("lundi", "noon", now); err == nil {
			t.Error("expected error for bad clock")
		}
	})
}

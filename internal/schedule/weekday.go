package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// weekdayIndex maps French weekday names to time.Weekday values. The names
// are the canonical recurrence vocabulary across the system, including the
// assistant's JSON contract.
var weekdayIndex = map[string]time.Weekday{
	"lundi":    time.Monday,
	"mardi":    time.Tuesday,
	"mercredi": time.Wednesday,
	"jeudi":    time.Thursday,
	"vendredi": time.Friday,
	"samedi":   time.Saturday,
	"dimanche": time.Sunday,
}

// ParseWeekday resolves a French weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	w, ok := weekdayIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return w, nil
}

// ToMondayFirst converts a native Sunday-first time.Weekday into the
// Monday-first index used by stored rule day arrays (Monday=0 .. Sunday=6).
// This is the only place the two conventions meet; raw time.Weekday values
// must never index a rule's Days array directly.
func ToMondayFirst(w time.Weekday) int {
	if w == time.Sunday {
		return 6
	}
	return int(w) - 1
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(clock string) (hour, minute int, err error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", clock)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hour, minute, nil
}

// NextOccurrence returns the next date on or after now that falls on the
// named weekday, at the given "HH:MM" time, in now's location. An offset of
// zero keeps today: if the clock time has already passed, the result lies in
// the past. Callers that want strict future semantics must check themselves.
func NextOccurrence(weekday, clock string, now time.Time) (time.Time, error) {
	target, err := ParseWeekday(weekday)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	offset := (int(target) + 7 - int(now.Weekday())) % 7
	day := now.AddDate(0, 0, offset)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()), nil
}

// AtClock returns the given day's date at the "HH:MM" time, seconds zeroed.
func AtClock(day time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

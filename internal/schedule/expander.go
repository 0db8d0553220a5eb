package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/flowdeck/flowdeck-server/internal/models"
)

// DueToday decides whether a recurring rule fires on the given day and, if
// so, builds the concrete event. The rule's Days array is Monday-first;
// today's native weekday is converted exactly once via ToMondayFirst.
func DueToday(rule *models.RecurringRule, today time.Time) (*models.Event, bool, error) {
	if !rule.Days[ToMondayFirst(today.Weekday())] {
		return nil, false, nil
	}

	start, err := AtClock(today, rule.StartTime)
	if err != nil {
		return nil, false, fmt.Errorf("rule %s: %w", rule.RuleID, err)
	}
	end := start.Add(time.Duration(rule.DurationMinutes) * time.Minute)

	title := rule.Title
	if emoji := models.CategoryEmoji(rule.Category); emoji != "" {
		title = emoji + " " + title
	}

	ruleID := rule.RuleID
	ruleDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	return &models.Event{
		UserID:   rule.UserID,
		Title:    title,
		Start:    start,
		End:      end,
		Category: rule.Category,
		Color:    rule.Color,
		RuleID:   &ruleID,
		RuleDate: &ruleDate,
	}, true, nil
}

// ExpandAllDueToday evaluates every active rule against today and returns
// the events that are due. Each event carries its (rule_id, rule_date)
// idempotency key, so inserting the result twice on the same day is a no-op
// at the store.
func ExpandAllDueToday(rules []*models.RecurringRule, today time.Time) ([]*models.Event, error) {
	var events []*models.Event
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		event, due, err := DueToday(rule, today)
		if err != nil {
			return nil, err
		}
		if due {
			events = append(events, event)
		}
	}
	return events, nil
}

// Monday-first rule index to RFC 5545 weekday.
var rruleWeekdays = [7]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// UpcomingOccurrences previews the next n concrete start times of a rule
// strictly after from, by projecting its day bitmap onto a WEEKLY RRULE.
func UpcomingOccurrences(rule *models.RecurringRule, from time.Time, n int) ([]time.Time, error) {
	hour, minute, err := ParseClock(rule.StartTime)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", rule.RuleID, err)
	}

	var byWeekday []rrule.Weekday
	for i, selected := range rule.Days {
		if selected {
			byWeekday = append(byWeekday, rruleWeekdays[i])
		}
	}
	if len(byWeekday) == 0 {
		return nil, nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: byWeekday,
		Byhour:    []int{hour},
		Byminute:  []int{minute},
		Bysecond:  []int{0},
		Dtstart:   from,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build rrule: %w", err)
	}

	iterator := r.Iterator()
	var results []time.Time
	for len(results) < n {
		next, ok := iterator()
		if !ok {
			break
		}
		if next.After(from) {
			results = append(results, next)
		}
	}
	return results, nil
}

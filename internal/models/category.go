package models

// Event categories. "routine" is reserved for events produced by routine
// planning; the other four are user-selectable.
const (
	CategoryPro     = "pro"
	CategoryPerso   = "perso"
	CategoryPause   = "pause"
	CategoryHybride = "hybride"
	CategoryRoutine = "routine"
)

// RoutineColor is the display color stamped on every planned routine event.
const RoutineColor = "#7C3AED"

// PauseColor is the display color for chained pause events.
const PauseColor = "#9CA3AF"

var categoryEmojis = map[string]string{
	CategoryPro:     "🧠",
	CategoryPerso:   "👨‍👩‍👧",
	CategoryPause:   "☕",
	CategoryHybride: "🔀",
}

var eventColors = map[string]string{
	CategoryPro:     "#7C3AED",
	CategoryPerso:   "#10B981",
	CategoryPause:   "#9CA3AF",
	CategoryHybride: "#8B5CF6",
}

// Recurring rules carry a darker palette than one-off events.
var ruleColors = map[string]string{
	CategoryPro:     "#1e3a8a",
	CategoryPerso:   "#10b981",
	CategoryHybride: "#8b5cf6",
}

// CategoryEmoji returns the glyph prefixed to event titles for the given
// category. Unknown categories get no glyph.
func CategoryEmoji(category string) string {
	return categoryEmojis[category]
}

// EventColor returns the display color for a quick event of the given
// category, falling back to the hybride color.
func EventColor(category string) string {
	if c, ok := eventColors[category]; ok {
		return c
	}
	return eventColors[CategoryHybride]
}

// RuleColor returns the display color stored on a recurring rule at creation
// time, falling back to the hybride color.
func RuleColor(category string) string {
	if c, ok := ruleColors[category]; ok {
		return c
	}
	return ruleColors[CategoryHybride]
}

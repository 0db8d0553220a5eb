package models

import "testing"

func TestEventColorFallsBackToHybride(t *testing.T) {
	if got := EventColor("unknown"); got != eventColors[CategoryHybride] {
		t.Errorf("EventColor(unknown) = %q", got)
	}
	if got := EventColor(CategoryPro); got != "#7C3AED" {
		t.Errorf("EventColor(pro) = %q", got)
	}
}

func TestRuleColorFallsBackToHybride(t *testing.T) {
	if got := RuleColor(CategoryPause); got != ruleColors[CategoryHybride] {
		t.Errorf("RuleColor(pause) = %q", got)
	}
}

func TestCategoryEmoji(t *testing.T) {
	for _, cat := range []string{CategoryPro, CategoryPerso, CategoryPause, CategoryHybride} {
		if CategoryEmoji(cat) == "" {
			t.Errorf("no emoji for %q", cat)
		}
	}
	if CategoryEmoji(CategoryRoutine) != "" {
		t.Error("routine category must not get a glyph")
	}
}

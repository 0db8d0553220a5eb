package models

import "testing"

func TestNormalizePriority(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"haute", PriorityHigh},
		{"moyenne", PriorityMedium},
		{"basse", PriorityLow},
		{"", PriorityMedium},
		{"urgent", PriorityMedium},
		{"HAUTE", PriorityMedium},
	}
	for _, c := range cases {
		if got := NormalizePriority(c.in); got != c.want {
			t.Errorf("NormalizePriority(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

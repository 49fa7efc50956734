package team

import (
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

// ParseSort maps a query value onto a sort field; empty means name.
func ParseSort(value string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortByName:
		return SortByName, nil
	case SortByShortCode:
		return SortByShortCode, nil
	default:
		return "", rule.Structural("sort", "Sort must be 'name' or 'shortcode'")
	}
}

// Apply returns the matching teams in filter order. items is not modified.
func (f Filter) Apply(items []Team) []Team {
	out := make([]Team, 0, len(items))
	for _, t := range items {
		if f.Matches(t) {
			out = append(out, t)
		}
	}

	key := func(t Team) string { return strings.ToLower(t.Name) }
	if f.Sort == SortByShortCode {
		key = func(t Team) string { return strings.ToLower(t.ShortCode) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		if a == b {
			return out[i].ID < out[j].ID
		}
		if f.Descending {
			return a > b
		}
		return a < b
	})
	return out
}

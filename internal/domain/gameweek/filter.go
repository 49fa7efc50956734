package gameweek

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

type SortField string

const (
	SortByNumber    SortField = "number"
	SortByStartDate SortField = "start_date"
)

// Filter narrows a round listing. Status is compared against the derived status.
type Filter struct {
	Status     Status
	Sort       SortField
	Descending bool
}

func ParseSort(value string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortByNumber:
		return SortByNumber, nil
	case SortByStartDate:
		return SortByStartDate, nil
	default:
		return "", rule.Structural("sort", "Sort must be 'number' or 'start_date'")
	}
}

// Apply filters and orders items as of now. The input slice is not modified.
func (f Filter) Apply(items []Gameweek, now time.Time) []Gameweek {
	out := make([]Gameweek, 0, len(items))
	for _, g := range items {
		if f.Status != "" && DeriveStatus(g, now) != f.Status {
			continue
		}
		out = append(out, g)
	}

	less := func(a, b Gameweek) bool { return a.Number < b.Number }
	if f.Sort == SortByStartDate {
		less = func(a, b Gameweek) bool {
			if a.StartDate.Equal(b.StartDate) {
				return a.Number < b.Number
			}
			return a.StartDate.Before(b.StartDate)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

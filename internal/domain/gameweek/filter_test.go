package gameweek

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Apply(t *testing.T) {
	items := []Gameweek{
		{ID: 3, Number: 3, StartDate: day(2026, 2, 1), EndDate: day(2026, 2, 3)},
		{ID: 1, Number: 1, StartDate: day(2026, 1, 1), EndDate: day(2026, 1, 3)},
		{ID: 2, Number: 2, StartDate: day(2026, 1, 15), EndDate: day(2026, 1, 17)},
	}
	now := day(2026, 1, 16)

	numbers := func(gs []Gameweek) []int {
		out := make([]int, 0, len(gs))
		for _, g := range gs {
			out = append(out, g.Number)
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 3}, numbers(Filter{}.Apply(items, now)))
	assert.Equal(t, []int{3, 2, 1}, numbers(Filter{Sort: SortByStartDate, Descending: true}.Apply(items, now)))
	assert.Equal(t, []int{2}, numbers(Filter{Status: StatusCurrent}.Apply(items, now)))
	assert.Equal(t, []int{1}, numbers(Filter{Status: StatusCompleted}.Apply(items, now)))
	assert.Equal(t, 3, items[0].Number, "input order untouched")
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("START_DATE")
	require.NoError(t, err)
	assert.Equal(t, SortByStartDate, got)

	_, err = ParseSort("end_date")
	assert.EqualError(t, err, "Sort must be 'number' or 'start_date'")
}

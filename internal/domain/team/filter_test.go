package team

import (
	"testing"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTeams() []Team {
	return []Team{
		{ID: 1, Name: "Wisla Krakow", ShortCode: "WIS", IsActive: false},
		{ID: 2, Name: "Legia Warszawa", ShortCode: "LEG", IsActive: true},
		{ID: 3, Name: "lech Poznan", ShortCode: "LPO", IsActive: true},
	}
}

func ids(items []Team) []int64 {
	out := make([]int64, 0, len(items))
	for _, t := range items {
		out = append(out, t.ID)
	}
	return out
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortByName, got)

	got, err = ParseSort("ShortCode")
	require.NoError(t, err)
	assert.Equal(t, SortByShortCode, got)

	_, err = ParseSort("crest")
	rej, ok := rule.As(err)
	require.True(t, ok)
	assert.Equal(t, rule.KindStructural, rej.Kind)
}

func TestFilterApply_SortsCaseInsensitively(t *testing.T) {
	items := sampleTeams()

	assert.Equal(t, []int64{3, 2, 1}, ids(Filter{Sort: SortByName}.Apply(items)))
	assert.Equal(t, []int64{1, 2, 3}, ids(Filter{Sort: SortByName, Descending: true}.Apply(items)))
	assert.Equal(t, []int64{2, 3, 1}, ids(Filter{Sort: SortByShortCode}.Apply(items)))
	assert.Equal(t, int64(1), items[0].ID, "input must not be reordered")
}

func TestFilterApply_Narrows(t *testing.T) {
	active := true
	assert.Equal(t, []int64{3, 2}, ids(Filter{IsActive: &active}.Apply(sampleTeams())))
	assert.Equal(t, []int64{2}, ids(Filter{ShortCode: "leg"}.Apply(sampleTeams())))
}

package fixture

import (
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/paging"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

// ParseSort maps a query value onto a sort field; empty means match date.
func ParseSort(value string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortByMatchDate:
		return SortByMatchDate, nil
	case SortByGameweekNumber:
		return SortByGameweekNumber, nil
	default:
		return "", rule.Structural("sort", "Sort must be 'match_date' or 'gameweek_number'")
	}
}

// ValidateFilter checks paging bounds and the date range of a listing.
func ValidateFilter(f Filter) error {
	if f.Page < 1 {
		return rule.Structural("page", "Page must be greater than or equal to 1")
	}
	if f.Limit < 1 || f.Limit > paging.MaxLimit {
		return rule.Structural("limit", "Limit must be between 1 and 100")
	}
	if f.Sort != "" && f.Sort != SortByMatchDate && f.Sort != SortByGameweekNumber {
		return rule.Structural("sort", "Sort must be 'match_date' or 'gameweek_number'")
	}
	if f.Status != "" && !f.Status.Valid() {
		return invalidStatus(f.Status)
	}
	if f.GameweekID < 0 {
		return rule.Structural("gameweekId", "GameweekId must be greater than zero")
	}
	if f.TeamID < 0 {
		return rule.Structural("teamId", "TeamId must be greater than zero")
	}
	if f.DateFrom != nil && f.DateTo != nil && gameweek.DateOnly(*f.DateFrom).After(gameweek.DateOnly(*f.DateTo)) {
		return rule.Structural("dateFrom", "DateFrom cannot be greater than DateTo")
	}
	return nil
}

// Matches applies every filter predicate except paging and sorting.
func (f Filter) Matches(m Match) bool {
	if f.GameweekID > 0 && m.GameweekID != f.GameweekID {
		return false
	}
	if f.TeamID > 0 && m.HomeTeamID != f.TeamID && m.AwayTeamID != f.TeamID {
		return false
	}
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	day := gameweek.DateOnly(m.MatchDate)
	if f.DateFrom != nil && day.Before(gameweek.DateOnly(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && day.After(gameweek.DateOnly(*f.DateTo)) {
		return false
	}
	return true
}

func (f Filter) PageRequest() paging.Request {
	return paging.Request{Page: f.Page, Limit: f.Limit}
}

package playerstats

import (
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/paging"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

const defaultListLimit = 50

// ParseSort maps a query value onto a sort field; empty means fantasy points.
func ParseSort(value string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortByFantasyPoints:
		return SortByFantasyPoints, nil
	case SortByPrice:
		return SortByPrice, nil
	case SortByMinutesPlayed:
		return SortByMinutesPlayed, nil
	case SortByGoals:
		return SortByGoals, nil
	case SortByAssists:
		return SortByAssists, nil
	default:
		return "", rule.Structural("sort", "Sort must be one of: fantasy_points, price, minutes_played, goals, assists")
	}
}

// NormalizeFilter clamps paging into range and rejects negative ids.
func NormalizeFilter(f Filter) (Filter, error) {
	if f.MatchID < 0 {
		return Filter{}, rule.Structural("matchId", "MatchId must be greater than 0")
	}
	if f.PlayerID < 0 {
		return Filter{}, rule.Structural("playerId", "PlayerId must be greater than 0")
	}
	if f.Sort == "" {
		f.Sort = SortByFantasyPoints
	}
	if f.Limit > paging.MaxLimit {
		f.Limit = paging.MaxLimit
	}
	if f.Limit < 1 {
		f.Limit = defaultListLimit
	}
	if f.Page < 1 {
		f.Page = 1
	}
	return f, nil
}

func (f Filter) PageRequest() paging.Request {
	return paging.Request{Page: f.Page, Limit: f.Limit}
}

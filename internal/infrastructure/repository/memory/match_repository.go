package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/paging"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

type MatchRepository struct {
	mu        sync.RWMutex
	nextID    int64
	items     map[int64]fixture.Match
	gameweeks gameweek.Repository
}

// NewMatchRepository needs the gameweek store to order matches by round number.
func NewMatchRepository(gameweeks gameweek.Repository, items []fixture.Match) *MatchRepository {
	r := &MatchRepository{items: make(map[int64]fixture.Match, len(items)), gameweeks: gameweeks}
	for _, item := range items {
		r.items[item.ID] = item
		r.nextID = max(r.nextID, item.ID)
	}
	return r
}

func (r *MatchRepository) List(ctx context.Context, filter fixture.Filter) ([]fixture.Match, int, error) {
	numbers := map[int64]int{}
	if filter.Sort == fixture.SortByGameweekNumber {
		gws, err := r.gameweeks.List(ctx)
		if err != nil {
			return nil, 0, err
		}
		for _, gw := range gws {
			numbers[gw.ID] = gw.Number
		}
	}

	r.mu.RLock()
	matched := make([]fixture.Match, 0, len(r.items))
	for _, item := range r.items {
		if filter.Matches(item) {
			matched = append(matched, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if filter.Sort == fixture.SortByGameweekNumber {
			if na, nb := numbers[a.GameweekID], numbers[b.GameweekID]; na != nb {
				if filter.Descending {
					return na > nb
				}
				return na < nb
			}
			return earlier(a, b)
		}
		if filter.Descending {
			return earlier(b, a)
		}
		return earlier(a, b)
	})

	return paging.Slice(matched, filter.PageRequest()), len(matched), nil
}

func (r *MatchRepository) ListByGameweek(_ context.Context, gameweekID int64) ([]fixture.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Match, 0)
	for _, item := range r.items {
		if item.GameweekID == gameweekID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return earlier(out[i], out[j]) })
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (fixture.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *MatchRepository) ExistsBetween(_ context.Context, homeTeamID, awayTeamID, gameweekID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.pairingTaken(homeTeamID, awayTeamID, gameweekID, 0), nil
}

func (r *MatchRepository) CountByGameweek(_ context.Context, gameweekID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.GameweekID == gameweekID {
			count++
		}
	}
	return count, nil
}

func (r *MatchRepository) Create(_ context.Context, item fixture.Match) (fixture.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pairingTaken(item.HomeTeamID, item.AwayTeamID, item.GameweekID, 0) {
		return fixture.Match{}, duplicatePairing(item)
	}

	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = item
	return item, nil
}

func (r *MatchRepository) Update(_ context.Context, item fixture.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return rule.NotFound("id", "Match with ID %d not found", item.ID)
	}
	if r.pairingTaken(item.HomeTeamID, item.AwayTeamID, item.GameweekID, item.ID) {
		return duplicatePairing(item)
	}

	r.items[item.ID] = item
	return nil
}

// pairingTaken must be called with the lock held. The pairing is ordered:
// A at home to B differs from B at home to A.
func (r *MatchRepository) pairingTaken(home, away, gameweekID, excludingID int64) bool {
	for id, item := range r.items {
		if id == excludingID {
			continue
		}
		if item.GameweekID == gameweekID && item.HomeTeamID == home && item.AwayTeamID == away {
			return true
		}
	}
	return false
}

func earlier(a, b fixture.Match) bool {
	if !a.MatchDate.Equal(b.MatchDate) {
		return a.MatchDate.Before(b.MatchDate)
	}
	return a.ID < b.ID
}

func duplicatePairing(item fixture.Match) error {
	return rule.Conflict("homeTeamId",
		"A match between teams %d and %d already exists in gameweek %d",
		item.HomeTeamID, item.AwayTeamID, item.GameweekID)
}

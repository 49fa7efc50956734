package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/paging"
	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[playerstats.Key]playerstats.Record
	now    func() time.Time
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{items: make(map[playerstats.Key]playerstats.Record), now: time.Now}
}

// UpsertBatch replaces records that share a (player, match) key and keeps
// their original id and creation time.
func (r *PlayerStatsRepository) UpsertBatch(_ context.Context, records []playerstats.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	for _, item := range records {
		key := item.Key()
		if existing, ok := r.items[key]; ok {
			item.ID = existing.ID
			item.CreatedAt = existing.CreatedAt
		} else {
			r.nextID++
			item.ID = r.nextID
			item.CreatedAt = now
		}
		if item.HealthStatus == "" {
			item.HealthStatus = playerstats.DefaultHealthStatus
		}
		item.UpdatedAt = now
		r.items[key] = item
	}
	return nil
}

func (r *PlayerStatsRepository) List(_ context.Context, filter playerstats.Filter) ([]playerstats.Record, int, error) {
	r.mu.RLock()
	matched := make([]playerstats.Record, 0, len(r.items))
	for _, item := range r.items {
		if filter.MatchID > 0 && (item.MatchID == nil || *item.MatchID != filter.MatchID) {
			continue
		}
		if filter.PlayerID > 0 && item.PlayerID != filter.PlayerID {
			continue
		}
		matched = append(matched, item)
	}
	r.mu.RUnlock()

	value := sortValue(filter.Sort)
	sort.Slice(matched, func(i, j int) bool {
		a, b := value(matched[i]), value(matched[j])
		if a == b {
			return matched[i].ID < matched[j].ID
		}
		if filter.Descending {
			return a > b
		}
		return a < b
	})

	return paging.Slice(matched, filter.PageRequest()), len(matched), nil
}

func sortValue(field playerstats.SortField) func(playerstats.Record) float64 {
	switch field {
	case playerstats.SortByPrice:
		return func(r playerstats.Record) float64 { return r.Price }
	case playerstats.SortByMinutesPlayed:
		return func(r playerstats.Record) float64 { return float64(r.MinutesPlayed) }
	case playerstats.SortByGoals:
		return func(r playerstats.Record) float64 { return float64(r.Goals) }
	case playerstats.SortByAssists:
		return func(r playerstats.Record) float64 { return float64(r.Assists) }
	default:
		return func(r playerstats.Record) float64 { return float64(r.FantasyPoints) }
	}
}

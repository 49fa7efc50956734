package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

type GameweekRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]gameweek.Gameweek
}

func NewGameweekRepository(items []gameweek.Gameweek) *GameweekRepository {
	r := &GameweekRepository{items: make(map[int64]gameweek.Gameweek, len(items))}
	for _, item := range items {
		r.items[item.ID] = item
		r.nextID = max(r.nextID, item.ID)
	}
	return r
}

func (r *GameweekRepository) List(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *GameweekRepository) GetByID(_ context.Context, id int64) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *GameweekRepository) GetByNumber(_ context.Context, number int) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Number == number {
			return item, true, nil
		}
	}
	return gameweek.Gameweek{}, false, nil
}

func (r *GameweekRepository) Create(_ context.Context, item gameweek.Gameweek) (gameweek.Gameweek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.numberTaken(item.Number, 0) {
		return gameweek.Gameweek{}, rule.Conflict("number", "Gameweek with number %d already exists", item.Number)
	}

	r.nextID++
	item.ID = r.nextID
	item.StartDate = gameweek.DateOnly(item.StartDate)
	item.EndDate = gameweek.DateOnly(item.EndDate)
	r.items[item.ID] = item
	return item, nil
}

func (r *GameweekRepository) Update(_ context.Context, item gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return rule.NotFound("id", "Gameweek with ID %d not found", item.ID)
	}
	if r.numberTaken(item.Number, item.ID) {
		return rule.Conflict("number", "Gameweek with number %d already exists", item.Number)
	}

	item.StartDate = gameweek.DateOnly(item.StartDate)
	item.EndDate = gameweek.DateOnly(item.EndDate)
	r.items[item.ID] = item
	return nil
}

func (r *GameweekRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// numberTaken must be called with the lock held.
func (r *GameweekRepository) numberTaken(number int, excludingID int64) bool {
	for id, item := range r.items {
		if id != excludingID && item.Number == number {
			return true
		}
	}
	return false
}

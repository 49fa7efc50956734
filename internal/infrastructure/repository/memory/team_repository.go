package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{items: make(map[int64]team.Team, len(teams))}
	for _, item := range teams {
		r.items[item.ID] = item
		r.nextID = max(r.nextID, item.ID)
	}
	return r
}

func (r *TeamRepository) List(_ context.Context, filter team.Filter) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		all = append(all, item)
	}
	return filter.Apply(all), nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(item); err != nil {
		return team.Team{}, err
	}

	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = item
	return item, nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return rule.NotFound("id", "Team with ID %d not found", item.ID)
	}
	if err := r.checkUnique(item); err != nil {
		return err
	}

	r.items[item.ID] = item
	return nil
}

// checkUnique mirrors the unique indexes of the SQL store: names compare
// case-insensitively, short codes exactly.
func (r *TeamRepository) checkUnique(item team.Team) error {
	for id, existing := range r.items {
		if id == item.ID {
			continue
		}
		if strings.EqualFold(existing.Name, item.Name) {
			return rule.Conflict("name", "A team named '%s' already exists", item.Name)
		}
		if existing.ShortCode == item.ShortCode {
			return rule.Conflict("shortCode", "Short code '%s' already exists", item.ShortCode)
		}
	}
	return nil
}

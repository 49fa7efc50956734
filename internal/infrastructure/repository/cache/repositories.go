package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	basecache "github.com/riskibarqy/fantasy-coach/internal/platform/cache"
)

const (
	gameweekPrefix = "gameweek:"
	teamPrefix     = "team:"
)

// GameweekRepository caches reads of the round calendar. Any write drops
// every gameweek entry since list and number lookups overlap.
type GameweekRepository struct {
	next  gameweek.Repository
	cache *basecache.Store
}

func NewGameweekRepository(next gameweek.Repository, cache *basecache.Store) *GameweekRepository {
	return &GameweekRepository{next: next, cache: cache}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	items, err := basecache.Load(ctx, r.cache, gameweekPrefix+"list", func(ctx context.Context) ([]gameweek.Gameweek, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]gameweek.Gameweek(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]gameweek.Gameweek(nil), items...), nil
}

func (r *GameweekRepository) GetByID(ctx context.Context, id int64) (gameweek.Gameweek, bool, error) {
	return r.lookup(ctx, gameweekPrefix+"id:"+strconv.FormatInt(id, 10), func(ctx context.Context) (gameweek.Gameweek, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *GameweekRepository) GetByNumber(ctx context.Context, number int) (gameweek.Gameweek, bool, error) {
	return r.lookup(ctx, gameweekPrefix+"number:"+strconv.Itoa(number), func(ctx context.Context) (gameweek.Gameweek, bool, error) {
		return r.next.GetByNumber(ctx, number)
	})
}

func (r *GameweekRepository) lookup(ctx context.Context, key string, load func(context.Context) (gameweek.Gameweek, bool, error)) (gameweek.Gameweek, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (found[gameweek.Gameweek], error) {
		item, exists, err := load(ctx)
		return found[gameweek.Gameweek]{value: item, exists: exists}, err
	})
	if err != nil {
		return gameweek.Gameweek{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *GameweekRepository) Create(ctx context.Context, item gameweek.Gameweek) (gameweek.Gameweek, error) {
	defer r.cache.DeletePrefix(ctx, gameweekPrefix)
	return r.next.Create(ctx, item)
}

func (r *GameweekRepository) Update(ctx context.Context, item gameweek.Gameweek) error {
	defer r.cache.DeletePrefix(ctx, gameweekPrefix)
	return r.next.Update(ctx, item)
}

func (r *GameweekRepository) Delete(ctx context.Context, id int64) error {
	defer r.cache.DeletePrefix(ctx, gameweekPrefix)
	return r.next.Delete(ctx, id)
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamListKey(filter), func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	key := teamPrefix + "id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (found[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return found[team.Team]{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.next.Create(ctx, item)
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.next.Update(ctx, item)
}

func teamListKey(filter team.Filter) string {
	active := "any"
	if filter.IsActive != nil {
		active = strconv.FormatBool(*filter.IsActive)
	}
	return strings.Join([]string{
		teamPrefix + "list",
		active,
		strings.ToLower(strings.TrimSpace(filter.ShortCode)),
		string(filter.Sort),
		strconv.FormatBool(filter.Descending),
	}, ":")
}

// found keeps negative lookups cacheable.
type found[T any] struct {
	value  T
	exists bool
}

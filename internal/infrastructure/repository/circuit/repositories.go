// Package circuit guards repositories with a shared store circuit breaker.
// Rule rejections from the store (unique-index conflicts) count as healthy
// answers; only transport and storage failures move the breaker.
package circuit

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

type guard struct {
	breaker *resilience.CircuitBreaker
	store   string
}

// run executes fn through the breaker. An open circuit comes back marked
// usecase.ErrDependencyUnavailable; any other error is fn's own.
func (g guard) run(ctx context.Context, fn func(context.Context) error) error {
	var callErr error
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		callErr = fn(ctx)
		if _, ok := rule.As(callErr); ok {
			return nil
		}
		return callErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return errors.Mark(errors.Wrapf(err, "%s store unavailable", g.store), usecase.ErrDependencyUnavailable)
	}
	return callErr
}

type GameweekRepository struct {
	next gameweek.Repository
	g    guard
}

func NewGameweekRepository(next gameweek.Repository, breaker *resilience.CircuitBreaker) *GameweekRepository {
	return &GameweekRepository{next: next, g: guard{breaker: breaker, store: "gameweek"}}
}

func (r *GameweekRepository) List(ctx context.Context) (items []gameweek.Gameweek, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		items, err = r.next.List(ctx)
		return err
	})
	return items, err
}

func (r *GameweekRepository) GetByID(ctx context.Context, id int64) (item gameweek.Gameweek, exists bool, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		item, exists, err = r.next.GetByID(ctx, id)
		return err
	})
	return item, exists, err
}

func (r *GameweekRepository) GetByNumber(ctx context.Context, number int) (item gameweek.Gameweek, exists bool, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		item, exists, err = r.next.GetByNumber(ctx, number)
		return err
	})
	return item, exists, err
}

func (r *GameweekRepository) Create(ctx context.Context, item gameweek.Gameweek) (created gameweek.Gameweek, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		created, err = r.next.Create(ctx, item)
		return err
	})
	return created, err
}

func (r *GameweekRepository) Update(ctx context.Context, item gameweek.Gameweek) error {
	return r.g.run(ctx, func(ctx context.Context) error { return r.next.Update(ctx, item) })
}

func (r *GameweekRepository) Delete(ctx context.Context, id int64) error {
	return r.g.run(ctx, func(ctx context.Context) error { return r.next.Delete(ctx, id) })
}

type TeamRepository struct {
	next team.Repository
	g    guard
}

func NewTeamRepository(next team.Repository, breaker *resilience.CircuitBreaker) *TeamRepository {
	return &TeamRepository{next: next, g: guard{breaker: breaker, store: "team"}}
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) (items []team.Team, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		items, err = r.next.List(ctx, filter)
		return err
	})
	return items, err
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (item team.Team, exists bool, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		item, exists, err = r.next.GetByID(ctx, id)
		return err
	})
	return item, exists, err
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (created team.Team, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		created, err = r.next.Create(ctx, item)
		return err
	})
	return created, err
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	return r.g.run(ctx, func(ctx context.Context) error { return r.next.Update(ctx, item) })
}

type MatchRepository struct {
	next fixture.Repository
	g    guard
}

func NewMatchRepository(next fixture.Repository, breaker *resilience.CircuitBreaker) *MatchRepository {
	return &MatchRepository{next: next, g: guard{breaker: breaker, store: "match"}}
}

func (r *MatchRepository) List(ctx context.Context, filter fixture.Filter) (items []fixture.Match, total int, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		items, total, err = r.next.List(ctx, filter)
		return err
	})
	return items, total, err
}

func (r *MatchRepository) ListByGameweek(ctx context.Context, gameweekID int64) (items []fixture.Match, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		items, err = r.next.ListByGameweek(ctx, gameweekID)
		return err
	})
	return items, err
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (item fixture.Match, exists bool, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		item, exists, err = r.next.GetByID(ctx, id)
		return err
	})
	return item, exists, err
}

func (r *MatchRepository) ExistsBetween(ctx context.Context, homeTeamID, awayTeamID, gameweekID int64) (exists bool, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		exists, err = r.next.ExistsBetween(ctx, homeTeamID, awayTeamID, gameweekID)
		return err
	})
	return exists, err
}

func (r *MatchRepository) CountByGameweek(ctx context.Context, gameweekID int64) (count int, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		count, err = r.next.CountByGameweek(ctx, gameweekID)
		return err
	})
	return count, err
}

func (r *MatchRepository) Create(ctx context.Context, item fixture.Match) (created fixture.Match, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		created, err = r.next.Create(ctx, item)
		return err
	})
	return created, err
}

func (r *MatchRepository) Update(ctx context.Context, item fixture.Match) error {
	return r.g.run(ctx, func(ctx context.Context) error { return r.next.Update(ctx, item) })
}

type PlayerStatsRepository struct {
	next playerstats.Repository
	g    guard
}

func NewPlayerStatsRepository(next playerstats.Repository, breaker *resilience.CircuitBreaker) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, g: guard{breaker: breaker, store: "player stats"}}
}

func (r *PlayerStatsRepository) UpsertBatch(ctx context.Context, records []playerstats.Record) error {
	return r.g.run(ctx, func(ctx context.Context) error { return r.next.UpsertBatch(ctx, records) })
}

func (r *PlayerStatsRepository) List(ctx context.Context, filter playerstats.Filter) (items []playerstats.Record, total int, err error) {
	err = r.g.run(ctx, func(ctx context.Context) error {
		items, total, err = r.next.List(ctx, filter)
		return err
	})
	return items, total, err
}

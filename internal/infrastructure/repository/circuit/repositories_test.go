package circuit

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	fixturemock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/fixture"
	gameweekmock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/gameweek"
	playerstatsmock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/playerstats"
	teammock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

func TestTeamRepository_OpenCircuitIsDependencyUnavailable(t *testing.T) {
	ctx := context.Background()
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, resilience.NewCircuitBreaker(1, time.Hour, 1))

	next.On("GetByID", ctx, int64(1)).Return(team.Team{}, false, errors.New("connection refused")).Once()

	_, _, err := repo.GetByID(ctx, 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, usecase.ErrDependencyUnavailable), "the failing call reports its own error")

	_, _, err = repo.GetByID(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.True(t, errors.Is(err, resilience.ErrCircuitOpen))
	assert.Contains(t, err.Error(), "team store unavailable")
}

func TestMatchRepository_RejectionsDoNotTrip(t *testing.T) {
	ctx := context.Background()
	next := fixturemock.NewRepository(t)
	breaker := resilience.NewCircuitBreaker(1, time.Hour, 1)
	repo := NewMatchRepository(next, breaker)
	conflict := rule.Conflict("match", "This match already exists in the gameweek")

	next.On("Create", ctx, mock.Anything).Return(fixture.Match{}, conflict).Twice()

	for range 2 {
		_, err := repo.Create(ctx, fixture.Match{GameweekID: 1, HomeTeamID: 1, AwayTeamID: 2})
		assert.True(t, errors.Is(err, usecase.ErrConflict))
	}
	assert.Equal(t, resilience.CircuitStateClosed, breaker.State())
}

func TestMatchRepository_PassesResults(t *testing.T) {
	ctx := context.Background()
	next := fixturemock.NewRepository(t)
	repo := NewMatchRepository(next, resilience.NewCircuitBreaker(1, time.Hour, 1))

	next.On("List", ctx, fixture.Filter{Page: 2}).Return([]fixture.Match{{ID: 7}}, 11, nil).Once()
	next.On("CountByGameweek", ctx, int64(3)).Return(4, nil).Once()

	items, total, err := repo.List(ctx, fixture.Filter{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []fixture.Match{{ID: 7}}, items)
	assert.Equal(t, 11, total)

	count, err := repo.CountByGameweek(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestBreakerIsSharedAcrossStores(t *testing.T) {
	ctx := context.Background()
	breaker := resilience.NewCircuitBreaker(1, time.Hour, 1)
	stats := playerstatsmock.NewRepository(t)
	gameweeks := gameweekmock.NewRepository(t)

	stats.On("UpsertBatch", ctx, mock.Anything).Return(errors.New("disk full")).Once()

	err := NewPlayerStatsRepository(stats, breaker).UpsertBatch(ctx, []playerstats.Record{{PlayerID: 1}})
	require.EqualError(t, err, "disk full")

	_, err = NewGameweekRepository(gameweeks, breaker).List(ctx)
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	gameweeks.AssertNotCalled(t, "List", mock.Anything)
}

func TestNilBreakerPassesThrough(t *testing.T) {
	ctx := context.Background()
	next := teammock.NewRepository(t)
	next.On("Update", ctx, team.Team{ID: 1}).Return(errors.New("boom")).Twice()

	repo := NewTeamRepository(next, nil)
	for range 2 {
		assert.EqualError(t, repo.Update(ctx, team.Team{ID: 1}), "boom")
	}
}

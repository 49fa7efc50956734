package fixture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGameweeks map[int64]gameweek.Gameweek

func (s stubGameweeks) GetByID(_ context.Context, id int64) (gameweek.Gameweek, bool, error) {
	gw, ok := s[id]
	return gw, ok, nil
}

type stubTeams map[int64]team.Team

func (s stubTeams) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	t, ok := s[id]
	return t, ok, nil
}

type pairKey struct{ home, away, gameweek int64 }

type stubMatches struct {
	pairs map[pairKey]bool
	err   error
	calls int
}

func (s *stubMatches) ExistsBetween(_ context.Context, home, away, gw int64) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.pairs[pairKey{home, away, gw}], nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestScheduler() (*Scheduler, *stubMatches) {
	gameweeks := stubGameweeks{
		20: {ID: 20, Number: 20, StartDate: date(2026, 1, 15), EndDate: date(2026, 1, 17)},
		21: {ID: 21, Number: 21, StartDate: date(2026, 1, 22), EndDate: date(2026, 1, 24)},
	}
	teams := stubTeams{
		1: {ID: 1, Name: "Legia Warszawa", ShortCode: "LEG", IsActive: true},
		2: {ID: 2, Name: "Lech Poznan", ShortCode: "LPO", IsActive: true},
		3: {ID: 3, Name: "Wisla Krakow", ShortCode: "WIS", IsActive: false},
		4: {ID: 4, Name: "Rakow", ShortCode: "RCZ", IsActive: true},
	}
	matches := &stubMatches{pairs: map[pairKey]bool{}}
	return NewScheduler(gameweeks, teams, matches), matches
}

func TestScheduler_ValidateCreate_CheckOrder(t *testing.T) {
	s, matches := newTestScheduler()
	matches.pairs[pairKey{1, 2, 20}] = true
	ctx := context.Background()
	inWindow := time.Date(2026, 1, 16, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		cmd     CreateCommand
		kind    rule.Kind
		message string
	}{
		{name: "gameweek id", cmd: CreateCommand{GameweekID: 0, HomeTeamID: 0, AwayTeamID: 0}, kind: rule.KindStructural, message: "GameweekId must be greater than zero"},
		{name: "home id", cmd: CreateCommand{GameweekID: 20, HomeTeamID: -1, AwayTeamID: 0}, kind: rule.KindStructural, message: "HomeTeamId must be greater than zero"},
		{name: "away id", cmd: CreateCommand{GameweekID: 20, HomeTeamID: 1, AwayTeamID: 0}, kind: rule.KindStructural, message: "AwayTeamId must be greater than zero"},
		{name: "unknown status", cmd: CreateCommand{GameweekID: 20, HomeTeamID: 1, AwayTeamID: 2, Status: "Abandoned"}, kind: rule.KindStructural, message: "Status 'Abandoned' is not one of Scheduled, Live, Finished, Postponed, Cancelled"},
		{name: "same team before lookups", cmd: CreateCommand{GameweekID: 99, HomeTeamID: 1, AwayTeamID: 1, MatchDate: inWindow}, kind: rule.KindConflict, message: "Home team and away team cannot be the same"},
		{name: "missing gameweek", cmd: CreateCommand{GameweekID: 99, HomeTeamID: 1, AwayTeamID: 2, MatchDate: inWindow}, kind: rule.KindNotFound, message: "Gameweek with ID 99 not found"},
		{name: "missing home", cmd: CreateCommand{GameweekID: 20, HomeTeamID: 77, AwayTeamID: 88, MatchDate: inWindow}, kind: rule.KindNotFound, message: "Home team with ID 77 not found"},
		{name: "missing away", cmd: CreateCommand{GameweekID: 20, HomeTeamID: 3, AwayTeamID: 88, MatchDate: inWindow}, kind: rule.KindNotFound, message: "Away team with ID 88 not found"},
		{name: "inactive home", cmd: CreateCommand{GameweekID: 20, HomeTeamID: 3, AwayTeamID: 1, MatchDate: inWindow}, kind: rule.KindConflict, message: "Home team 'Wisla Krakow' is not active"},
		{name: "inactive away", cmd: CreateCommand{GameweekID: 20, HomeTeamID: 1, AwayTeamID: 3, MatchDate: inWindow}, kind: rule.KindConflict, message: "Away team 'Wisla Krakow' is not active"},
		{name: "outside window", cmd: CreateCommand{GameweekID: 20, HomeTeamID: 1, AwayTeamID: 2, MatchDate: date(2026, 1, 20)}, kind: rule.KindConflict, message: "Match date must be between 2026-01-15 and 2026-01-17"},
		{name: "duplicate pair", cmd: CreateCommand{GameweekID: 20, HomeTeamID: 1, AwayTeamID: 2, MatchDate: inWindow}, kind: rule.KindConflict, message: "A match between Legia Warszawa and Lech Poznan already exists in gameweek 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateCreate(ctx, tt.cmd)
			require.Error(t, err)
			rejection, ok := rule.As(err)
			require.True(t, ok, "expected rejection, got %v", err)
			assert.Equal(t, tt.kind, rejection.Kind)
			assert.Equal(t, tt.message, rejection.Message)
		})
	}
}

func TestScheduler_ValidateCreate_DirectionMatters(t *testing.T) {
	s, matches := newTestScheduler()
	matches.pairs[pairKey{1, 2, 20}] = true

	got, err := s.ValidateCreate(context.Background(), CreateCommand{
		GameweekID: 20,
		HomeTeamID: 2,
		AwayTeamID: 1,
		MatchDate:  date(2026, 1, 17),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, got.Status)
	assert.Equal(t, int64(2), got.HomeTeamID)
	assert.Equal(t, int64(1), got.AwayTeamID)
}

func TestScheduler_ValidateCreate_WindowBoundariesInclusive(t *testing.T) {
	s, _ := newTestScheduler()
	ctx := context.Background()

	for _, d := range []time.Time{date(2026, 1, 15), time.Date(2026, 1, 17, 23, 30, 0, 0, time.UTC)} {
		_, err := s.ValidateCreate(ctx, CreateCommand{GameweekID: 20, HomeTeamID: 1, AwayTeamID: 2, MatchDate: d})
		require.NoError(t, err, "date %s", d)
	}
}

func TestScheduler_ValidateCreate_PropagatesLookupFailure(t *testing.T) {
	s, matches := newTestScheduler()
	matches.err = errors.New("connection reset")

	_, err := s.ValidateCreate(context.Background(), CreateCommand{GameweekID: 20, HomeTeamID: 1, AwayTeamID: 2, MatchDate: date(2026, 1, 16)})
	require.Error(t, err)
	_, isRejection := rule.As(err)
	assert.False(t, isRejection)
	assert.ErrorContains(t, err, "connection reset")
}

func TestScheduler_ValidateCreate_IsRepeatable(t *testing.T) {
	s, _ := newTestScheduler()
	cmd := CreateCommand{GameweekID: 20, HomeTeamID: 1, AwayTeamID: 2, MatchDate: date(2026, 1, 16)}

	first, err1 := s.ValidateCreate(context.Background(), cmd)
	second, err2 := s.ValidateCreate(context.Background(), cmd)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func existingMatch() Match {
	return Match{
		ID:         10,
		GameweekID: 20,
		HomeTeamID: 1,
		AwayTeamID: 2,
		MatchDate:  date(2026, 1, 16),
		Status:     StatusScheduled,
	}
}

func ptr[T any](v T) *T { return &v }

func TestScheduler_ValidateUpdate_ScoresRequireLiveOrFinished(t *testing.T) {
	s, _ := newTestScheduler()
	ctx := context.Background()

	_, err := s.ValidateUpdate(ctx, UpdateCommand{ID: 10, HomeScore: ptr(2)}, existingMatch())
	require.Error(t, err)
	assert.ErrorIs(t, err, rule.ErrConflict)
	assert.Equal(t, "Scores can only be updated for live or finished matches", err.Error())

	got, err := s.ValidateUpdate(ctx, UpdateCommand{ID: 10, HomeScore: ptr(2), Status: ptr(StatusFinished)}, existingMatch())
	require.NoError(t, err)
	require.NotNil(t, got.HomeScore)
	assert.Equal(t, 2, *got.HomeScore)
	assert.Nil(t, got.AwayScore)
	assert.Equal(t, StatusFinished, got.Status)
}

func TestScheduler_ValidateUpdate_ScoresUseMergedStatus(t *testing.T) {
	s, _ := newTestScheduler()
	live := existingMatch()
	live.Status = StatusLive

	_, err := s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, AwayScore: ptr(1)}, live)
	require.NoError(t, err)

	_, err = s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, AwayScore: ptr(1), Status: ptr(StatusPostponed)}, live)
	assert.ErrorIs(t, err, rule.ErrConflict)
}

func TestScheduler_ValidateUpdate_SameTeamOnMergedResult(t *testing.T) {
	s, _ := newTestScheduler()

	_, err := s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, AwayTeamID: ptr(int64(1))}, existingMatch())
	require.Error(t, err)
	assert.Equal(t, "Home team and away team cannot be the same", err.Error())
}

func TestScheduler_ValidateUpdate_DateAgainstExistingGameweek(t *testing.T) {
	s, _ := newTestScheduler()

	_, err := s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, MatchDate: ptr(date(2026, 1, 23))}, existingMatch())
	require.Error(t, err)
	assert.Equal(t, "Match date must be between 2026-01-15 and 2026-01-17", err.Error())
}

func TestScheduler_ValidateUpdate_GameweekChangeChecksKeptDate(t *testing.T) {
	s, _ := newTestScheduler()

	_, err := s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, GameweekID: ptr(int64(21))}, existingMatch())
	require.Error(t, err)
	assert.Equal(t, "Match date must be between 2026-01-22 and 2026-01-24", err.Error())

	got, err := s.ValidateUpdate(context.Background(), UpdateCommand{
		ID:         10,
		GameweekID: ptr(int64(21)),
		MatchDate:  ptr(date(2026, 1, 23)),
	}, existingMatch())
	require.NoError(t, err)
	assert.Equal(t, int64(21), got.GameweekID)
}

func TestScheduler_ValidateUpdate_ChangedTeamMustBeActive(t *testing.T) {
	s, _ := newTestScheduler()

	_, err := s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, HomeTeamID: ptr(int64(3))}, existingMatch())
	require.Error(t, err)
	assert.Equal(t, "Home team 'Wisla Krakow' is not active", err.Error())

	_, err = s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, AwayTeamID: ptr(int64(55))}, existingMatch())
	assert.ErrorIs(t, err, rule.ErrNotFound)
}

func TestScheduler_ValidateUpdate_ChangedPairMustBeFree(t *testing.T) {
	s, matches := newTestScheduler()
	matches.pairs[pairKey{1, 4, 20}] = true

	_, err := s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, AwayTeamID: ptr(int64(4))}, existingMatch())
	require.Error(t, err)
	assert.Equal(t, "A match between Legia Warszawa and Rakow already exists in gameweek 20", err.Error())

	calls := matches.calls
	_, err = s.ValidateUpdate(context.Background(), UpdateCommand{ID: 10, Status: ptr(StatusPostponed)}, existingMatch())
	require.NoError(t, err)
	assert.Equal(t, calls, matches.calls, "unchanged pair skips the duplicate lookup")
}

func TestScheduler_ValidateUpdate_ShapeRejections(t *testing.T) {
	s, _ := newTestScheduler()
	long := make([]rune, MaxRescheduleReasonLength+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name    string
		cmd     UpdateCommand
		message string
	}{
		{name: "negative home score", cmd: UpdateCommand{ID: 10, HomeScore: ptr(-1), Status: ptr(StatusLive)}, message: "Home score cannot be negative"},
		{name: "negative away score", cmd: UpdateCommand{ID: 10, AwayScore: ptr(-3)}, message: "Away score cannot be negative"},
		{name: "gameweek id", cmd: UpdateCommand{ID: 10, GameweekID: ptr(int64(0))}, message: "GameweekId must be greater than zero"},
		{name: "long reason", cmd: UpdateCommand{ID: 10, RescheduleReason: ptr(string(long))}, message: "Reschedule reason cannot exceed 500 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateUpdate(context.Background(), tt.cmd, existingMatch())
			require.Error(t, err)
			assert.ErrorIs(t, err, rule.ErrStructural)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestMerge_RescheduleReason(t *testing.T) {
	base := existingMatch()
	base.RescheduleReason = ptr("storm")

	kept := Merge(base, UpdateCommand{ID: 10})
	require.NotNil(t, kept.RescheduleReason)
	assert.Equal(t, "storm", *kept.RescheduleReason)

	replaced := Merge(base, UpdateCommand{ID: 10, RescheduleReason: ptr("floodlights")})
	require.NotNil(t, replaced.RescheduleReason)
	assert.Equal(t, "floodlights", *replaced.RescheduleReason)

	assert.Nil(t, Merge(base, UpdateCommand{ID: 10, RescheduleReason: ptr("")}).RescheduleReason)
	assert.Nil(t, Merge(base, UpdateCommand{ID: 10, RescheduleReason: ptr("ignored"), ClearRescheduleReason: true}).RescheduleReason)
	require.NotNil(t, base.RescheduleReason, "merge never mutates the stored match")
}

func TestParseStatus(t *testing.T) {
	got, ok := ParseStatus("finished")
	require.True(t, ok)
	assert.Equal(t, StatusFinished, got)

	_, ok = ParseStatus("")
	assert.False(t, ok)
	assert.False(t, Status("live").Valid())
}

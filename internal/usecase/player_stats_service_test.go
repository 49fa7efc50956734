package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
	idgen "github.com/riskibarqy/fantasy-coach/internal/platform/id"
	playerstatsmock "github.com/riskibarqy/fantasy-coach/internal/mocks/domain/playerstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const statsCSV = "\ufeffPlayer_ID,match_id,fantasy_points,minutes_played,price,goals\n" +
	"10,5,6,90,5.5,1\n" +
	"11,5,150,90,4.0,0\n" +
	"12,,2,45,4.5,-2\n"

func TestPlayerStatsService_ImportCSV_IsolatesBadRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playerstatsmock.NewRepository(t)
	service := NewPlayerStatsService(repo, idgen.Fixed("batch-1"), nil)

	repo.
		On("UpsertBatch", ctxIs(ctx), mock.MatchedBy(func(records []playerstats.Record) bool {
			if len(records) != 2 {
				return false
			}
			first, second := records[0], records[1]
			return first.PlayerID == 10 && *first.MatchID == 5 && first.Goals == 1 &&
				second.PlayerID == 12 && second.MatchID == nil && second.Goals == 0 &&
				second.HealthStatus == playerstats.DefaultHealthStatus
		})).
		Return(nil).
		Once()

	summary, err := service.ImportCSV(ctx, strings.NewReader(statsCSV))
	require.NoError(t, err)
	assert.Equal(t, playerstats.ImportSummary{
		BatchID:       "batch-1",
		Success:       true,
		ImportedCount: 2,
		SkippedCount:  1,
		Errors:        []string{"Row 2: Invalid fantasy_points value (150), must be 0-100"},
	}, summary)
}

func TestPlayerStatsService_ImportCSV_RejectsBadHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty file", input: "", wantMsg: "CSV file has no header row"},
		{name: "unknown column", input: "player_id,fantasy_points,minutes_played,price,form\n1,2,3,4,5\n", wantMsg: "Unknown column in CSV header: form"},
		{name: "missing price", input: "player_id,fantasy_points,minutes_played\n1,2,3\n", wantMsg: "Missing required column in CSV header: price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := playerstatsmock.NewRepository(t)
			_, err := NewPlayerStatsService(repo, idgen.Fixed("b"), nil).ImportCSV(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestPlayerStatsService_ImportBatch_StorageFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playerstatsmock.NewRepository(t)
	service := NewPlayerStatsService(repo, idgen.Fixed("batch-2"), nil)
	repo.On("UpsertBatch", ctxIs(ctx), mock.Anything).Return(errors.New("connection refused")).Once()

	summary := service.ImportBatch(ctx, []playerstats.RawRow{
		{"player_id": "1", "fantasy_points": "4", "minutes_played": "90", "price": "5"},
	})

	assert.False(t, summary.Success)
	assert.Zero(t, summary.ImportedCount)
	assert.Equal(t, []string{"Import failed: connection refused"}, summary.Errors)
}

func TestPlayerStatsService_ImportCSV_UnavailableStoreIsAnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playerstatsmock.NewRepository(t)
	service := NewPlayerStatsService(repo, idgen.Fixed("b"), nil)
	unavailable := errors.Mark(errors.New("player stats store unavailable: circuit breaker is open"), ErrDependencyUnavailable)

	repo.On("UpsertBatch", ctxIs(ctx), mock.Anything).Return(unavailable).Once()

	summary, err := service.ImportCSV(ctx, strings.NewReader("player_id,fantasy_points,minutes_played,price\n1,4,90,5\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependencyUnavailable))
	assert.True(t, errors.Is(err, playerstats.ErrStorage))
	assert.False(t, summary.Success)
	assert.Equal(t, "b", summary.BatchID)
}

func TestPlayerStatsService_ImportCSV_PlainStorageFailureStaysInSummary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playerstatsmock.NewRepository(t)
	repo.On("UpsertBatch", ctxIs(ctx), mock.Anything).Return(errors.New("disk full")).Once()

	summary, err := NewPlayerStatsService(repo, idgen.Fixed("b"), nil).
		ImportCSV(ctx, strings.NewReader("player_id,fantasy_points,minutes_played,price\n1,4,90,5\n"))
	require.NoError(t, err)
	assert.False(t, summary.Success)
	assert.True(t, errors.Is(summary.StoreErr, playerstats.ErrStorage))
	assert.Equal(t, []string{"Import failed: disk full"}, summary.Errors)
}

func TestPlayerStatsService_List_NormalizesFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playerstatsmock.NewRepository(t)
	repo.
		On("List", ctxIs(ctx), playerstats.Filter{PlayerID: 9, Sort: playerstats.SortByFantasyPoints, Page: 1, Limit: 100}).
		Return([]playerstats.Record{{ID: 1, PlayerID: 9}}, 1, nil).
		Once()

	got, err := NewPlayerStatsService(repo, nil, nil).List(ctx, playerstats.Filter{PlayerID: 9, Limit: 500})
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, 100, got.Page.Limit)
	assert.Equal(t, 1, got.Page.TotalPages)
}

func TestPlayerStatsService_List_NegativeID(t *testing.T) {
	t.Parallel()

	_, err := NewPlayerStatsService(playerstatsmock.NewRepository(t), nil, nil).List(context.Background(), playerstats.Filter{MatchID: -1})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

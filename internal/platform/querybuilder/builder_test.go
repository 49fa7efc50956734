package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "number").
		From("gameweeks").
		Where(Eq("number", 20), EqFold("status", "upcoming")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, number FROM gameweeks WHERE number = $1 AND LOWER(status) = LOWER($2) ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 20 || args[1] != "upcoming" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RangeAndPaging(t *testing.T) {
	query, args, err := Select("m.id").
		From("matches m").
		Where(
			Gte("m.match_date", "2026-01-15"),
			Lt("m.match_date", "2026-01-18"),
			AnyOf(Eq("m.home_team_id", int64(3)), Eq("m.away_team_id", int64(3))),
			Expr("m.status <> ?", "Cancelled"),
		).
		OrderBy("m.match_date DESC", "m.id").
		Limit(20).
		Offset(40).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT m.id FROM matches m WHERE m.match_date >= $1 AND m.match_date < $2 AND "+
			"(m.home_team_id = $3 OR m.away_team_id = $4) AND m.status <> $5 ORDER BY m.match_date DESC, m.id LIMIT 20 OFFSET 40",
		query)
	assert.Equal(t, []any{"2026-01-15", "2026-01-18", int64(3), int64(3), "Cancelled"}, args)
}

func TestAnyOf_EmptyMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("teams").Where(AnyOf()).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM teams WHERE 1=0", query)
	assert.Empty(t, args)
}

func TestExpr_LeavesUnboundMarks(t *testing.T) {
	query, args, err := Select("id").From("teams").Where(Expr("name ? 'x' AND id = ?")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM teams WHERE name ? 'x' AND id = ?", query)
	assert.Empty(t, args)
}

func TestSelectBuilder_RequiresColumnsAndTable(t *testing.T) {
	_, _, err := Select().From("teams").ToSQL()
	assert.Error(t, err)
	_, _, err = Select("id").ToSQL()
	assert.Error(t, err)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("name", "short_code").
		Values("Legia", "LEG").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (name, short_code) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Legia" || args[1] != "LEG" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("teams").
		Set("name", "new").
		SetExpr("updated_at", "NOW()").
		SetExpr("version", "version + ?", 1).
		Where(Eq("id", int64(1))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE teams SET name = $1, updated_at = NOW(), version = version + $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "new" || args[1] != 1 || args[2] != int64(1) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("gameweeks").Where(Eq("id", int64(4))).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM gameweeks WHERE id = $1", query)
	assert.Equal(t, []any{int64(4)}, args)

	_, _, err = DeleteFrom("gameweeks").ToSQL()
	assert.Error(t, err)
}

type statRow struct {
	ID       int64  `db:"id,readonly"`
	PlayerID int64  `db:"player_id"`
	MatchID  *int64 `db:"match_id"`
	Points   int    `db:"fantasy_points"`
	note     string
}

func TestInsertModel_SkipsReadonlyColumns(t *testing.T) {
	query, args, err := InsertModel("player_stats", statRow{ID: 9, PlayerID: 1, Points: 6, note: "x"}, "RETURNING id")
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO player_stats (player_id, match_id, fantasy_points) VALUES ($1, $2, $3) RETURNING id", query)
	require.Len(t, args, 3)
	assert.Equal(t, int64(1), args[0])
	assert.Nil(t, args[1])
}

func TestInsertModels_MultiRowUpsert(t *testing.T) {
	matchID := int64(5)
	rows := []statRow{{PlayerID: 1, MatchID: &matchID, Points: 6}, {PlayerID: 2, Points: 3}}

	query, args, err := InsertModels("player_stats", rows, "ON CONFLICT (player_id, match_id) DO UPDATE SET fantasy_points = EXCLUDED.fantasy_points")
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO player_stats (player_id, match_id, fantasy_points) VALUES ($1, $2, $3), ($4, $5, $6) "+
			"ON CONFLICT (player_id, match_id) DO UPDATE SET fantasy_points = EXCLUDED.fantasy_points",
		query)
	assert.Len(t, args, 6)

	_, _, err = InsertModels[statRow]("player_stats", nil, "")
	assert.Error(t, err)
}

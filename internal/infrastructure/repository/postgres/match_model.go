package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
)

type matchTableModel struct {
	ID               int64          `db:"id,readonly"`
	GameweekID       int64          `db:"gameweek_id"`
	HomeTeamID       int64          `db:"home_team_id"`
	AwayTeamID       int64          `db:"away_team_id"`
	MatchDate        time.Time      `db:"match_date"`
	Status           string         `db:"status"`
	HomeScore        sql.NullInt64  `db:"home_score"`
	AwayScore        sql.NullInt64  `db:"away_score"`
	RescheduleReason sql.NullString `db:"reschedule_reason"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

var matchColumns = []string{
	"m.id", "m.gameweek_id", "m.home_team_id", "m.away_team_id", "m.match_date", "m.status",
	"m.home_score", "m.away_score", "m.reschedule_reason", "m.created_at", "m.updated_at",
}

func matchFromRow(row matchTableModel) fixture.Match {
	out := fixture.Match{
		ID:         row.ID,
		GameweekID: row.GameweekID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		MatchDate:  row.MatchDate.UTC(),
		Status:     fixture.Status(row.Status),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.HomeScore.Valid {
		v := int(row.HomeScore.Int64)
		out.HomeScore = &v
	}
	if row.AwayScore.Valid {
		v := int(row.AwayScore.Int64)
		out.AwayScore = &v
	}
	if row.RescheduleReason.Valid {
		v := row.RescheduleReason.String
		out.RescheduleReason = &v
	}
	return out
}

func matchToRow(item fixture.Match) matchTableModel {
	row := matchTableModel{
		ID:         item.ID,
		GameweekID: item.GameweekID,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		MatchDate:  item.MatchDate.UTC(),
		Status:     string(item.Status),
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
	if item.HomeScore != nil {
		row.HomeScore = sql.NullInt64{Int64: int64(*item.HomeScore), Valid: true}
	}
	if item.AwayScore != nil {
		row.AwayScore = sql.NullInt64{Int64: int64(*item.AwayScore), Valid: true}
	}
	if item.RescheduleReason != nil {
		row.RescheduleReason = sql.NullString{String: *item.RescheduleReason, Valid: true}
	}
	return row
}

package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
)

type playerStatsTableModel struct {
	ID              int64         `db:"id,readonly"`
	PlayerID        int64         `db:"player_id"`
	MatchID         sql.NullInt64 `db:"match_id"`
	FantasyPoints   int           `db:"fantasy_points"`
	MinutesPlayed   int           `db:"minutes_played"`
	Goals           int           `db:"goals"`
	Assists         int           `db:"assists"`
	YellowCards     int           `db:"yellow_cards"`
	RedCards        int           `db:"red_cards"`
	Saves           int           `db:"saves"`
	PenaltiesSaved  int           `db:"penalties_saved"`
	PenaltiesWon    int           `db:"penalties_won"`
	PenaltiesScored int           `db:"penalties_scored"`
	PenaltiesCaused int           `db:"penalties_caused"`
	PenaltiesMissed int           `db:"penalties_missed"`
	LottoAssists    int           `db:"lotto_assists"`
	OwnGoals        int           `db:"own_goals"`
	InTeamOfWeek    bool          `db:"in_team_of_week"`
	Price           float64       `db:"price"`
	PredictedStart  bool          `db:"predicted_start"`
	HealthStatus    string        `db:"health_status"`
	CreatedAt       time.Time     `db:"created_at,readonly"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

var playerStatsColumns = []string{
	"id", "player_id", "match_id", "fantasy_points", "minutes_played", "goals", "assists",
	"yellow_cards", "red_cards", "saves", "penalties_saved", "penalties_won", "penalties_scored",
	"penalties_caused", "penalties_missed", "lotto_assists", "own_goals", "in_team_of_week",
	"price", "predicted_start", "health_status", "created_at", "updated_at",
}

// playerStatsUpdatable are the columns a re-import overwrites.
var playerStatsUpdatable = []string{
	"fantasy_points", "minutes_played", "goals", "assists", "yellow_cards", "red_cards", "saves",
	"penalties_saved", "penalties_won", "penalties_scored", "penalties_caused", "penalties_missed",
	"lotto_assists", "own_goals", "in_team_of_week", "price", "predicted_start", "health_status",
	"updated_at",
}

func playerStatsFromRow(row playerStatsTableModel) playerstats.Record {
	out := playerstats.Record{
		ID:              row.ID,
		PlayerID:        row.PlayerID,
		FantasyPoints:   row.FantasyPoints,
		MinutesPlayed:   row.MinutesPlayed,
		Goals:           row.Goals,
		Assists:         row.Assists,
		YellowCards:     row.YellowCards,
		RedCards:        row.RedCards,
		Saves:           row.Saves,
		PenaltiesSaved:  row.PenaltiesSaved,
		PenaltiesWon:    row.PenaltiesWon,
		PenaltiesScored: row.PenaltiesScored,
		PenaltiesCaused: row.PenaltiesCaused,
		PenaltiesMissed: row.PenaltiesMissed,
		LottoAssists:    row.LottoAssists,
		OwnGoals:        row.OwnGoals,
		InTeamOfWeek:    row.InTeamOfWeek,
		Price:           row.Price,
		PredictedStart:  row.PredictedStart,
		HealthStatus:    row.HealthStatus,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.MatchID.Valid {
		id := row.MatchID.Int64
		out.MatchID = &id
	}
	return out
}

func playerStatsToRow(item playerstats.Record, now time.Time) playerStatsTableModel {
	row := playerStatsTableModel{
		PlayerID:        item.PlayerID,
		FantasyPoints:   item.FantasyPoints,
		MinutesPlayed:   item.MinutesPlayed,
		Goals:           item.Goals,
		Assists:         item.Assists,
		YellowCards:     item.YellowCards,
		RedCards:        item.RedCards,
		Saves:           item.Saves,
		PenaltiesSaved:  item.PenaltiesSaved,
		PenaltiesWon:    item.PenaltiesWon,
		PenaltiesScored: item.PenaltiesScored,
		PenaltiesCaused: item.PenaltiesCaused,
		PenaltiesMissed: item.PenaltiesMissed,
		LottoAssists:    item.LottoAssists,
		OwnGoals:        item.OwnGoals,
		InTeamOfWeek:    item.InTeamOfWeek,
		Price:           item.Price,
		PredictedStart:  item.PredictedStart,
		HealthStatus:    item.HealthStatus,
		UpdatedAt:       now,
	}
	if row.HealthStatus == "" {
		row.HealthStatus = playerstats.DefaultHealthStatus
	}
	if item.MatchID != nil {
		row.MatchID = sql.NullInt64{Int64: *item.MatchID, Valid: true}
	}
	return row
}

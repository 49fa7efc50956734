package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
)

type gameweekTableModel struct {
	ID        int64     `db:"id,readonly"`
	Number    int       `db:"number"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
}

var gameweekColumns = []string{"id", "number", "start_date", "end_date"}

func gameweekFromRow(row gameweekTableModel) gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:        row.ID,
		Number:    row.Number,
		StartDate: gameweek.DateOnly(row.StartDate),
		EndDate:   gameweek.DateOnly(row.EndDate),
	}
}

func gameweekToRow(item gameweek.Gameweek) gameweekTableModel {
	return gameweekTableModel{
		ID:        item.ID,
		Number:    item.Number,
		StartDate: gameweek.DateOnly(item.StartDate),
		EndDate:   gameweek.DateOnly(item.EndDate),
	}
}

package postgres

import (
	"database/sql"

	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

type teamTableModel struct {
	ID        int64          `db:"id,readonly"`
	Name      string         `db:"name"`
	ShortCode string         `db:"short_code"`
	CrestURL  sql.NullString `db:"crest_url"`
	IsActive  bool           `db:"is_active"`
}

var teamColumns = []string{"id", "name", "short_code", "crest_url", "is_active"}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:        row.ID,
		Name:      row.Name,
		ShortCode: row.ShortCode,
		CrestURL:  row.CrestURL.String,
		IsActive:  row.IsActive,
	}
}

func teamToRow(item team.Team) teamTableModel {
	return teamTableModel{
		ID:        item.ID,
		Name:      item.Name,
		ShortCode: item.ShortCode,
		CrestURL:  nullString(item.CrestURL),
		IsActive:  item.IsActive,
	}
}

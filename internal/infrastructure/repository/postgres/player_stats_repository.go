package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
	qb "github.com/riskibarqy/fantasy-coach/internal/platform/querybuilder"
)

// upsertChunkSize keeps a single statement well under the 65535 bind
// parameter limit (21 columns per row).
const upsertChunkSize = 1000

type PlayerStatsRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db, now: time.Now}
}

// UpsertBatch writes every record in one transaction. Either the whole batch
// lands or none of it does.
func (r *PlayerStatsRepository) UpsertBatch(ctx context.Context, records []playerstats.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert player stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := r.now().UTC()
	suffix := upsertPlayerStatsSuffix()
	for start := 0; start < len(records); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(records))

		rows := make([]playerStatsTableModel, 0, end-start)
		for _, item := range records[start:end] {
			rows = append(rows, playerStatsToRow(item, now))
		}

		query, args, err := qb.InsertModels("player_stats", rows, suffix)
		if err != nil {
			return fmt.Errorf("build upsert player stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player stats rows %d-%d: %w", start+1, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert player stats tx: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) List(ctx context.Context, filter playerstats.Filter) ([]playerstats.Record, int, error) {
	var conds []qb.Condition
	if filter.MatchID > 0 {
		conds = append(conds, qb.Eq("match_id", filter.MatchID))
	}
	if filter.PlayerID > 0 {
		conds = append(conds, qb.Eq("player_id", filter.PlayerID))
	}

	countQuery, countArgs, err := qb.Select("COUNT(*)").From("player_stats").Where(conds...).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count player stats query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count player stats: %w", err)
	}

	sortColumn := string(filter.Sort)
	if sortColumn == "" {
		sortColumn = string(playerstats.SortByFantasyPoints)
	}
	page := filter.PageRequest()
	query, args, err := qb.Select(playerStatsColumns...).From("player_stats").
		Where(conds...).
		OrderBy(sortColumn+" "+orderDirection(filter.Descending), "id").
		Limit(page.Limit).
		Offset(page.Offset()).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select player stats: %w", err)
	}

	out := make([]playerstats.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerStatsFromRow(row))
	}
	return out, total, nil
}

func upsertPlayerStatsSuffix() string {
	sets := make([]string, 0, len(playerStatsUpdatable))
	for _, col := range playerStatsUpdatable {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	return "ON CONFLICT (player_id, match_id) DO UPDATE SET " + strings.Join(sets, ", ")
}

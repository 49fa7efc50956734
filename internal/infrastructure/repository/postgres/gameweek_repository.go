package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	qb "github.com/riskibarqy/fantasy-coach/internal/platform/querybuilder"
)

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select(gameweekColumns...).From("gameweeks").OrderBy("number").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select gameweeks: %w", err)
	}

	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekFromRow(row))
	}
	return out, nil
}

func (r *GameweekRepository) GetByID(ctx context.Context, id int64) (gameweek.Gameweek, bool, error) {
	return r.getOne(ctx, "by id", qb.Eq("id", id))
}

func (r *GameweekRepository) GetByNumber(ctx context.Context, number int) (gameweek.Gameweek, bool, error) {
	return r.getOne(ctx, "by number", qb.Eq("number", number))
}

func (r *GameweekRepository) getOne(ctx context.Context, what string, cond qb.Condition) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select(gameweekColumns...).From("gameweeks").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build select gameweek %s query: %w", what, err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("select gameweek %s: %w", what, err)
	}
	return gameweekFromRow(row), true, nil
}

func (r *GameweekRepository) Create(ctx context.Context, item gameweek.Gameweek) (gameweek.Gameweek, error) {
	query, args, err := qb.InsertModel("gameweeks", gameweekToRow(item), "RETURNING id")
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("build insert gameweek query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return gameweek.Gameweek{}, duplicateGameweek(item.Number)
		}
		return gameweek.Gameweek{}, fmt.Errorf("insert gameweek: %w", err)
	}

	item.ID = id
	item.StartDate = gameweek.DateOnly(item.StartDate)
	item.EndDate = gameweek.DateOnly(item.EndDate)
	return item, nil
}

func (r *GameweekRepository) Update(ctx context.Context, item gameweek.Gameweek) error {
	row := gameweekToRow(item)
	query, args, err := qb.Update("gameweeks").
		Set("number", row.Number).
		Set("start_date", row.StartDate).
		Set("end_date", row.EndDate).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update gameweek query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return duplicateGameweek(item.Number)
		}
		return fmt.Errorf("update gameweek: %w", err)
	}
	return nil
}

func (r *GameweekRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom("gameweeks").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete gameweek query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return gameweek.ValidateDeletable(id, 1)
		}
		return fmt.Errorf("delete gameweek: %w", err)
	}
	return nil
}

func duplicateGameweek(number int) error {
	return rule.Conflict("number", "Gameweek with number %d already exists", number)
}

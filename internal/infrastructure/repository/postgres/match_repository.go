package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	qb "github.com/riskibarqy/fantasy-coach/internal/platform/querybuilder"
)

const matchesFrom = "matches m JOIN gameweeks g ON g.id = m.gameweek_id"

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// List returns one page of matches plus the total number of matches the
// filter selects across all pages.
func (r *MatchRepository) List(ctx context.Context, filter fixture.Filter) ([]fixture.Match, int, error) {
	conds := matchConditions(filter)

	countQuery, countArgs, err := qb.Select("COUNT(*)").From(matchesFrom).Where(conds...).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count matches query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}

	dir := orderDirection(filter.Descending)
	order := []string{"m.match_date " + dir, "m.id " + dir}
	if filter.Sort == fixture.SortByGameweekNumber {
		order = []string{"g.number " + dir, "m.match_date", "m.id"}
	}

	page := filter.PageRequest()
	query, args, err := qb.Select(matchColumns...).From(matchesFrom).
		Where(conds...).
		OrderBy(order...).
		Limit(page.Limit).
		Offset(page.Offset()).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select matches query: %w", err)
	}

	items, err := r.selectMatches(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MatchRepository) ListByGameweek(ctx context.Context, gameweekID int64) ([]fixture.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches m").
		Where(qb.Eq("m.gameweek_id", gameweekID)).
		OrderBy("m.match_date", "m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by gameweek query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (fixture.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).From("matches m").Where(qb.Eq("m.id", id)).Limit(1).ToSQL()
	if err != nil {
		return fixture.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Match{}, false, nil
		}
		return fixture.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ExistsBetween(ctx context.Context, homeTeamID, awayTeamID, gameweekID int64) (bool, error) {
	inner, args, err := qb.Select("1").From("matches").
		Where(
			qb.Eq("gameweek_id", gameweekID),
			qb.Eq("home_team_id", homeTeamID),
			qb.Eq("away_team_id", awayTeamID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build match exists query: %w", err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS ("+inner+")", args...); err != nil {
		return false, fmt.Errorf("check match exists: %w", err)
	}
	return exists, nil
}

func (r *MatchRepository) CountByGameweek(ctx context.Context, gameweekID int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("matches").Where(qb.Eq("gameweek_id", gameweekID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches by gameweek query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches by gameweek: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) Create(ctx context.Context, item fixture.Match) (fixture.Match, error) {
	query, args, err := qb.InsertModel("matches", matchToRow(item), "RETURNING id")
	if err != nil {
		return fixture.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return fixture.Match{}, duplicateMatch(item)
		}
		return fixture.Match{}, fmt.Errorf("insert match: %w", err)
	}

	item.ID = id
	return item, nil
}

func (r *MatchRepository) Update(ctx context.Context, item fixture.Match) error {
	row := matchToRow(item)
	query, args, err := qb.Update("matches").
		Set("gameweek_id", row.GameweekID).
		Set("home_team_id", row.HomeTeamID).
		Set("away_team_id", row.AwayTeamID).
		Set("match_date", row.MatchDate).
		Set("status", row.Status).
		Set("home_score", row.HomeScore).
		Set("away_score", row.AwayScore).
		Set("reschedule_reason", row.RescheduleReason).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return duplicateMatch(item)
		}
		return fmt.Errorf("update match: %w", err)
	}
	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]fixture.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]fixture.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

// matchConditions mirrors fixture.Filter.Matches. The date bounds are whole
// UTC days, so the upper bound is exclusive on the following midnight.
func matchConditions(filter fixture.Filter) []qb.Condition {
	var conds []qb.Condition
	if filter.GameweekID > 0 {
		conds = append(conds, qb.Eq("m.gameweek_id", filter.GameweekID))
	}
	if filter.TeamID > 0 {
		conds = append(conds, qb.AnyOf(qb.Eq("m.home_team_id", filter.TeamID), qb.Eq("m.away_team_id", filter.TeamID)))
	}
	if filter.Status != "" {
		conds = append(conds, qb.Eq("m.status", string(filter.Status)))
	}
	if filter.DateFrom != nil {
		conds = append(conds, qb.Gte("m.match_date", gameweek.DateOnly(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		conds = append(conds, qb.Lt("m.match_date", gameweek.DateOnly(*filter.DateTo).AddDate(0, 0, 1)))
	}
	return conds
}

// duplicateMatch only has ids to work with; the scheduler reports the
// friendlier team names when it catches the duplicate first.
func duplicateMatch(item fixture.Match) error {
	return rule.Conflict("homeTeamId",
		"A match between teams %d and %d already exists in gameweek %d",
		item.HomeTeamID, item.AwayTeamID, item.GameweekID)
}

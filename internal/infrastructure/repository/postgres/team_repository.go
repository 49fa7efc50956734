package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-coach/internal/platform/querybuilder"
)

const (
	teamsNameIndex      = "teams_name_lower_key"
	teamsShortCodeIndex = "teams_short_code_key"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	var conds []qb.Condition
	if filter.IsActive != nil {
		conds = append(conds, qb.Eq("is_active", *filter.IsActive))
	}
	if code := strings.TrimSpace(filter.ShortCode); code != "" {
		conds = append(conds, qb.EqFold("short_code", code))
	}

	sortColumn := "LOWER(name)"
	if filter.Sort == team.SortByShortCode {
		sortColumn = "LOWER(short_code)"
	}

	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(conds...).
		OrderBy(sortColumn+" "+orderDirection(filter.Descending), "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").Where(qb.Eq("id", id)).Limit(1).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	query, args, err := qb.InsertModel("teams", teamToRow(item), "RETURNING id")
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return team.Team{}, duplicateTeam(constraint, item)
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	item.ID = id
	return item, nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	row := teamToRow(item)
	query, args, err := qb.Update("teams").
		Set("name", row.Name).
		Set("short_code", row.ShortCode).
		Set("crest_url", row.CrestURL).
		Set("is_active", row.IsActive).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return duplicateTeam(constraint, item)
		}
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func duplicateTeam(constraint string, item team.Team) error {
	switch constraint {
	case teamsNameIndex:
		return rule.Conflict("name", "A team named '%s' already exists", item.Name)
	case teamsShortCodeIndex:
		return rule.Conflict("shortCode", "Short code '%s' already exists", item.ShortCode)
	default:
		return rule.Conflict("", "Team conflicts with an existing team (%s)", constraint)
	}
}

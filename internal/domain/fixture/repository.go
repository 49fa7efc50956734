package fixture

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Match, int, error)
	ListByGameweek(ctx context.Context, gameweekID int64) ([]Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	ExistsBetween(ctx context.Context, homeTeamID, awayTeamID, gameweekID int64) (bool, error)
	CountByGameweek(ctx context.Context, gameweekID int64) (int, error)
	Create(ctx context.Context, item Match) (Match, error)
	Update(ctx context.Context, item Match) error
}

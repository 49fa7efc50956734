package gameweek

import "context"

// Repository describes gameweek persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Gameweek, error)
	GetByID(ctx context.Context, id int64) (Gameweek, bool, error)
	GetByNumber(ctx context.Context, number int) (Gameweek, bool, error)
	Create(ctx context.Context, item Gameweek) (Gameweek, error)
	Update(ctx context.Context, item Gameweek) error
	Delete(ctx context.Context, id int64) error
}

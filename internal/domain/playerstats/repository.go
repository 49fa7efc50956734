package playerstats

import "context"

// Upserter commits a validated batch keyed by (player, match).
type Upserter interface {
	UpsertBatch(ctx context.Context, records []Record) error
}

// Repository describes player stats persistence needs from use cases.
type Repository interface {
	Upserter
	List(ctx context.Context, filter Filter) ([]Record, int, error)
}

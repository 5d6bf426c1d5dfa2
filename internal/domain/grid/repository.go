package grid

import "context"

// Repository describes grid persistence needs from use cases. Implementations
// must return deep copies: winner recomputation is a full-state replace and
// must never race a shared square slice.
type Repository interface {
	List(ctx context.Context) ([]Grid, error)
	GetByID(ctx context.Context, gridID string) (Grid, bool, error)
	GetBySharedCode(ctx context.Context, code string) (Grid, bool, error)
	Upsert(ctx context.Context, g Grid) error
}

package memory

import (
	"context"
	"sync"

	"github.com/boxpool/boxpool/internal/domain/grid"
)

// GridRepository stores deep copies: callers mutate winner state in place,
// so shared square slices would race.
type GridRepository struct {
	mu     sync.RWMutex
	items  map[string]grid.Grid
	orders []string
}

func NewGridRepository() *GridRepository {
	return &GridRepository{
		items: make(map[string]grid.Grid),
	}
}

func (r *GridRepository) List(_ context.Context) ([]grid.Grid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]grid.Grid, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id].Clone())
	}

	return out, nil
}

func (r *GridRepository) GetByID(_ context.Context, gridID string) (grid.Grid, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[gridID]
	if !ok {
		return grid.Grid{}, false, nil
	}

	return g.Clone(), true, nil
}

func (r *GridRepository) GetBySharedCode(_ context.Context, code string) (grid.Grid, bool, error) {
	if code == "" {
		return grid.Grid{}, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if g := r.items[id]; g.SharedCode == code {
			return g.Clone(), true, nil
		}
	}

	return grid.Grid{}, false, nil
}

func (r *GridRepository) Upsert(_ context.Context, g grid.Grid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[g.ID]; !ok {
		r.orders = append(r.orders, g.ID)
	}
	r.items[g.ID] = g.Clone()

	return nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/boxpool/boxpool/internal/domain/game"
	"github.com/boxpool/boxpool/internal/domain/grid"
	"github.com/boxpool/boxpool/internal/domain/team"
	"github.com/boxpool/boxpool/internal/platform/cache"
)

// ScoreProvider fetches the live snapshot for a matchup from the upstream
// score source.
type ScoreProvider interface {
	FetchScore(ctx context.Context, home, away team.Team) (game.Score, error)
}

type ScoreService struct {
	gridRepo grid.Repository
	provider ScoreProvider
	// scores throttles upstream fetches: the store's TTL is the poll
	// interval, and GetOrLoad collapses concurrent refreshes of the same
	// matchup into one request.
	scores *cache.Store
	now    func() time.Time
}

func NewScoreService(gridRepo grid.Repository, provider ScoreProvider, pollInterval time.Duration) *ScoreService {
	return &ScoreService{
		gridRepo: gridRepo,
		provider: provider,
		scores:   cache.NewStore(pollInterval),
		now:      time.Now,
	}
}

// ApplyScore ingests a snapshot pushed by a caller. The snapshot's team slots
// may be empty; the grid's own matchup fills them in.
func (s *ScoreService) ApplyScore(ctx context.Context, gridID string, snapshot game.Score) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.ApplyScore")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return grid.Grid{}, err
	}

	return s.applySnapshot(ctx, g, snapshot)
}

// RefreshScore pulls the latest snapshot from the score source and applies
// it. Within one poll interval repeated calls reuse the cached snapshot, so
// every sheet tracking the same matchup costs one upstream request.
func (s *ScoreService) RefreshScore(ctx context.Context, gridID string) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.RefreshScore")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return grid.Grid{}, err
	}
	if g.CurrentScore != nil && g.CurrentScore.IsOver {
		return g, nil
	}
	if s.provider == nil {
		return grid.Grid{}, fmt.Errorf("%w: no score source configured", ErrDependencyUnavailable)
	}

	key := fmt.Sprintf("score:%s:%s", g.HomeTeam.ID, g.AwayTeam.ID)
	value, err := s.scores.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		snapshot, err := s.provider.FetchScore(ctx, g.HomeTeam, g.AwayTeam)
		if err != nil {
			return nil, err
		}
		return snapshot, nil
	})
	if err != nil {
		return grid.Grid{}, fmt.Errorf("%w: fetch score: %v", ErrDependencyUnavailable, err)
	}
	snapshot, ok := value.(game.Score)
	if !ok {
		return grid.Grid{}, fmt.Errorf("unexpected cached score type %T", value)
	}

	return s.applySnapshot(ctx, g, snapshot)
}

func (s *ScoreService) applySnapshot(ctx context.Context, g grid.Grid, snapshot game.Score) (grid.Grid, error) {
	if snapshot.HomeTeam.ID == "" {
		snapshot.HomeTeam = g.HomeTeam
	}
	if snapshot.AwayTeam.ID == "" {
		snapshot.AwayTeam = g.AwayTeam
	}

	if err := g.SetScore(snapshot); err != nil {
		return grid.Grid{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	g.LastModified = s.now()

	if err := s.gridRepo.Upsert(ctx, g); err != nil {
		return grid.Grid{}, fmt.Errorf("store grid: %w", err)
	}

	return g, nil
}

func (s *ScoreService) loadGrid(ctx context.Context, gridID string) (grid.Grid, error) {
	gridID = strings.TrimSpace(gridID)
	if gridID == "" {
		return grid.Grid{}, fmt.Errorf("%w: grid id is required", ErrInvalidInput)
	}

	g, exists, err := s.gridRepo.GetByID(ctx, gridID)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("get grid: %w", err)
	}
	if !exists {
		return grid.Grid{}, fmt.Errorf("%w: grid=%s", ErrNotFound, gridID)
	}

	return g, nil
}

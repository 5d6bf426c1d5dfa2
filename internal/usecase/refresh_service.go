package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/boxpool/boxpool/internal/domain/grid"
)

const (
	refreshStatusUpdated = "updated"
	refreshStatusSkipped = "skipped"
	refreshStatusFailed  = "failed"

	defaultRefreshWorkers = 4
	maxRefreshWorkers     = 16
)

type RefreshAllInput struct {
	MaxWorkers int
}

type RefreshResult struct {
	GridCount    int                 `json:"grid_count"`
	UpdatedCount int                 `json:"updated_count"`
	SkippedCount int                 `json:"skipped_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Grids        []RefreshGridResult `json:"grids"`
}

type RefreshGridResult struct {
	GridID     string `json:"grid_id"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// RefreshService fans score refreshes out over every stored grid. The
// background poller and the internal refresh job both go through here.
type RefreshService struct {
	gridRepo grid.Repository
	scores   *ScoreService
}

func NewRefreshService(gridRepo grid.Repository, scores *ScoreService) *RefreshService {
	return &RefreshService{
		gridRepo: gridRepo,
		scores:   scores,
	}
}

func (s *RefreshService) RefreshAll(ctx context.Context, input RefreshAllInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshAll")
	defer span.End()

	if s.scores == nil {
		return RefreshResult{}, fmt.Errorf("%w: score refresh is not configured", ErrDependencyUnavailable)
	}

	grids, err := s.gridRepo.List(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list grids: %w", err)
	}

	workerCount := normalizeRefreshWorkerCount(input.MaxWorkers, len(grids))
	result := RefreshResult{
		GridCount:   len(grids),
		WorkerCount: workerCount,
		Grids:       make([]RefreshGridResult, 0, len(grids)),
	}
	if len(grids) == 0 {
		return result, nil
	}

	results := make(chan RefreshGridResult, len(grids))

	var updatedCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, g := range grids {
		g := g
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshGridResult{GridID: g.ID}

			switch {
			case g.CurrentScore != nil && g.CurrentScore.IsOver:
				row.Status = refreshStatusSkipped
				row.Message = "game over"
				skippedCount.Add(1)
			default:
				if _, err := s.scores.RefreshScore(ctx, g.ID); err != nil {
					row.Status = refreshStatusFailed
					row.Message = err.Error()
					failedCount.Add(1)
				} else {
					row.Status = refreshStatusUpdated
					updatedCount.Add(1)
				}
			}

			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit grid to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Grids = append(result.Grids, row)
	}
	sort.SliceStable(result.Grids, func(i, j int) bool {
		return result.Grids[i].GridID < result.Grids[j].GridID
	})

	result.UpdatedCount = int(updatedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())

	return result, nil
}

func normalizeRefreshWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultRefreshWorkers
	}
	if count > maxRefreshWorkers {
		count = maxRefreshWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	return count
}

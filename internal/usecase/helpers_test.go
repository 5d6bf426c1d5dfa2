package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/boxpool/boxpool/internal/domain/game"
	"github.com/boxpool/boxpool/internal/domain/grid"
	"github.com/boxpool/boxpool/internal/domain/team"
	"github.com/boxpool/boxpool/internal/infrastructure/repository/memory"
)

func seededTeam(t *testing.T, teamID string) team.Team {
	t.Helper()
	for _, tm := range memory.SeedTeams() {
		if tm.ID == teamID {
			return tm
		}
	}
	t.Fatalf("team %s missing from seed", teamID)
	return team.Team{}
}

// seedGrid stores a grid with sequential digit headers so tests can reason
// about winning positions directly.
func seedGrid(t *testing.T, repo *memory.GridRepository, gridID string) grid.Grid {
	t.Helper()

	home := seededTeam(t, memory.TeamIDChiefs)
	away := seededTeam(t, memory.TeamIDFortyNiner)

	g := grid.New(gridID, "Office Pool", home, away, time.Date(2026, 2, 8, 18, 0, 0, 0, time.UTC))
	g.HomeNumbers = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	g.AwayNumbers = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	if err := repo.Upsert(t.Context(), g); err != nil {
		t.Fatalf("seed grid: %v", err)
	}
	return g
}

type fakeScoreProvider struct {
	mu       sync.Mutex
	calls    int
	snapshot game.Score
	err      error
}

func (p *fakeScoreProvider) FetchScore(_ context.Context, _, _ team.Team) (game.Score, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.err != nil {
		return game.Score{}, p.err
	}
	return p.snapshot, nil
}

func (p *fakeScoreProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/boxpool/boxpool/internal/domain/grid"
	"github.com/boxpool/boxpool/internal/domain/team"
	gridmock "github.com/boxpool/boxpool/internal/mocks/domain/grid"
	teammock "github.com/boxpool/boxpool/internal/mocks/domain/team"
	"github.com/boxpool/boxpool/internal/platform/id"
)

func TestGridService_GetGrid_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gridRepo := gridmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	service := NewGridService(gridRepo, teamRepo, id.NewRandomGenerator())
	expected := grid.New("grid-77", "Office Pool",
		team.Team{ID: "nfl-kc", Name: "Kansas City Chiefs", Abbreviation: "KC"},
		team.Team{ID: "nfl-sf", Name: "San Francisco 49ers", Abbreviation: "SF"},
		time.Now(),
	)

	gridRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "grid-77").
		Return(expected, true, nil).
		Once()

	got, err := service.GetGrid(ctx, "grid-77")
	if err != nil {
		t.Fatalf("get grid: %v", err)
	}
	if got.ID != expected.ID {
		t.Fatalf("unexpected grid id: got=%s want=%s", got.ID, expected.ID)
	}
}

func TestGridService_GetGrid_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gridRepo := gridmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	service := NewGridService(gridRepo, teamRepo, id.NewRandomGenerator())

	gridRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "missing-grid").
		Return(grid.Grid{}, false, nil).
		Once()

	_, err := service.GetGrid(ctx, "missing-grid")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

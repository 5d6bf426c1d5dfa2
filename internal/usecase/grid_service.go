package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/boxpool/boxpool/internal/domain/grid"
	"github.com/boxpool/boxpool/internal/domain/pool"
	"github.com/boxpool/boxpool/internal/domain/team"
	"github.com/boxpool/boxpool/internal/platform/id"
)

type CreateGridInput struct {
	Name       string
	HomeTeamID string
	AwayTeamID string
	Pool       *pool.Structure
}

type ClaimSquareInput struct {
	GridID     string
	Row        int
	Col        int
	PlayerName string
}

type GridService struct {
	gridRepo grid.Repository
	teamRepo team.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewGridService(gridRepo grid.Repository, teamRepo team.Repository, idGen id.Generator) *GridService {
	return &GridService{
		gridRepo: gridRepo,
		teamRepo: teamRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *GridService) CreateGrid(ctx context.Context, input CreateGridInput) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.CreateGrid")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return grid.Grid{}, fmt.Errorf("%w: grid name is required", ErrInvalidInput)
	}

	home, err := s.resolveTeam(ctx, input.HomeTeamID)
	if err != nil {
		return grid.Grid{}, err
	}
	away, err := s.resolveTeam(ctx, input.AwayTeamID)
	if err != nil {
		return grid.Grid{}, err
	}
	if home.ID == away.ID {
		return grid.Grid{}, fmt.Errorf("%w: home and away team must differ", ErrInvalidInput)
	}

	gridID, err := s.idGen.NewID()
	if err != nil {
		return grid.Grid{}, fmt.Errorf("generate grid id: %w", err)
	}

	g := grid.New(gridID, name, home, away, s.now())
	if input.Pool != nil {
		g.Pool = input.Pool
	}
	if err := g.Validate(); err != nil {
		return grid.Grid{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.gridRepo.Upsert(ctx, g); err != nil {
		return grid.Grid{}, fmt.Errorf("store grid: %w", err)
	}

	return g, nil
}

func (s *GridService) resolveTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return t, nil
}

func (s *GridService) ListGrids(ctx context.Context) ([]grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.ListGrids")
	defer span.End()

	grids, err := s.gridRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list grids: %w", err)
	}

	return grids, nil
}

func (s *GridService) GetGrid(ctx context.Context, gridID string) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.GetGrid")
	defer span.End()

	return s.loadGrid(ctx, gridID)
}

// GetSharedGrid resolves a grid by its share code. Codes are entered by hand
// so lookup ignores case and surrounding whitespace.
func (s *GridService) GetSharedGrid(ctx context.Context, code string) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.GetSharedGrid")
	defer span.End()

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return grid.Grid{}, fmt.Errorf("%w: share code is required", ErrInvalidInput)
	}

	g, exists, err := s.gridRepo.GetBySharedCode(ctx, code)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("get grid by share code: %w", err)
	}
	if !exists {
		return grid.Grid{}, fmt.Errorf("%w: share code=%s", ErrNotFound, code)
	}

	return g, nil
}

func (s *GridService) ClaimSquare(ctx context.Context, input ClaimSquareInput) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.ClaimSquare")
	defer span.End()

	g, err := s.loadGrid(ctx, input.GridID)
	if err != nil {
		return grid.Grid{}, err
	}

	if err := g.SetPlayerName(input.Row, input.Col, input.PlayerName); err != nil {
		return grid.Grid{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	g.LastModified = s.now()

	if err := s.gridRepo.Upsert(ctx, g); err != nil {
		return grid.Grid{}, fmt.Errorf("store grid: %w", err)
	}

	return g, nil
}

// RandomizeNumbers reshuffles both digit headers. Winner state is recomputed
// against the new headers immediately so a mid-game reshuffle never leaves a
// stale winner flag behind.
func (s *GridService) RandomizeNumbers(ctx context.Context, gridID string) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.RandomizeNumbers")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return grid.Grid{}, err
	}

	g.RandomizeNumbers()
	g.LastModified = s.now()

	if err := s.gridRepo.Upsert(ctx, g); err != nil {
		return grid.Grid{}, fmt.Errorf("store grid: %w", err)
	}

	return g, nil
}

func (s *GridService) SetOwnerLabels(ctx context.Context, gridID string, labels []string) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.SetOwnerLabels")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return grid.Grid{}, err
	}

	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	g.OwnerLabels = cleaned
	g.LastModified = s.now()

	if err := s.gridRepo.Upsert(ctx, g); err != nil {
		return grid.Grid{}, fmt.Errorf("store grid: %w", err)
	}

	return g, nil
}

// ShareGrid assigns a share code on first call and returns the existing one
// afterwards, so a sheet keeps a single stable code for its lifetime.
func (s *GridService) ShareGrid(ctx context.Context, gridID string) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.ShareGrid")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return grid.Grid{}, err
	}
	if g.SharedCode != "" {
		return g, nil
	}

	code, err := s.idGen.NewShareCode()
	if err != nil {
		return grid.Grid{}, fmt.Errorf("generate share code: %w", err)
	}
	g.SharedCode = code
	g.LastModified = s.now()

	if err := s.gridRepo.Upsert(ctx, g); err != nil {
		return grid.Grid{}, fmt.Errorf("store grid: %w", err)
	}

	return g, nil
}

func (s *GridService) loadGrid(ctx context.Context, gridID string) (grid.Grid, error) {
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

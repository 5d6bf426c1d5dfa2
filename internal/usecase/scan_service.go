package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/boxpool/boxpool/internal/domain/grid"
	"github.com/boxpool/boxpool/internal/domain/team"
)

// ScanCell is one recognized name cell from a photographed sheet.
type ScanCell struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Text string `json:"text"`
}

type ApplyScanInput struct {
	GridID string
	Cells  []ScanCell
	// Overwrite lets a rescan replace names already on the sheet. Off by
	// default so a noisy scan cannot clobber hand-entered claims.
	Overwrite bool
	HomeText  string
	AwayText  string
}

// ScanReport tallies what a scan did. Recognition output is noisy, so the
// caller gets counts instead of a hard failure on imperfect cells.
type ScanReport struct {
	Applied  int `json:"applied"`
	Skipped  int `json:"skipped"`
	Rejected int `json:"rejected"`
}

type ScanService struct {
	gridRepo grid.Repository
	teamRepo team.Repository
	now      func() time.Time
}

func NewScanService(gridRepo grid.Repository, teamRepo team.Repository) *ScanService {
	return &ScanService{
		gridRepo: gridRepo,
		teamRepo: teamRepo,
		now:      time.Now,
	}
}

// ApplyScan writes recognized cell names onto the sheet. When the scan also
// captured team headers they are checked against the grid's matchup; a
// mismatch rejects the whole scan since the photo is of some other sheet.
func (s *ScanService) ApplyScan(ctx context.Context, input ApplyScanInput) (grid.Grid, ScanReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScanService.ApplyScan")
	defer span.End()

	gridID := strings.TrimSpace(input.GridID)
	if gridID == "" {
		return grid.Grid{}, ScanReport{}, fmt.Errorf("%w: grid id is required", ErrInvalidInput)
	}
	if len(input.Cells) == 0 {
		return grid.Grid{}, ScanReport{}, fmt.Errorf("%w: scan has no cells", ErrInvalidInput)
	}

	g, exists, err := s.gridRepo.GetByID(ctx, gridID)
	if err != nil {
		return grid.Grid{}, ScanReport{}, fmt.Errorf("get grid: %w", err)
	}
	if !exists {
		return grid.Grid{}, ScanReport{}, fmt.Errorf("%w: grid=%s", ErrNotFound, gridID)
	}

	if err := s.checkScannedTeams(ctx, g, input.HomeText, input.AwayText); err != nil {
		return grid.Grid{}, ScanReport{}, err
	}

	var report ScanReport
	for _, cell := range input.Cells {
		text := strings.TrimSpace(cell.Text)
		if text == "" {
			report.Skipped++
			continue
		}
		sq, ok := g.SquareAt(cell.Row, cell.Col)
		if !ok {
			report.Rejected++
			continue
		}
		if sq.Claimed() && !input.Overwrite {
			report.Skipped++
			continue
		}
		if err := g.SetPlayerName(cell.Row, cell.Col, text); err != nil {
			report.Rejected++
			continue
		}
		report.Applied++
	}

	if report.Applied > 0 {
		g.LastModified = s.now()
		if err := s.gridRepo.Upsert(ctx, g); err != nil {
			return grid.Grid{}, ScanReport{}, fmt.Errorf("store grid: %w", err)
		}
	}

	return g, report, nil
}

func (s *ScanService) checkScannedTeams(ctx context.Context, g grid.Grid, homeText, awayText string) error {
	homeText = strings.TrimSpace(homeText)
	awayText = strings.TrimSpace(awayText)
	if homeText == "" && awayText == "" {
		return nil
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	if homeText != "" {
		matched, ok := team.LookupByText(teams, homeText)
		if ok && matched.ID != g.HomeTeam.ID {
			return fmt.Errorf("%w: scanned home team %q does not match this sheet", ErrInvalidInput, homeText)
		}
	}
	if awayText != "" {
		matched, ok := team.LookupByText(teams, awayText)
		if ok && matched.ID != g.AwayTeam.ID {
			return fmt.Errorf("%w: scanned away team %q does not match this sheet", ErrInvalidInput, awayText)
		}
	}

	return nil
}

// ResolveTeams maps free-form team text from a scan to catalog teams, for
// building a new grid straight from a photo.
func (s *ScanService) ResolveTeams(ctx context.Context, homeText, awayText string) (home, away team.Team, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScanService.ResolveTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return team.Team{}, team.Team{}, fmt.Errorf("list teams: %w", err)
	}

	home, ok := team.LookupByText(teams, homeText)
	if !ok {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: unrecognized home team %q", ErrNotFound, homeText)
	}
	away, ok = team.LookupByText(teams, awayText)
	if !ok {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: unrecognized away team %q", ErrNotFound, awayText)
	}
	if home.ID == away.ID {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: both texts resolve to %s", ErrInvalidInput, home.Name)
	}

	return home, away, nil
}

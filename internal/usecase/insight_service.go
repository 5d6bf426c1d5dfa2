package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/boxpool/boxpool/internal/domain/grid"
)

// WinnerRow is one payout period's outcome as shown on the winners board.
type WinnerRow struct {
	PeriodID  string       `json:"period_id"`
	Label     string       `json:"label"`
	Payout    string       `json:"payout"`
	Finalized bool         `json:"finalized"`
	Current   bool         `json:"current"`
	HasWinner bool         `json:"has_winner"`
	Square    *grid.Square `json:"square,omitempty"`
}

type WinnersView struct {
	GridID string      `json:"grid_id"`
	Rows   []WinnerRow `json:"rows"`
}

// PayoutRow pairs a period label with its payout text.
type PayoutRow struct {
	PeriodID string `json:"period_id"`
	Label    string `json:"label"`
	Payout   string `json:"payout"`
}

type PayoutsView struct {
	GridID  string      `json:"grid_id"`
	Summary string      `json:"summary"`
	Rows    []PayoutRow `json:"rows"`
}

// HuntView lists the owner's near-miss squares for the current score.
type HuntView struct {
	GridID string          `json:"grid_id"`
	Labels []string        `json:"labels"`
	Items  []grid.HuntItem `json:"items"`
}

// WinningsSummary totals what an owner has locked in so far. Determinable is
// false when any won period pays out in custom text or an unknowable split,
// in which case Amount covers only the periods that could be priced.
type WinningsSummary struct {
	GridID       string   `json:"grid_id"`
	Labels       []string `json:"labels"`
	PeriodsWon   []string `json:"periods_won"`
	Amount       float64  `json:"amount"`
	Determinable bool     `json:"determinable"`
}

type InsightService struct {
	gridRepo grid.Repository
}

func NewInsightService(gridRepo grid.Repository) *InsightService {
	return &InsightService{gridRepo: gridRepo}
}

func (s *InsightService) Winners(ctx context.Context, gridID string) (WinnersView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.Winners")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return WinnersView{}, err
	}

	structure := g.ResolvedPool()
	payouts := structure.PayoutDescriptions()
	current, hasCurrent := g.CurrentPeriod()

	periods := structure.Periods()
	rows := make([]WinnerRow, 0, len(periods))
	for i, period := range periods {
		row := WinnerRow{
			PeriodID:  period.ID(),
			Label:     period.Label(),
			Finalized: g.IsPeriodFinalized(period),
			Current:   hasCurrent && current.ID() == period.ID(),
		}
		if i < len(payouts) {
			row.Payout = payouts[i]
		}
		if sq, ok := g.SquareThatWon(period); ok {
			row.HasWinner = true
			row.Square = &sq
		}
		rows = append(rows, row)
	}

	return WinnersView{GridID: g.ID, Rows: rows}, nil
}

func (s *InsightService) Payouts(ctx context.Context, gridID string) (PayoutsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.Payouts")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return PayoutsView{}, err
	}

	structure := g.ResolvedPool()
	payouts := structure.PayoutDescriptions()

	periods := structure.Periods()
	rows := make([]PayoutRow, 0, len(periods))
	for i, period := range periods {
		row := PayoutRow{PeriodID: period.ID(), Label: period.Label()}
		if i < len(payouts) {
			row.Payout = payouts[i]
		}
		rows = append(rows, row)
	}

	return PayoutsView{GridID: g.ID, Summary: structure.Summary(), Rows: rows}, nil
}

// Hunt resolves which labels identify the caller on this sheet, then reports
// their squares that are one scoring play away from winning.
func (s *InsightService) Hunt(ctx context.Context, gridID, ownerName string) (HuntView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.Hunt")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return HuntView{}, err
	}

	labels := g.EffectiveOwnerLabels(ownerName)
	return HuntView{
		GridID: g.ID,
		Labels: labels,
		Items:  g.OnTheHunt(labels),
	}, nil
}

// Winnings sums the payouts an owner has already locked in: only finalized
// periods count, a lead in the current quarter is not money yet.
func (s *InsightService) Winnings(ctx context.Context, gridID, ownerName string) (WinningsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.Winnings")
	defer span.End()

	g, err := s.loadGrid(ctx, gridID)
	if err != nil {
		return WinningsSummary{}, err
	}

	labels := g.EffectiveOwnerLabels(ownerName)
	owned := make(map[string]bool)
	for _, sq := range g.SquaresForOwner(labels) {
		owned[sq.ID] = true
	}

	summary := WinningsSummary{GridID: g.ID, Labels: labels, Determinable: true}
	structure := g.ResolvedPool()
	for i, period := range structure.Periods() {
		if !g.IsPeriodFinalized(period) {
			continue
		}
		sq, ok := g.SquareThatWon(period)
		if !ok || !owned[sq.ID] {
			continue
		}

		summary.PeriodsWon = append(summary.PeriodsWon, period.ID())
		if amount, priced := structure.AmountForPeriod(i); priced {
			summary.Amount += amount
		} else {
			summary.Determinable = false
		}
	}

	return summary, nil
}

func (s *InsightService) loadGrid(ctx context.Context, gridID string) (grid.Grid, error) {
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

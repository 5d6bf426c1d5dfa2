package grid

import (
	"github.com/boxpool/boxpool/internal/domain/game"
	"github.com/boxpool/boxpool/internal/domain/pool"
)

// WinningPosition finds the cell whose column header equals the home digit
// and row header equals the away digit. Absence means the headers are not a
// full permutation yet; callers treat that as "no winner determinable", not
// an error.
func (g Grid) WinningPosition(homeDigit, awayDigit int) (row, col int, ok bool) {
	col = indexOfDigit(g.HomeNumbers, homeDigit)
	row = indexOfDigit(g.AwayNumbers, awayDigit)
	if col < 0 || row < 0 {
		return 0, 0, false
	}
	return row, col, true
}

func indexOfDigit(digits []int, digit int) int {
	for i, d := range digits {
		if d == digit {
			return i
		}
	}
	return -1
}

// SetScore stores an incoming snapshot and recomputes winners from it.
// Frozen quarters are freeze-once: the snapshot may add quarters but never
// change one that is already recorded.
func (g *Grid) SetScore(score game.Score) error {
	if err := score.Validate(); err != nil {
		return err
	}

	if g.CurrentScore != nil {
		merged, err := game.MergeQuarters(g.CurrentScore.Quarters, score.Quarters)
		if err != nil {
			return err
		}
		score.Quarters = merged
	} else {
		score.Quarters = score.Quarters.Clone()
	}

	g.CurrentScore = &score
	g.UpdateWinners()
	return nil
}

// UpdateWinners recomputes every square's winner state from the current
// score. It is a full replace: all winner flags and per-period lists are
// cleared first, then re-derived, so the call is idempotent for identical
// input and earlier quarters stay marked as long as their frozen pairs are
// retained on the snapshot.
func (g *Grid) UpdateWinners() {
	g.clearWinners()

	if g.CurrentScore == nil {
		return
	}
	score := *g.CurrentScore

	structure := g.ResolvedPool()
	for _, period := range structure.Periods() {
		homeDigit, awayDigit, ok := digitsForPeriod(period, score)
		if !ok {
			continue
		}
		row, col, ok := g.WinningPosition(homeDigit, awayDigit)
		if !ok {
			continue
		}

		sq := &g.Squares[row][col]
		sq.IsWinner = true
		if period.Kind == pool.PeriodQuarter {
			sq.QuartersWon = append(sq.QuartersWon, period.Quarter)
		} else {
			sq.PeriodsWon = append(sq.PeriodsWon, period.ID())
		}
	}
}

func (g *Grid) clearWinners() {
	for row := range g.Squares {
		for col := range g.Squares[row] {
			sq := &g.Squares[row][col]
			sq.IsWinner = false
			sq.QuartersWon = nil
			sq.PeriodsWon = nil
		}
	}
}

// digitsForPeriod resolves the score-digit pair a period is judged on.
// Quarter periods only resolve once their pair is frozen; first-score-change
// needs points on the board; score-change periods need a play-by-play feed
// the score source does not supply, so they never resolve from a snapshot.
func digitsForPeriod(period pool.Period, score game.Score) (homeDigit, awayDigit int, ok bool) {
	switch period.Kind {
	case pool.PeriodQuarter:
		line, frozen := score.Quarters.ForQuarter(period.Quarter)
		if !frozen {
			return 0, 0, false
		}
		return line.Home % 10, line.Away % 10, true
	case pool.PeriodHalftime:
		line, frozen := score.Quarters.ForQuarter(2)
		if !frozen {
			return 0, 0, false
		}
		return line.Home % 10, line.Away % 10, true
	case pool.PeriodFirstScoreChange:
		if score.TotalPoints() == 0 {
			return 0, 0, false
		}
		return score.TotalHomeDigit(), score.TotalAwayDigit(), true
	case pool.PeriodFinal, pool.PeriodCustom:
		return score.TotalHomeDigit(), score.TotalAwayDigit(), true
	default:
		return 0, 0, false
	}
}

// SquareThatWon scans for the first square whose winner-tracking fields
// include the given period.
func (g Grid) SquareThatWon(period pool.Period) (Square, bool) {
	for row := range g.Squares {
		for col := range g.Squares[row] {
			sq := g.Squares[row][col]
			if squareWonPeriod(sq, period) {
				return sq, true
			}
		}
	}
	return Square{}, false
}

func squareWonPeriod(sq Square, period pool.Period) bool {
	if period.Kind == pool.PeriodQuarter {
		for _, q := range sq.QuartersWon {
			if q == period.Quarter {
				return true
			}
		}
		return false
	}
	for _, id := range sq.PeriodsWon {
		if id == period.ID() {
			return true
		}
	}
	return false
}

// CurrentPeriod maps the live score to the period presently in progress.
// Custom and per-score-change pools have no determinable current period.
func (g Grid) CurrentPeriod() (pool.Period, bool) {
	if g.CurrentScore == nil {
		return pool.Period{}, false
	}
	score := *g.CurrentScore
	structure := g.ResolvedPool()

	switch structure.Type.Kind {
	case pool.TypeByQuarter:
		for _, period := range structure.Periods() {
			if period.Quarter == score.Quarter {
				return period, true
			}
		}
		return pool.Period{}, false
	case pool.TypeHalftimeOnly:
		if score.Quarter == 2 {
			return pool.Period{Kind: pool.PeriodHalftime}, true
		}
		return pool.Period{}, false
	case pool.TypeFinalOnly:
		if score.IsOver {
			return pool.Period{Kind: pool.PeriodFinal}, true
		}
		return pool.Period{}, false
	case pool.TypeFirstScoreChange:
		if score.TotalPoints() > 0 {
			return pool.Period{Kind: pool.PeriodFirstScoreChange}, true
		}
		return pool.Period{}, false
	case pool.TypeHalftimeAndFinal:
		if score.Quarter <= 2 {
			return pool.Period{Kind: pool.PeriodHalftime}, true
		}
		return pool.Period{Kind: pool.PeriodFinal}, true
	default:
		return pool.Period{}, false
	}
}

// IsPeriodFinalized reports whether a period's outcome is locked. Game over
// finalizes everything; custom and score-change periods finalize only then,
// even when their label plainly describes an earlier milestone.
func (g Grid) IsPeriodFinalized(period pool.Period) bool {
	if g.CurrentScore == nil {
		return false
	}
	score := *g.CurrentScore
	if score.IsOver {
		return true
	}

	switch period.Kind {
	case pool.PeriodQuarter:
		return score.Quarter > period.Quarter
	case pool.PeriodHalftime:
		return score.Quarter >= 3
	case pool.PeriodFirstScoreChange:
		return score.TotalPoints() > 0
	default:
		return false
	}
}

package grid

import (
	"reflect"
	"testing"

	"github.com/boxpool/boxpool/internal/domain/game"
	"github.com/boxpool/boxpool/internal/domain/pool"
)

func identityGrid(t *testing.T) Grid {
	t.Helper()
	g := newTestGrid(t)
	g.HomeNumbers = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	g.AwayNumbers = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	return g
}

func TestUpdateWinners_MarksFrozenQuarter(t *testing.T) {
	g := identityGrid(t)

	err := g.SetScore(game.Score{
		HomeTeam:  testHome,
		AwayTeam:  testAway,
		HomeScore: 7,
		AwayScore: 3,
		Quarter:   2,
		IsActive:  true,
		Quarters:  game.QuarterScores{1: {Home: 7, Away: 3}},
	})
	if err != nil {
		t.Fatalf("set score: %v", err)
	}

	// Identity headers: col = home digit 7, row = away digit 3.
	sq, ok := g.SquareAt(3, 7)
	if !ok || !sq.IsWinner {
		t.Fatalf("expected (3,7) to win q1, got %+v", sq)
	}
	if !reflect.DeepEqual(sq.QuartersWon, []int{1}) {
		t.Fatalf("quarters won: got %v", sq.QuartersWon)
	}

	// Quarter 2 not frozen yet: no other winner.
	winners := 0
	for row := range g.Squares {
		for col := range g.Squares[row] {
			if g.Squares[row][col].IsWinner {
				winners++
			}
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly 1 winning square, got %d", winners)
	}
}

func TestUpdateWinners_IsIdempotent(t *testing.T) {
	g := identityGrid(t)
	score := game.Score{
		HomeTeam:  testHome,
		AwayTeam:  testAway,
		HomeScore: 14,
		AwayScore: 10,
		Quarter:   3,
		IsActive:  true,
		Quarters: game.QuarterScores{
			1: {Home: 7, Away: 3},
			2: {Home: 14, Away: 10},
		},
	}
	if err := g.SetScore(score); err != nil {
		t.Fatalf("set score: %v", err)
	}

	first := g.Clone()
	g.UpdateWinners()
	g.UpdateWinners()

	if !reflect.DeepEqual(first.Squares, g.Squares) {
		t.Fatalf("winner state changed across identical recomputes")
	}

	// Earlier quarters stay marked while their frozen pairs are retained.
	q1, _ := g.SquareAt(3, 7)
	if !reflect.DeepEqual(q1.QuartersWon, []int{1}) {
		t.Fatalf("q1 winner lost after recompute: %+v", q1)
	}
	q2, _ := g.SquareAt(0, 4)
	if !reflect.DeepEqual(q2.QuartersWon, []int{2}) {
		t.Fatalf("q2 winner: %+v", q2)
	}
}

func TestUpdateWinners_HalftimeAndFinal(t *testing.T) {
	g := identityGrid(t)
	g.Pool = &pool.Structure{
		Type:   pool.Type{Kind: pool.TypeHalftimeAndFinal},
		Payout: pool.Payout{Kind: pool.PayoutEqualSplit},
	}

	if err := g.SetScore(game.Score{
		HomeTeam:  testHome,
		AwayTeam:  testAway,
		HomeScore: 27,
		AwayScore: 24,
		Quarter:   4,
		IsOver:    true,
		Quarters: game.QuarterScores{
			1: {Home: 7, Away: 0},
			2: {Home: 14, Away: 10},
			3: {Home: 20, Away: 17},
			4: {Home: 27, Away: 24},
		},
	}); err != nil {
		t.Fatalf("set score: %v", err)
	}

	// Halftime reads the frozen quarter-2 pair (14, 10) -> digits (4, 0).
	half, ok := g.SquareThatWon(pool.Period{Kind: pool.PeriodHalftime})
	if !ok || half.Row != 0 || half.Col != 4 {
		t.Fatalf("halftime winner: got %+v ok=%v", half, ok)
	}
	// Final reads the current total (27, 24) -> digits (7, 4).
	final, ok := g.SquareThatWon(pool.Period{Kind: pool.PeriodFinal})
	if !ok || final.Row != 4 || final.Col != 7 {
		t.Fatalf("final winner: got %+v ok=%v", final, ok)
	}
}

func TestUpdateWinners_FirstScoreChangeNeedsPoints(t *testing.T) {
	g := identityGrid(t)
	g.Pool = &pool.Structure{
		Type:   pool.Type{Kind: pool.TypeFirstScoreChange},
		Payout: pool.Payout{Kind: pool.PayoutEqualSplit},
	}

	if err := g.SetScore(game.Score{HomeTeam: testHome, AwayTeam: testAway, Quarter: 1, IsActive: true}); err != nil {
		t.Fatalf("set scoreless snapshot: %v", err)
	}
	if _, ok := g.SquareThatWon(pool.Period{Kind: pool.PeriodFirstScoreChange}); ok {
		t.Fatalf("0-0 must not resolve a first-score-change winner")
	}

	if err := g.SetScore(game.Score{HomeTeam: testHome, AwayTeam: testAway, HomeScore: 3, Quarter: 1, IsActive: true}); err != nil {
		t.Fatalf("set score: %v", err)
	}
	sq, ok := g.SquareThatWon(pool.Period{Kind: pool.PeriodFirstScoreChange})
	if !ok || sq.Row != 0 || sq.Col != 3 {
		t.Fatalf("first score change winner: got %+v ok=%v", sq, ok)
	}
}

func TestSetScore_FreezeOnceViolation(t *testing.T) {
	g := identityGrid(t)
	base := game.Score{
		HomeTeam: testHome, AwayTeam: testAway,
		HomeScore: 7, AwayScore: 3, Quarter: 2, IsActive: true,
		Quarters: game.QuarterScores{1: {Home: 7, Away: 3}},
	}
	if err := g.SetScore(base); err != nil {
		t.Fatalf("set score: %v", err)
	}

	rewritten := base
	rewritten.Quarters = game.QuarterScores{1: {Home: 10, Away: 3}}
	if err := g.SetScore(rewritten); err == nil {
		t.Fatalf("changing a frozen quarter must be rejected")
	}

	// Adding a new frozen quarter is fine.
	extended := base
	extended.HomeScore, extended.AwayScore, extended.Quarter = 14, 10, 3
	extended.Quarters = game.QuarterScores{2: {Home: 14, Away: 10}}
	if err := g.SetScore(extended); err != nil {
		t.Fatalf("extending quarters: %v", err)
	}
	if _, frozen := g.CurrentScore.Quarters.ForQuarter(1); !frozen {
		t.Fatalf("quarter 1 must survive the merge")
	}
}

func TestCurrentPeriodAndFinalization(t *testing.T) {
	g := identityGrid(t)
	if err := g.SetScore(game.Score{
		HomeTeam: testHome, AwayTeam: testAway,
		HomeScore: 14, AwayScore: 10, Quarter: 3, IsActive: true,
		Quarters: game.QuarterScores{1: {Home: 7, Away: 3}, 2: {Home: 14, Away: 10}},
	}); err != nil {
		t.Fatalf("set score: %v", err)
	}

	period, ok := g.CurrentPeriod()
	if !ok || period.Kind != pool.PeriodQuarter || period.Quarter != 3 {
		t.Fatalf("current period: got %+v ok=%v", period, ok)
	}

	if !g.IsPeriodFinalized(pool.Period{Kind: pool.PeriodQuarter, Quarter: 1}) {
		t.Fatalf("q1 must be finalized in q3")
	}
	if g.IsPeriodFinalized(pool.Period{Kind: pool.PeriodQuarter, Quarter: 3}) {
		t.Fatalf("q3 must not be finalized while in progress")
	}
	if !g.IsPeriodFinalized(pool.Period{Kind: pool.PeriodHalftime}) {
		t.Fatalf("halftime must be finalized from q3 on")
	}
	if g.IsPeriodFinalized(pool.Period{Kind: pool.PeriodFinal}) {
		t.Fatalf("final only finalizes at game over")
	}
	if g.IsPeriodFinalized(pool.Period{Kind: pool.PeriodCustom, CustomID: "inning-3"}) {
		t.Fatalf("custom periods only finalize at game over")
	}

	g.CurrentScore.IsOver = true
	for _, period := range []pool.Period{
		{Kind: pool.PeriodQuarter, Quarter: 4},
		{Kind: pool.PeriodFinal},
		{Kind: pool.PeriodCustom, CustomID: "inning-3"},
		{Kind: pool.PeriodScoreChange, Sequence: 2},
	} {
		if !g.IsPeriodFinalized(period) {
			t.Fatalf("game over must finalize %s", period.ID())
		}
	}
}

func TestRandomizeNumbers_RecomputesWinners(t *testing.T) {
	g := identityGrid(t)
	if err := g.SetScore(game.Score{
		HomeTeam: testHome, AwayTeam: testAway,
		HomeScore: 7, AwayScore: 3, Quarter: 2, IsActive: true,
		Quarters: game.QuarterScores{1: {Home: 7, Away: 3}},
	}); err != nil {
		t.Fatalf("set score: %v", err)
	}

	g.RandomizeNumbers()
	if err := g.Validate(); err != nil {
		t.Fatalf("randomized grid must stay valid: %v", err)
	}

	// The q1 winner must sit wherever the new headers put digits (7,3).
	row, col, ok := g.WinningPosition(7, 3)
	if !ok {
		t.Fatalf("digits must be resolvable after reshuffle")
	}
	sq, _ := g.SquareAt(row, col)
	if !sq.IsWinner {
		t.Fatalf("winner state must follow the reshuffled headers")
	}
}

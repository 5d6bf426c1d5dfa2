package grid

import (
	"testing"
	"time"

	"github.com/boxpool/boxpool/internal/domain/team"
)

var (
	testHome = team.Team{ID: "kc", Name: "Kansas City Chiefs", Abbreviation: "KC"}
	testAway = team.Team{ID: "sf", Name: "San Francisco 49ers", Abbreviation: "SF"}
	testNow  = time.Date(2026, 2, 8, 18, 30, 0, 0, time.UTC)
)

func newTestGrid(t *testing.T) Grid {
	t.Helper()
	g := New("grid-001", "Office Pool", testHome, testAway, testNow)
	if err := g.Validate(); err != nil {
		t.Fatalf("fresh grid must be valid: %v", err)
	}
	return g
}

func TestNew_ProducesValidPermutationsAndMatrix(t *testing.T) {
	g := newTestGrid(t)

	for _, digits := range [][]int{g.HomeNumbers, g.AwayNumbers} {
		var seen [Size]bool
		for _, d := range digits {
			if d < 0 || d >= Size || seen[d] {
				t.Fatalf("digits are not a permutation of 0-9: %v", digits)
			}
			seen[d] = true
		}
	}

	if len(g.Squares) != Size {
		t.Fatalf("expected %d rows, got %d", Size, len(g.Squares))
	}
	for row := range g.Squares {
		for col := range g.Squares[row] {
			sq := g.Squares[row][col]
			if sq.Row != row || sq.Col != col {
				t.Fatalf("square at (%d,%d) stores (%d,%d)", row, col, sq.Row, sq.Col)
			}
			if sq.Claimed() {
				t.Fatalf("fresh square (%d,%d) must be unclaimed", row, col)
			}
		}
	}
}

func TestWinningPosition_RoundTrips(t *testing.T) {
	g := newTestGrid(t)

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			gotRow, gotCol, ok := g.WinningPosition(g.HomeNumbers[col], g.AwayNumbers[row])
			if !ok || gotRow != row || gotCol != col {
				t.Fatalf("round trip (%d,%d): got (%d,%d) ok=%v", row, col, gotRow, gotCol, ok)
			}
		}
	}
}

func TestWinningPosition_MissingDigit(t *testing.T) {
	g := newTestGrid(t)
	g.HomeNumbers = []int{} // headers not assigned yet

	if _, _, ok := g.WinningPosition(7, 3); ok {
		t.Fatalf("expected no winner determinable without headers")
	}
}

func TestValidate_RejectsBrokenInvariants(t *testing.T) {
	g := newTestGrid(t)
	g.HomeNumbers = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 8}
	if err := g.Validate(); err == nil {
		t.Fatalf("duplicate digit must fail validation")
	}

	g = newTestGrid(t)
	g.Squares = g.Squares[:9]
	if err := g.Validate(); err == nil {
		t.Fatalf("truncated matrix must fail validation")
	}

	g = newTestGrid(t)
	g.Squares[4][7].Row = 5
	if err := g.Validate(); err == nil {
		t.Fatalf("mismatched stored position must fail validation")
	}
}

func TestSquareAt_Bounds(t *testing.T) {
	g := newTestGrid(t)

	if _, ok := g.SquareAt(-1, 0); ok {
		t.Fatalf("negative row must be no-such-cell")
	}
	if _, ok := g.SquareAt(0, Size); ok {
		t.Fatalf("column past the edge must be no-such-cell")
	}
	sq, ok := g.SquareAt(3, 4)
	if !ok || sq.Row != 3 || sq.Col != 4 {
		t.Fatalf("in-range read: got %+v ok=%v", sq, ok)
	}
}

func TestPlayersAndFillState(t *testing.T) {
	g := newTestGrid(t)
	if g.FilledCount() != 0 || g.IsComplete() {
		t.Fatalf("fresh grid must be empty")
	}

	mustSet := func(row, col int, name string) {
		t.Helper()
		if err := g.SetPlayerName(row, col, name); err != nil {
			t.Fatalf("set player name: %v", err)
		}
	}
	mustSet(0, 0, "Mike")
	mustSet(0, 1, " Sarah ")
	mustSet(9, 9, "Mike")
	mustSet(5, 5, "   ")

	if got := g.FilledCount(); got != 3 {
		t.Fatalf("filled count: got %d, want 3", got)
	}
	players := g.AllPlayers()
	if len(players) != 2 || players[0] != "Mike" || players[1] != "Sarah" {
		t.Fatalf("all players: got %v", players)
	}

	if err := g.SetPlayerName(10, 0, "Out"); err == nil {
		t.Fatalf("out-of-range claim must error")
	}
}

func TestClone_IsDeep(t *testing.T) {
	g := newTestGrid(t)
	if err := g.SetPlayerName(2, 2, "Mike"); err != nil {
		t.Fatalf("set player name: %v", err)
	}

	clone := g.Clone()
	clone.Squares[2][2].PlayerName = "Hijacked"
	clone.HomeNumbers[0], clone.HomeNumbers[1] = clone.HomeNumbers[1], clone.HomeNumbers[0]

	if g.Squares[2][2].PlayerName != "Mike" {
		t.Fatalf("clone shares square storage with original")
	}
}

// Package grid is the squares-pool engine: a 10x10 board of player-owned
// squares keyed by the last digit of each team's score, plus the winner
// resolution and ownership matching that runs over it.
package grid

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/boxpool/boxpool/internal/domain/game"
	"github.com/boxpool/boxpool/internal/domain/pool"
	"github.com/boxpool/boxpool/internal/domain/team"
)

// Size is the fixed board dimension. Squares pools are always 10x10 because
// positions are keyed by score digits 0-9.
const Size = 10

// Square is one board cell. Position is fixed at creation; the winner fields
// are recomputed wholesale on every score update.
type Square struct {
	ID          string
	PlayerName  string
	Row         int
	Col         int
	IsWinner    bool
	QuartersWon []int
	PeriodsWon  []string
}

// Claimed reports whether anyone has written a name into the square.
func (s Square) Claimed() bool {
	return strings.TrimSpace(s.PlayerName) != ""
}

// Grid is one squares pool board.
type Grid struct {
	ID           string
	Name         string
	HomeTeam     team.Team
	AwayTeam     team.Team
	HomeNumbers  []int      // column header digits for the home team
	AwayNumbers  []int      // row header digits for the away team
	Squares      [][]Square // [row][col]
	Pool         *pool.Structure
	OwnerLabels  []string
	SharedCode   string
	CurrentScore *game.Score
	CreatedAt    time.Time
	LastModified time.Time
}

// New builds a grid with empty squares and freshly shuffled digit headers.
func New(id, name string, home, away team.Team, now time.Time) Grid {
	squares := make([][]Square, Size)
	for row := 0; row < Size; row++ {
		squares[row] = make([]Square, Size)
		for col := 0; col < Size; col++ {
			squares[row][col] = Square{
				ID:  squareID(id, row, col),
				Row: row,
				Col: col,
			}
		}
	}

	return Grid{
		ID:           id,
		Name:         name,
		HomeTeam:     home,
		AwayTeam:     away,
		HomeNumbers:  randomPermutation(),
		AwayNumbers:  randomPermutation(),
		Squares:      squares,
		CreatedAt:    now,
		LastModified: now,
	}
}

func squareID(gridID string, row, col int) string {
	return fmt.Sprintf("%s-%d-%d", gridID, row, col)
}

func randomPermutation() []int {
	digits := make([]int, Size)
	for i := range digits {
		digits[i] = i
	}
	rand.Shuffle(Size, func(i, j int) {
		digits[i], digits[j] = digits[j], digits[i]
	})
	return digits
}

// Validate checks the structural invariants that everything else relies on.
// A violation means upstream state is corrupt, not that input was merely odd.
func (g Grid) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("grid id is required")
	}
	if err := validatePermutation("homeNumbers", g.HomeNumbers); err != nil {
		return err
	}
	if err := validatePermutation("awayNumbers", g.AwayNumbers); err != nil {
		return err
	}

	if len(g.Squares) != Size {
		return fmt.Errorf("square matrix must have %d rows, got %d", Size, len(g.Squares))
	}
	for row := range g.Squares {
		if len(g.Squares[row]) != Size {
			return fmt.Errorf("square matrix row %d must have %d cells, got %d", row, Size, len(g.Squares[row]))
		}
		for col := range g.Squares[row] {
			sq := g.Squares[row][col]
			if sq.Row != row || sq.Col != col {
				return fmt.Errorf("square at (%d,%d) stores position (%d,%d)", row, col, sq.Row, sq.Col)
			}
		}
	}

	return nil
}

func validatePermutation(field string, digits []int) error {
	if len(digits) != Size {
		return fmt.Errorf("%s must hold %d digits, got %d", field, Size, len(digits))
	}
	var seen [Size]bool
	for _, d := range digits {
		if d < 0 || d >= Size {
			return fmt.Errorf("%s contains out-of-range digit %d", field, d)
		}
		if seen[d] {
			return fmt.Errorf("%s contains duplicate digit %d", field, d)
		}
		seen[d] = true
	}
	return nil
}

// ResolvedPool returns the pool structure, falling back to the standard
// quarterly pool for grids persisted before structures existed.
func (g Grid) ResolvedPool() pool.Structure {
	if g.Pool != nil {
		return *g.Pool
	}
	return pool.DefaultStructure()
}

// SquareAt is a bounds-checked cell read. Out-of-range is a legitimate "no
// such cell", never a panic.
func (g Grid) SquareAt(row, col int) (Square, bool) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return Square{}, false
	}
	if len(g.Squares) != Size || len(g.Squares[row]) != Size {
		return Square{}, false
	}
	return g.Squares[row][col], true
}

// SetPlayerName claims (or unclaims, with an empty name) one square.
func (g *Grid) SetPlayerName(row, col int, name string) error {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return fmt.Errorf("square position (%d,%d) is out of range", row, col)
	}
	g.Squares[row][col].PlayerName = strings.TrimSpace(name)
	return nil
}

// RandomizeNumbers reshuffles both digit headers. Winner state derived from
// the old headers would lie, so winners are recomputed against the new ones.
func (g *Grid) RandomizeNumbers() {
	g.HomeNumbers = randomPermutation()
	g.AwayNumbers = randomPermutation()
	g.UpdateWinners()
}

// AllPlayers returns the sorted distinct non-empty player names on the board.
func (g Grid) AllPlayers() []string {
	seen := make(map[string]struct{})
	for row := range g.Squares {
		for col := range g.Squares[row] {
			name := strings.TrimSpace(g.Squares[row][col].PlayerName)
			if name == "" {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FilledCount is the number of claimed squares.
func (g Grid) FilledCount() int {
	count := 0
	for row := range g.Squares {
		for col := range g.Squares[row] {
			if g.Squares[row][col].Claimed() {
				count++
			}
		}
	}
	return count
}

// IsComplete reports whether every square is claimed.
func (g Grid) IsComplete() bool {
	return g.FilledCount() == Size*Size
}

// Clone deep-copies the grid so callers never share mutable square state.
func (g Grid) Clone() Grid {
	out := g
	out.HomeNumbers = append([]int(nil), g.HomeNumbers...)
	out.AwayNumbers = append([]int(nil), g.AwayNumbers...)
	out.OwnerLabels = append([]string(nil), g.OwnerLabels...)

	out.Squares = make([][]Square, len(g.Squares))
	for row := range g.Squares {
		out.Squares[row] = make([]Square, len(g.Squares[row]))
		for col := range g.Squares[row] {
			sq := g.Squares[row][col]
			sq.QuartersWon = append([]int(nil), sq.QuartersWon...)
			sq.PeriodsWon = append([]string(nil), sq.PeriodsWon...)
			out.Squares[row][col] = sq
		}
	}

	if g.Pool != nil {
		p := *g.Pool
		out.Pool = &p
	}
	if g.CurrentScore != nil {
		score := *g.CurrentScore
		score.Quarters = g.CurrentScore.Quarters.Clone()
		out.CurrentScore = &score
	}

	return out
}

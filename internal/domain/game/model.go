// Package game holds the live-score snapshot shape handed to the grid engine.
// A snapshot is always complete: the score source never sends partial state.
package game

import (
	"fmt"

	"github.com/boxpool/boxpool/internal/domain/team"
)

// QuarterLine is one frozen quarter's score pair. Both values are always
// present together; a quarter with only one side known is not recorded.
type QuarterLine struct {
	Home int
	Away int
}

// QuarterScores records frozen quarter results, keyed by quarter 1-4. Once a
// quarter is present it never changes; score corrections arrive as a fresh
// snapshot with the corrected pair.
type QuarterScores map[int]QuarterLine

// ForQuarter returns the frozen pair for quarter n if it exists.
func (q QuarterScores) ForQuarter(n int) (QuarterLine, bool) {
	line, ok := q[n]
	return line, ok
}

// Clone copies the map so snapshots stay independent.
func (q QuarterScores) Clone() QuarterScores {
	if q == nil {
		return nil
	}
	out := make(QuarterScores, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// Score is a point-in-time view of one game.
type Score struct {
	HomeTeam  team.Team
	AwayTeam  team.Team
	HomeScore int
	AwayScore int
	Quarter   int
	Clock     string
	IsActive  bool
	IsOver    bool
	Quarters  QuarterScores
}

func (s Score) Validate() error {
	if s.HomeScore < 0 || s.AwayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	if s.Quarter < 0 {
		return fmt.Errorf("quarter cannot be negative")
	}
	for n := range s.Quarters {
		if n < 1 || n > 4 {
			return fmt.Errorf("quarter scores keyed by quarter 1-4, got %d", n)
		}
	}

	return nil
}

// TotalHomeDigit and TotalAwayDigit are the grid-facing last digits of the
// current totals.
func (s Score) TotalHomeDigit() int { return s.HomeScore % 10 }
func (s Score) TotalAwayDigit() int { return s.AwayScore % 10 }

// TotalPoints is the combined score, used to detect the first score change.
func (s Score) TotalPoints() int { return s.HomeScore + s.AwayScore }

// MergeQuarters enforces freeze-once-set: the incoming snapshot may introduce
// quarters the previous one lacked, but an already-frozen pair must survive
// unchanged. Returns the union or an error naming the violated quarter.
func MergeQuarters(previous, incoming QuarterScores) (QuarterScores, error) {
	if len(previous) == 0 {
		return incoming.Clone(), nil
	}

	out := previous.Clone()
	for n, line := range incoming {
		if frozen, ok := out[n]; ok {
			if frozen != line {
				return nil, fmt.Errorf("quarter %d already frozen at %d-%d", n, frozen.Home, frozen.Away)
			}
			continue
		}
		out[n] = line
	}

	return out, nil
}

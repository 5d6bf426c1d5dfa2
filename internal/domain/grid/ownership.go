package grid

import (
	"strings"

	"github.com/boxpool/boxpool/internal/platform/textmatch"
)

// SquaresForOwner returns every square claimed by one of the owner labels.
// A square matches when its normalized name equals any normalized label;
// fuzzy matching is only consulted for squares with no exact hit at all, so
// an exact claim always beats a similar-looking one.
func (g Grid) SquaresForOwner(labels []string) []Square {
	keys := textmatch.NormalizeAll(labels)
	if len(keys) == 0 {
		return nil
	}

	out := make([]Square, 0, 4)
	for row := range g.Squares {
		for col := range g.Squares[row] {
			sq := g.Squares[row][col]
			cell := textmatch.Normalize(sq.PlayerName)
			if cell == "" {
				continue
			}
			if textmatch.MatchesExact(cell, keys) || textmatch.MatchesFuzzy(cell, keys) {
				out = append(out, sq)
			}
		}
	}

	return out
}

// EffectiveOwnerLabels resolves which labels identify the current user on
// this sheet: the grid's own stored labels when present, else the global
// display name, else nothing.
func (g Grid) EffectiveOwnerLabels(globalName string) []string {
	labels := make([]string, 0, len(g.OwnerLabels))
	for _, label := range g.OwnerLabels {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			continue
		}
		labels = append(labels, trimmed)
	}
	if len(labels) > 0 {
		return labels
	}

	if trimmed := strings.TrimSpace(globalName); trimmed != "" {
		return []string{trimmed}
	}

	return nil
}

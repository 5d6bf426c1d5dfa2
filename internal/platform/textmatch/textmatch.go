// Package textmatch matches noisy, OCR-derived name labels against owner keys.
// Scanned grid sheets arrive with handwriting and OCR artifacts, so matching
// runs on a normalized form first and falls back to edit-distance similarity.
package textmatch

import (
	"strings"
	"unicode"
)

// SimilarityThreshold is the minimum similarity for a fuzzy match. Winner
// payouts depend on ownership resolution, so the threshold is frozen; changing
// it silently reassigns money between players.
const SimilarityThreshold = 0.75

// ocrSubstitutions maps digits that OCR commonly reads in place of letters.
var ocrSubstitutions = map[rune]rune{
	'0': 'o',
	'1': 'l',
	'5': 's',
}

// Normalize lowers, strips all whitespace, and applies the OCR substitution
// table. Two labels that normalize equal are treated as the same owner.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if unicode.IsSpace(r) {
			continue
		}
		if sub, ok := ocrSubstitutions[r]; ok {
			r = sub
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeAll normalizes every label and drops the ones that normalize to
// empty. Order is preserved.
func NormalizeAll(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		normalized := Normalize(label)
		if normalized == "" {
			continue
		}
		out = append(out, normalized)
	}
	return out
}

// EditDistance is the classic Levenshtein distance with unit costs for
// insertion, deletion, and substitution. The DP keeps a single rolling row
// over the shorter string, so space is O(min(len(a), len(b))).
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		prevDiag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			sub := prevDiag + cost
			del := row[j] + 1
			ins := row[j-1] + 1

			next := sub
			if del < next {
				next = del
			}
			if ins < next {
				next = ins
			}

			prevDiag = row[j]
			row[j] = next
		}
	}

	return row[len(rb)]
}

// Similarity is 1 - distance/max(len). Inputs are expected to be normalized
// already; an empty input never resembles anything.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	return 1 - float64(EditDistance(a, b))/float64(max)
}

// MatchesExact reports whether the normalized cell text equals any normalized
// owner key.
func MatchesExact(normalizedCell string, normalizedKeys []string) bool {
	if normalizedCell == "" {
		return false
	}
	for _, key := range normalizedKeys {
		if normalizedCell == key {
			return true
		}
	}
	return false
}

// MatchesFuzzy reports whether the normalized cell text is similar enough to
// any normalized owner key. Callers only reach for this after MatchesExact
// came up empty.
func MatchesFuzzy(normalizedCell string, normalizedKeys []string) bool {
	if normalizedCell == "" {
		return false
	}
	for _, key := range normalizedKeys {
		if key == "" {
			continue
		}
		if Similarity(normalizedCell, key) >= SimilarityThreshold {
			return true
		}
	}
	return false
}

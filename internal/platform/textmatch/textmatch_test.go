package textmatch

import "testing"

func TestNormalize_CollapsesOCRNoise(t *testing.T) {
	if got := Normalize("Mike"); got != "mike" {
		t.Fatalf("normalize Mike: got %q", got)
	}
	if Normalize("M i k e") != "mike" {
		t.Fatalf("expected whitespace stripped")
	}
	// 1 -> l, not i: "M1ke" lands on "mlke" and only matches "Mike" fuzzily.
	if got := Normalize("M1ke"); got != "mlke" {
		t.Fatalf("normalize M1ke: got %q", got)
	}
	if got := Normalize(" J0hn 5mith "); got != "johnsmith" {
		t.Fatalf("normalize OCR digits: got %q", got)
	}
	if Normalize("   ") != "" {
		t.Fatalf("expected whitespace-only label to normalize empty")
	}
}

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"mike", "mikey", 1},
		{"a", "b", 1},
	}
	for _, tc := range cases {
		if got := EditDistance(tc.a, tc.b); got != tc.want {
			t.Fatalf("editDistance(%q,%q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
	// Symmetric.
	if EditDistance("flaw", "lawn") != EditDistance("lawn", "flaw") {
		t.Fatalf("expected symmetric distance")
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("mike", "mike"); got != 1.0 {
		t.Fatalf("identical strings: got %v", got)
	}
	if got := Similarity("", "mike"); got != 0 {
		t.Fatalf("empty string: got %v", got)
	}
	// "mikecapace" vs "mikeocopec": distance 4 over length 10 is 0.6.
	// Heavier OCR noise than the threshold tolerates stays unmatched.
	if got := EditDistance(Normalize("Mike Capace"), Normalize("Mike o Copec")); got != 4 {
		t.Fatalf("noisy owner pair distance: got %d, want 4", got)
	}
	if got := Similarity(Normalize("Mike Capace"), Normalize("Mike o Copec")); got >= SimilarityThreshold {
		t.Fatalf("0.6 similarity must not clear the threshold, got %v", got)
	}
	if got := Similarity(Normalize("Bob"), Normalize("Alice")); got >= SimilarityThreshold {
		t.Fatalf("unrelated names must not match, got %v", got)
	}
}

func TestMatches_ThresholdIsLiteral(t *testing.T) {
	keys := NormalizeAll([]string{"Mike"})

	// "M1ke" normalizes to "mlke": no exact hit, fuzzy 1 - 1/4 = 0.75.
	cell := Normalize("M1ke")
	if MatchesExact(cell, keys) {
		t.Fatalf("mlke must not match mike exactly")
	}
	if !MatchesFuzzy(cell, keys) {
		t.Fatalf("mlke vs mike is exactly at threshold and must match")
	}

	// "Mikey" vs "Mike": 1 - 1/5 = 0.8 >= 0.75, so the rule says it matches.
	// That is the documented behavior, not an accident.
	if !MatchesFuzzy(Normalize("Mikey"), keys) {
		t.Fatalf("mikey vs mike is 0.8 similarity and must match")
	}

	if MatchesFuzzy("", keys) {
		t.Fatalf("empty cell text must never match")
	}
	if MatchesExact("", keys) {
		t.Fatalf("empty cell text must never match exactly")
	}
}

func TestNormalizeAll_DropsEmpties(t *testing.T) {
	got := NormalizeAll([]string{" Mike ", "", "  ", "Sarah K"})
	if len(got) != 2 || got[0] != "mike" || got[1] != "sarahk" {
		t.Fatalf("unexpected normalized labels: %v", got)
	}
}

package team

import "testing"

func sampleTeams() []Team {
	return []Team{
		{ID: "kc", Name: "Kansas City Chiefs", Abbreviation: "KC"},
		{ID: "sf", Name: "San Francisco 49ers", Abbreviation: "SF"},
		{ID: "phi", Name: "Philadelphia Eagles", Abbreviation: "PHI"},
	}
}

func TestLookupByText_AbbreviationToken(t *testing.T) {
	got, ok := LookupByText(sampleTeams(), "KC")
	if !ok || got.ID != "kc" {
		t.Fatalf("expected kc, got %+v ok=%v", got, ok)
	}

	// Delimited token inside a longer scanned header.
	got, ok = LookupByText(sampleTeams(), "Home: KC (AFC)")
	if !ok || got.ID != "kc" {
		t.Fatalf("expected kc from delimited token, got %+v ok=%v", got, ok)
	}

	// Abbreviation embedded in another word must not match.
	if _, ok := LookupByText(sampleTeams(), "KCHIEFS"); ok {
		t.Fatalf("embedded abbreviation must not match")
	}
}

func TestLookupByText_NameVariants(t *testing.T) {
	got, ok := LookupByText(sampleTeams(), "philadelphia eagles")
	if !ok || got.ID != "phi" {
		t.Fatalf("full name: got %+v ok=%v", got, ok)
	}

	// Partial team name from a cropped scan.
	got, ok = LookupByText(sampleTeams(), "Eagles")
	if !ok || got.ID != "phi" {
		t.Fatalf("partial name: got %+v ok=%v", got, ok)
	}
}

func TestLookupByText_RejectsSingleCharacter(t *testing.T) {
	if _, ok := LookupByText(sampleTeams(), "K"); ok {
		t.Fatalf("single-character token must be rejected")
	}
	if _, ok := LookupByText(sampleTeams(), " "); ok {
		t.Fatalf("blank token must be rejected")
	}
}

func TestTeamValidate(t *testing.T) {
	valid := Team{ID: "kc", Name: "Kansas City Chiefs", Abbreviation: "KC"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid team: %v", err)
	}
	if err := (Team{Name: "x", Abbreviation: "X2"}).Validate(); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

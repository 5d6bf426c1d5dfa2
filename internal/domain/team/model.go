package team

import (
	"fmt"
	"strings"
)

// Team is an NFL club pinned to one side of a squares grid.
type Team struct {
	ID             string
	Name           string
	Abbreviation   string
	PrimaryColor   string
	SecondaryColor string
	LogoURL        string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Abbreviation == "" {
		return fmt.Errorf("team abbreviation is required")
	}

	return nil
}

// LookupByText resolves a team from raw scanned header text. Single-character
// tokens are rejected outright: initials on a hand-drawn sheet match half the
// league. The abbreviation must appear as a delimited token; the name may
// match in full or as a substring.
func LookupByText(teams []Team, raw string) (Team, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if len(text) <= 1 {
		return Team{}, false
	}

	for _, t := range teams {
		abbr := strings.ToLower(t.Abbreviation)
		if abbr != "" && containsToken(text, abbr) {
			return t, true
		}

		name := strings.ToLower(t.Name)
		if name == "" {
			continue
		}
		if text == name || strings.Contains(text, name) || strings.Contains(name, text) {
			return t, true
		}
	}

	return Team{}, false
}

func containsToken(text, token string) bool {
	start := 0
	for start < len(text) {
		idx := strings.Index(text[start:], token)
		if idx < 0 {
			return false
		}
		idx += start

		before := idx == 0 || isDelimiter(text[idx-1])
		afterIdx := idx + len(token)
		after := afterIdx == len(text) || isDelimiter(text[afterIdx])
		if before && after {
			return true
		}
		start = idx + 1
	}

	return false
}

func isDelimiter(c byte) bool {
	return !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9')
}

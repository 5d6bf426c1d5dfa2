package grid

import (
	"testing"

	"github.com/boxpool/boxpool/internal/domain/game"
)

func huntGrid(t *testing.T) Grid {
	t.Helper()
	g := identityGrid(t)
	if err := g.SetScore(game.Score{
		HomeTeam: testHome, AwayTeam: testAway,
		HomeScore: 14, AwayScore: 10, Quarter: 2, IsActive: true,
	}); err != nil {
		t.Fatalf("set score: %v", err)
	}
	return g
}

func TestOnTheHunt_HomeFieldGoalAway(t *testing.T) {
	g := huntGrid(t)
	// Away digit 0 already matches; home needs 14 -> 17, a 3-point swing.
	if err := g.SetPlayerName(0, 7, "Mike"); err != nil {
		t.Fatalf("set player: %v", err)
	}

	items := g.OnTheHunt([]string{"Mike"})
	if len(items) != 1 {
		t.Fatalf("expected 1 hunt item, got %d: %+v", len(items), items)
	}
	item := items[0]
	if item.Side != HuntSideHome || item.Delta != 3 || item.Urgency != HuntFieldGoal {
		t.Fatalf("hunt item: %+v", item)
	}
}

func TestOnTheHunt_UrgencyBuckets(t *testing.T) {
	g := huntGrid(t)
	// All on the matching home digit 4, away needing ever-bigger swings.
	if err := g.SetPlayerName(3, 4, "Mike"); err != nil { // away 10 -> 13
		t.Fatalf("set player: %v", err)
	}
	if err := g.SetPlayerName(6, 4, "Mike"); err != nil { // away 10 -> 16
		t.Fatalf("set player: %v", err)
	}
	if err := g.SetPlayerName(8, 4, "Mike"); err != nil { // away 10 -> 18
		t.Fatalf("set player: %v", err)
	}

	want := map[int]HuntUrgency{3: HuntFieldGoal, 6: HuntTouchdown, 8: HuntClose}
	items := g.OnTheHunt([]string{"Mike"})
	if len(items) != len(want) {
		t.Fatalf("expected %d hunt items, got %d: %+v", len(want), len(items), items)
	}
	for _, item := range items {
		if item.Side != HuntSideAway {
			t.Fatalf("expected away side, got %+v", item)
		}
		if urgency, ok := want[item.Delta]; !ok || item.Urgency != urgency {
			t.Fatalf("delta %d: got %s", item.Delta, item.Urgency)
		}
	}
}

func TestOnTheHunt_ExcludesOutrightWinnersAndFarMisses(t *testing.T) {
	g := huntGrid(t)
	// (0, 4) matches both digits: winning, not hunting.
	if err := g.SetPlayerName(0, 4, "Mike"); err != nil {
		t.Fatalf("set player: %v", err)
	}
	// (7, 9) matches neither digit.
	if err := g.SetPlayerName(7, 9, "Mike"); err != nil {
		t.Fatalf("set player: %v", err)
	}

	if items := g.OnTheHunt([]string{"Mike"}); len(items) != 0 {
		t.Fatalf("expected no hunt items, got %+v", items)
	}
}

func TestOnTheHunt_NoScoreYet(t *testing.T) {
	g := identityGrid(t)
	if err := g.SetPlayerName(0, 0, "Mike"); err != nil {
		t.Fatalf("set player: %v", err)
	}
	if items := g.OnTheHunt([]string{"Mike"}); items != nil {
		t.Fatalf("no snapshot means no hunt, got %+v", items)
	}
}

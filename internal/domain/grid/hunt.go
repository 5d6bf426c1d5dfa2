package grid

// HuntUrgency buckets how big a scoring play would close the gap.
type HuntUrgency string

const (
	HuntFieldGoal HuntUrgency = "ONE_FIELD_GOAL" // delta 1-3: field goal or safety territory
	HuntTouchdown HuntUrgency = "ONE_TOUCHDOWN"  // delta 4-6
	HuntClose     HuntUrgency = "CLOSE"          // delta 7-9
)

// HuntSide names which team has to score for the square to hit.
type HuntSide string

const (
	HuntSideHome HuntSide = "HOME"
	HuntSideAway HuntSide = "AWAY"
)

// HuntItem is one owned square that is a single score away from winning.
type HuntItem struct {
	Square  Square
	Side    HuntSide
	Delta   int
	Urgency HuntUrgency
}

// OnTheHunt reports the owner's near-miss squares against the current score.
// A square is on the hunt when one team's last digit already matches and the
// other team needs a 1-9 point digit swing; squares matching both digits are
// already winning and excluded.
func (g Grid) OnTheHunt(labels []string) []HuntItem {
	if g.CurrentScore == nil {
		return nil
	}
	score := *g.CurrentScore

	out := make([]HuntItem, 0, 4)
	for _, sq := range g.SquaresForOwner(labels) {
		homeTarget := digitAt(g.HomeNumbers, sq.Col)
		awayTarget := digitAt(g.AwayNumbers, sq.Row)
		if homeTarget < 0 || awayTarget < 0 {
			continue
		}

		homeDelta := digitDelta(score.TotalHomeDigit(), homeTarget)
		awayDelta := digitDelta(score.TotalAwayDigit(), awayTarget)

		switch {
		case homeDelta == 10 && awayDelta == 10:
			// Already matching both digits: winning outright, not hunting.
		case awayDelta == 10 && homeDelta >= 1 && homeDelta <= 9:
			out = append(out, HuntItem{Square: sq, Side: HuntSideHome, Delta: homeDelta, Urgency: urgencyForDelta(homeDelta)})
		case homeDelta == 10 && awayDelta >= 1 && awayDelta <= 9:
			out = append(out, HuntItem{Square: sq, Side: HuntSideAway, Delta: awayDelta, Urgency: urgencyForDelta(awayDelta)})
		}
	}

	return out
}

func digitAt(digits []int, index int) int {
	if index < 0 || index >= len(digits) {
		return -1
	}
	return digits[index]
}

// digitDelta is the minimal positive points (mod 10) the team must add for
// its last digit to reach target; 10 means the digit already matches.
func digitDelta(current, target int) int {
	d := (target - current + 10) % 10
	if d == 0 {
		return 10
	}
	return d
}

func urgencyForDelta(delta int) HuntUrgency {
	switch {
	case delta <= 3:
		return HuntFieldGoal
	case delta <= 6:
		return HuntTouchdown
	default:
		return HuntClose
	}
}

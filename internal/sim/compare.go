package sim

import "github.com/mevric/tpgkit/internal/domain/model"

// Comparison reports how a synthetic round diverged from the
// historically recorded one for the same target. It is a reporting
// side-channel only; nothing in scoring depends on it.
type Comparison struct {
	Round string

	WinnerChanged bool
	OldWinner     string
	NewWinner     string

	// Populated only when a tracked player is given and present in
	// both rounds.
	TrackedPlayer string
	RankChanged   bool
	OldRank       int
	NewRank       int
	LocationMoved bool
	OldLocation   model.Point
	NewLocation   model.Point
}

// Diverged reports whether anything noteworthy changed.
func (c Comparison) Diverged() bool {
	return c.WinnerChanged || c.RankChanged || c.LocationMoved
}

// Compare diffs a synthetic round against the historical one. The
// historical round must be scored for the winner diff to apply; an
// unscored historical round yields no winner divergence.
func Compare(historical, synthetic model.Round, trackedPlayer string) Comparison {
	c := Comparison{Round: synthetic.DisplayName()}

	if historical.IsScored() {
		oldWinners := historical.Winners()
		newWinners := synthetic.Winners()
		if len(oldWinners) > 0 && len(newWinners) > 0 {
			c.OldWinner = oldWinners[0]
			c.NewWinner = newWinners[0]
			c.WinnerChanged = c.OldWinner != c.NewWinner
		}
	}

	if trackedPlayer == "" {
		return c
	}
	oldSub, oldOK := findSubmission(historical, trackedPlayer)
	newSub, newOK := findSubmission(synthetic, trackedPlayer)
	if !oldOK || !newOK {
		return c
	}
	c.TrackedPlayer = trackedPlayer
	if oldSub.Scored() && newSub.Scored() && oldSub.Rank != newSub.Rank {
		c.RankChanged = true
		c.OldRank = oldSub.Rank
		c.NewRank = newSub.Rank
	}
	if oldSub.Location != newSub.Location {
		c.LocationMoved = true
		c.OldLocation = oldSub.Location
		c.NewLocation = newSub.Location
	}
	return c
}

func findSubmission(r model.Round, player string) (model.Submission, bool) {
	for _, sub := range r.Submissions {
		if sub.Player == player {
			return sub, true
		}
	}
	return model.Submission{}, false
}

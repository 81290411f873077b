package model

import "fmt"

// Submission is one player's entry in a round. Distance, Score and Rank
// are computed by the round scorer; Rank is zero until then.
type Submission struct {
	Player   string `json:"player"`
	Location Point  `json:"location"`

	// Manually confirmed special cases that override distance scoring.
	IsFivek         bool `json:"is_fivek,omitempty"`
	IsAntipodeFivek bool `json:"is_antipode_fivek,omitempty"`

	// Computed by the round scorer.
	Distance float64 `json:"distance,omitempty"` // metres
	Bearing  float64 `json:"bearing,omitempty"`  // degrees, target-relative
	Score    float64 `json:"score,omitempty"`
	Rank     int     `json:"rank,omitempty"` // 1 = best; ties share a rank
}

// Scored reports whether the submission has been through the scorer.
func (s Submission) Scored() bool { return s.Rank >= 1 }

// Round is one scoring event: a target and the submissions against it.
type Round struct {
	Number      int            `json:"number"`
	Name        string         `json:"name,omitempty"`
	Season      int            `json:"season,omitempty"`
	Target      Point          `json:"target"`
	Submissions []Submission   `json:"submissions"`
	Options     ScoringOptions `json:"scoring_options"`
}

// DisplayName returns the round's label, falling back to "Round {number}".
func (r Round) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("Round %d", r.Number)
}

// IsScored reports whether every submission carries a rank. An empty
// round is not considered scored.
func (r Round) IsScored() bool {
	if len(r.Submissions) == 0 {
		return false
	}
	for _, s := range r.Submissions {
		if !s.Scored() {
			return false
		}
	}
	return true
}

// Winners returns the players holding rank 1. Empty if unscored.
func (r Round) Winners() []string {
	var winners []string
	for _, s := range r.Submissions {
		if s.Rank == 1 {
			winners = append(winners, s.Player)
		}
	}
	return winners
}

// Clone returns a deep copy; the scorer works on copies so re-scoring
// never mutates the caller's round.
func (r Round) Clone() Round {
	out := r
	out.Submissions = make([]Submission, len(r.Submissions))
	copy(out.Submissions, r.Submissions)
	out.Options = r.Options.Clone()
	return out
}

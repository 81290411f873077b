package leaderboard

import "errors"

// ErrUnscoredRound marks a leaderboard build over a round that has not
// been through the scorer.
var ErrUnscoredRound = errors.New("round is not scored")

// Package scoring implements the pure round-scoring function: distances
// in, score and rank per player out. It performs no I/O and no logging;
// all failures are returned as errors.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/mevric/tpgkit/internal/domain/model"
)

// scoreDecimals is the fixed rounding applied to final scores so that
// display and storage stay stable across runs.
const scoreDecimals = 2

// Entry is one player's measured submission: identity, distance from
// the target in metres, and the manual override flags.
type Entry struct {
	Player          string
	DistanceM       float64
	IsFivek         bool
	IsAntipodeFivek bool
}

// Result is the computed outcome for one player.
type Result struct {
	Score float64
	Rank  int // 1 = best; tied distances share the minimum rank
}

// Score computes scores and competition ranks for a whole round.
//
// The algorithm: distances are converted to km; each submission gets a
// distance component (world - distance, clipped unless the ruleset
// allows negatives) and a proximity component scaled by how many
// players it beat; components are combined per the ruleset's policy
// plus any rank bonus; 5K and antipode-5K submissions are overridden
// with their flat scores; tied distances share the mean of their
// scores and the minimum rank of the group; results round to two
// decimal places.
func Score(entries []Entry, opts model.ScoringOptions) (map[string]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	n := len(entries)
	if n == 0 {
		return nil, model.ErrNoSubmissions
	}
	seen := make(map[string]struct{}, n)
	for _, e := range entries {
		if _, ok := seen[e.Player]; ok {
			return nil, fmt.Errorf("%w: %q", model.ErrDuplicatePlayer, e.Player)
		}
		seen[e.Player] = struct{}{}
	}

	distKm := make([]float64, n)
	for i, e := range entries {
		distKm[i] = e.DistanceM / 1000
	}

	minRank, maxRank := competitionRanks(distKm)

	raw := make([]float64, n)
	for i, e := range entries {
		raw[i] = combine(distKm[i], minRank[i], maxRank[i], n, opts)

		// Flat overrides. A 5K beats an antipode 5K when both apply.
		if antipodeEarmarked(e, distKm[i], opts) {
			raw[i] = opts.AntipodeFivekFlatScore
		}
		if fivekEarmarked(e, distKm[i], opts) {
			raw[i] = opts.FivekFlatScore
		}
	}

	// Tied distances share the mean of the group's scores and the
	// group's minimum rank.
	groups := make(map[int][]int, n) // min rank -> member indices
	for i, rank := range minRank {
		groups[rank] = append(groups[rank], i)
	}
	results := make(map[string]Result, n)
	for rank, members := range groups {
		var sum float64
		for _, i := range members {
			sum += raw[i]
		}
		mean := roundScore(sum / float64(len(members)))
		for _, i := range members {
			results[entries[i].Player] = Result{Score: mean, Rank: rank}
		}
	}
	return results, nil
}

// combine computes the non-overridden raw score for one submission.
func combine(distKm float64, minRank, maxRank, n int, opts model.ScoringOptions) float64 {
	distComp := opts.WorldDistanceKm - distKm
	if opts.ClipNegative && distComp < 0 {
		distComp = 0
	}

	var proxComp float64
	if n == 1 {
		// A solo round beats everyone else possible.
		proxComp = opts.MaxProximity
	} else {
		playersBeaten := float64(n - maxRank)
		proxComp = opts.MaxProximity * playersBeaten / float64(n-1)
	}

	var score float64
	switch opts.Combine {
	case model.CombineAverage:
		score = (distComp + proxComp) / 2
	default: // model.CombineSum; Validate rejected anything else
		score = opts.DistanceWeight*distComp + proxComp
	}
	return score + opts.RankBonuses[minRank]
}

// fivekEarmarked reports whether the submission takes the 5K flat
// score: the explicit flag, or a distance within the threshold
// (inclusive). A zero flat score disables the override.
func fivekEarmarked(e Entry, distKm float64, opts model.ScoringOptions) bool {
	if opts.FivekFlatScore <= 0 {
		return false
	}
	return e.IsFivek || distKm <= opts.FivekThresholdKm
}

// antipodeEarmarked is the analogous check near the exact antipode.
func antipodeEarmarked(e Entry, distKm float64, opts model.ScoringOptions) bool {
	if opts.AntipodeFivekFlatScore <= 0 {
		return false
	}
	if e.IsAntipodeFivek {
		return true
	}
	return opts.AntipodeThresholdKm > 0 && distKm >= opts.AntipodeThresholdKm
}

// competitionRanks returns, per entry, the 1-based minimum and maximum
// rank of its tie group when entries are ordered by ascending distance.
// Identical distances (to floating-point precision) form one group.
func competitionRanks(distKm []float64) (minRank, maxRank []int) {
	n := len(distKm)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return distKm[order[a]] < distKm[order[b]] })

	minRank = make([]int, n)
	maxRank = make([]int, n)
	for start := 0; start < n; {
		end := start
		for end+1 < n && distKm[order[end+1]] == distKm[order[start]] {
			end++
		}
		for pos := start; pos <= end; pos++ {
			minRank[order[pos]] = start + 1
			maxRank[order[pos]] = end + 1
		}
		start = end + 1
	}
	return minRank, maxRank
}

func roundScore(s float64) float64 {
	shift := math.Pow(10, scoreDecimals)
	return math.Round(s*shift) / shift
}

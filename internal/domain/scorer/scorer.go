// Package scorer orchestrates the geo distance provider and the scoring
// function for one round: it measures every submission against the
// target, scores them, and returns a new, fully scored round.
package scorer

import (
	"sort"

	"github.com/mevric/tpgkit/internal/domain/model"
	"github.com/mevric/tpgkit/internal/domain/scoring"
	"github.com/mevric/tpgkit/internal/geo"
)

// Scorer scores rounds under a fixed distance model.
type Scorer struct {
	model geo.Model
}

// New creates a Scorer using the given earth model.
func New(m geo.Model) *Scorer {
	return &Scorer{model: m}
}

// Model returns the earth model this scorer measures with.
func (s *Scorer) Model() geo.Model { return s.model }

// Score returns a scored copy of the round. The input round is never
// mutated, so re-scoring is idempotent; on error the input is left
// unscored and nothing is returned.
//
// Submissions in the result are sorted by ascending rank, with the
// original submission order as the tie-break within equal ranks.
func (s *Scorer) Score(r model.Round) (model.Round, error) {
	out := r.Clone()
	if len(out.Submissions) == 0 {
		return model.Round{}, model.ErrNoSubmissions
	}

	lats := make([]float64, len(out.Submissions))
	lngs := make([]float64, len(out.Submissions))
	for i, sub := range out.Submissions {
		lats[i] = sub.Location.Lat
		lngs[i] = sub.Location.Lng
	}
	distances, bearings, err := geo.DistancesAndBearings(s.model, lats, lngs, r.Target.Lat, r.Target.Lng)
	if err != nil {
		return model.Round{}, err
	}

	entries := make([]scoring.Entry, len(out.Submissions))
	for i, sub := range out.Submissions {
		entries[i] = scoring.Entry{
			Player:          sub.Player,
			DistanceM:       distances[i],
			IsFivek:         sub.IsFivek,
			IsAntipodeFivek: sub.IsAntipodeFivek,
		}
	}
	results, err := scoring.Score(entries, out.Options)
	if err != nil {
		return model.Round{}, err
	}

	for i := range out.Submissions {
		sub := &out.Submissions[i]
		res := results[sub.Player]
		sub.Distance = distances[i]
		sub.Bearing = bearings[i]
		sub.Score = res.Score
		sub.Rank = res.Rank
	}
	sort.SliceStable(out.Submissions, func(a, b int) bool {
		return out.Submissions[a].Rank < out.Submissions[b].Rank
	})
	return out, nil
}

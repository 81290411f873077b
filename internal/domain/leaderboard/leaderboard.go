// Package leaderboard aggregates scored rounds into season leaderboards:
// points, distance, and medals. Leaderboards are recomputed wholesale
// from the round set; there is no incremental update path.
package leaderboard

import (
	"fmt"
	"sort"

	"github.com/mevric/tpgkit/internal/domain/model"
)

// Medal is a podium award for ranks 1-3 of a round, weighted by value.
type Medal int

// Medal values, which double as the weights in the medal score.
const (
	Bronze Medal = 1
	Silver Medal = 2
	Gold   Medal = 3
)

func (m Medal) String() string {
	switch m {
	case Gold:
		return "Gold"
	case Silver:
		return "Silver"
	case Bronze:
		return "Bronze"
	default:
		return fmt.Sprintf("Medal(%d)", int(m))
	}
}

// PointsRow is one player's season points aggregate. Average is over
// rounds the player actually played.
type PointsRow struct {
	Player  string  `json:"player"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Rounds  int     `json:"rounds"`
}

// DistanceRow is one player's season distance aggregate, in kilometres.
type DistanceRow struct {
	Player  string  `json:"player"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Rounds  int     `json:"rounds"`
}

// MedalRow is one player's medal tally. MedalScore weighs gold at 3,
// silver at 2 and bronze at 1.
type MedalRow struct {
	Player     string `json:"player"`
	Gold       int    `json:"gold"`
	Silver     int    `json:"silver"`
	Bronze     int    `json:"bronze"`
	MedalScore int    `json:"medal_score"`
}

// Season bundles the three leaderboards built from one round set.
type Season struct {
	Points   []PointsRow   `json:"points"`
	Distance []DistanceRow `json:"distance"`
	Medals   []MedalRow    `json:"medals"`
}

// Build aggregates the rounds into the season leaderboards. Every input
// round must already be scored; players appear only in leaderboards for
// rounds they played (no zero-fill).
func Build(rounds []model.Round) (Season, error) {
	for _, r := range rounds {
		if !r.IsScored() {
			return Season{}, fmt.Errorf("%w: %s", ErrUnscoredRound, r.DisplayName())
		}
	}

	type tally struct {
		score      float64
		distanceKm float64
		rounds     int
		medals     map[Medal]int
	}
	tallies := make(map[string]*tally)
	var players []string // first-seen order, stable tie-break for sorting

	for _, r := range rounds {
		for _, sub := range r.Submissions {
			t, ok := tallies[sub.Player]
			if !ok {
				t = &tally{medals: make(map[Medal]int)}
				tallies[sub.Player] = t
				players = append(players, sub.Player)
			}
			t.score += sub.Score
			t.distanceKm += sub.Distance / 1000
			t.rounds++
			// Ties at ranks 1-3 award the medal to every tied player;
			// competition ranking already skips the displaced ranks.
			if sub.Rank >= 1 && sub.Rank <= 3 {
				t.medals[Medal(4-sub.Rank)]++
			}
		}
	}

	season := Season{
		Points:   make([]PointsRow, 0, len(players)),
		Distance: make([]DistanceRow, 0, len(players)),
		Medals:   make([]MedalRow, 0, len(players)),
	}
	for _, player := range players {
		t := tallies[player]
		season.Points = append(season.Points, PointsRow{
			Player:  player,
			Total:   t.score,
			Average: t.score / float64(t.rounds),
			Rounds:  t.rounds,
		})
		season.Distance = append(season.Distance, DistanceRow{
			Player:  player,
			Total:   t.distanceKm,
			Average: t.distanceKm / float64(t.rounds),
			Rounds:  t.rounds,
		})
		season.Medals = append(season.Medals, MedalRow{
			Player:     player,
			Gold:       t.medals[Gold],
			Silver:     t.medals[Silver],
			Bronze:     t.medals[Bronze],
			MedalScore: 3*t.medals[Gold] + 2*t.medals[Silver] + t.medals[Bronze],
		})
	}

	sort.SliceStable(season.Points, func(a, b int) bool {
		return season.Points[a].Total > season.Points[b].Total
	})
	sort.SliceStable(season.Distance, func(a, b int) bool {
		return season.Distance[a].Total < season.Distance[b].Total
	})
	sort.SliceStable(season.Medals, func(a, b int) bool {
		return season.Medals[a].MedalScore > season.Medals[b].MedalScore
	})
	return season, nil
}

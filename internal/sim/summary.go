package sim

import (
	"sort"

	"github.com/mevric/tpgkit/internal/domain/model"
)

// RoundSummary is one simulated round's headline: who won and by what
// margin.
type RoundSummary struct {
	Round            string  `json:"round"`
	Winner           string  `json:"winner"`
	WinnerScore      float64 `json:"winner_score"`
	WinnerDistanceKm float64 `json:"winner_distance_km"`
	Players          int     `json:"players"`
}

// SummarizeRounds builds per-round headlines in round order. Rounds are
// expected to be scored; unscored rounds are skipped.
func SummarizeRounds(rounds []model.Round) []RoundSummary {
	summaries := make([]RoundSummary, 0, len(rounds))
	for _, r := range rounds {
		if !r.IsScored() {
			continue
		}
		winner := r.Submissions[0] // scorer sorts by ascending rank
		summaries = append(summaries, RoundSummary{
			Round:            r.DisplayName(),
			Winner:           winner.Player,
			WinnerScore:      winner.Score,
			WinnerDistanceKm: winner.Distance / 1000,
			Players:          len(r.Submissions),
		})
	}
	return summaries
}

// PlayerSummary aggregates one player's simulated season.
type PlayerSummary struct {
	Player  string  `json:"player"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Wins    int     `json:"wins"`
	Podiums int     `json:"podiums"`
	Rounds  int     `json:"rounds"`
}

// SummarizePlayers aggregates scored rounds per player, sorted by total
// score descending.
func SummarizePlayers(rounds []model.Round) []PlayerSummary {
	byPlayer := make(map[string]*PlayerSummary)
	var order []string
	for _, r := range rounds {
		for _, sub := range r.Submissions {
			s, ok := byPlayer[sub.Player]
			if !ok {
				s = &PlayerSummary{Player: sub.Player}
				byPlayer[sub.Player] = s
				order = append(order, sub.Player)
			}
			s.Total += sub.Score
			s.Rounds++
			if sub.Rank == 1 {
				s.Wins++
			}
			if sub.Rank >= 1 && sub.Rank <= 3 {
				s.Podiums++
			}
		}
	}
	summaries := make([]PlayerSummary, 0, len(order))
	for _, player := range order {
		s := byPlayer[player]
		if s.Rounds > 0 {
			s.Average = s.Total / float64(s.Rounds)
		}
		summaries = append(summaries, *s)
	}
	sort.SliceStable(summaries, func(a, b int) bool {
		return summaries[a].Total > summaries[b].Total
	})
	return summaries
}

// Package model contains the domain records passed between the scoring,
// leaderboard and simulation layers: rounds, submissions, point sets and
// scoring rulesets.
package model

import "fmt"

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the point as "lat, lng" with enough precision to
// round-trip typical submission coordinates.
func (p Point) String() string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
}

// PointSet is a player's candidate pool for simulation: an ordered,
// non-empty collection of unique locations owned by one player.
type PointSet struct {
	Player string  `json:"player"`
	Points []Point `json:"points"`
}

// NewPointSet builds a PointSet, deduplicating points by exact
// coordinate while preserving first-occurrence order.
func NewPointSet(player string, points []Point) (PointSet, error) {
	if player == "" {
		return PointSet{}, fmt.Errorf("%w: point set needs an owning player", ErrInvalidPointSet)
	}
	seen := make(map[Point]struct{}, len(points))
	unique := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	if len(unique) == 0 {
		return PointSet{}, fmt.Errorf("%w: point set for %q is empty", ErrInvalidPointSet, player)
	}
	return PointSet{Player: player, Points: unique}, nil
}

// Package sim replays seasons against hypothetical submission sets: a
// pluggable strategy picks each player's submission per round, and the
// synthetic rounds run through the regular round scorer.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/mevric/tpgkit/internal/domain/model"
	"github.com/mevric/tpgkit/internal/geo"
)

// Strategy picks which single point a player would have submitted for a
// target. Implementations are stateless; any randomness comes from the
// generator passed in, never from global state.
type Strategy interface {
	Name() string
	Select(set model.PointSet, target model.Point, rng *rand.Rand) (model.Point, error)
}

// ClosestPoint picks the point minimizing distance to the target, with
// ties broken by first occurrence in the set.
type ClosestPoint struct {
	Model geo.Model
}

func (c ClosestPoint) Name() string { return "closest" }

// Select measures every candidate against the target under the
// strategy's earth model.
func (c ClosestPoint) Select(set model.PointSet, target model.Point, _ *rand.Rand) (model.Point, error) {
	if len(set.Points) == 0 {
		return model.Point{}, fmt.Errorf("%w: %q", model.ErrInvalidPointSet, set.Player)
	}
	best := set.Points[0]
	bestDist, err := geo.Distance(c.Model, best.Lat, best.Lng, target.Lat, target.Lng)
	if err != nil {
		return model.Point{}, err
	}
	for _, p := range set.Points[1:] {
		dist, err := geo.Distance(c.Model, p.Lat, p.Lng, target.Lat, target.Lng)
		if err != nil {
			return model.Point{}, err
		}
		if dist < bestDist {
			best = p
			bestDist = dist
		}
	}
	return best, nil
}

// RandomPoint picks uniformly from the set using the supplied seeded
// generator, so runs are reproducible.
type RandomPoint struct{}

func (RandomPoint) Name() string { return "random" }

func (RandomPoint) Select(set model.PointSet, _ model.Point, rng *rand.Rand) (model.Point, error) {
	if len(set.Points) == 0 {
		return model.Point{}, fmt.Errorf("%w: %q", model.ErrInvalidPointSet, set.Player)
	}
	if rng == nil {
		return model.Point{}, ErrNilGenerator
	}
	return set.Points[rng.Intn(len(set.Points))], nil
}

// FixedPoint always returns the set's only point; it exists for
// single-point players and rejects anything else.
type FixedPoint struct{}

func (FixedPoint) Name() string { return "fixed" }

func (FixedPoint) Select(set model.PointSet, _ model.Point, _ *rand.Rand) (model.Point, error) {
	if len(set.Points) != 1 {
		return model.Point{}, fmt.Errorf("%w: %q has %d points", ErrNotSinglePoint, set.Player, len(set.Points))
	}
	return set.Points[0], nil
}

// ParseStrategy resolves a strategy name from config or CLI input.
// The earth model only affects ClosestPoint.
func ParseStrategy(name string, m geo.Model) (Strategy, error) {
	switch name {
	case "closest":
		return ClosestPoint{Model: m}, nil
	case "random":
		return RandomPoint{}, nil
	case "fixed":
		return FixedPoint{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

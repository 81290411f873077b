package model

import "fmt"

// CombinePolicy selects how the distance and proximity components are
// combined into a raw score.
type CombinePolicy string

// Known combination policies.
const (
	// CombineSum adds the weighted distance component, the proximity
	// component and any rank bonus (main-game formula).
	CombineSum CombinePolicy = "sum"
	// CombineAverage averages the distance and proximity components
	// (regional spin-off formula).
	CombineAverage CombinePolicy = "average"
)

// ParseCombinePolicy resolves a policy name from config or CLI input.
func ParseCombinePolicy(name string) (CombinePolicy, error) {
	switch CombinePolicy(name) {
	case CombineSum, CombineAverage:
		return CombinePolicy(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCombine, name)
	}
}

// Default scoring constants shared by the known rulesets.
const (
	DefaultWorldDistanceKm   = 20_000.0
	DefaultMaxProximity      = 5_000.0
	DefaultFivekThresholdKm  = 0.1 // 100 m, inclusive
	defaultAntipodeCutoffKm  = 19_995.0
	defaultAntipodeFlatScore = 5_000.0
	mainFivekFlatScore       = 25_000.0 // world + max proximity: an exact hit scores the formula's ceiling
	regionalFivekFlatScore   = 7_500.0
)

// ScoringOptions is a named, immutable ruleset for scoring a round.
// A flat score of zero disables the corresponding override entirely,
// including its explicit submission flag.
type ScoringOptions struct {
	Name string `json:"name,omitempty"`

	// WorldDistanceKm is the distance treated as "as far as possible",
	// normalizing the distance component. Must be positive.
	WorldDistanceKm float64 `json:"world_distance_km"`

	// FivekFlatScore is awarded flat for submissions at (or within
	// FivekThresholdKm of) the target.
	FivekFlatScore   float64 `json:"fivek_flat_score,omitempty"`
	FivekThresholdKm float64 `json:"fivek_threshold_km,omitempty"`

	// AntipodeFivekFlatScore is awarded flat for submissions at (or
	// beyond AntipodeThresholdKm from) the target, i.e. near the exact
	// antipode.
	AntipodeFivekFlatScore float64 `json:"antipode_fivek_flat_score,omitempty"`
	AntipodeThresholdKm    float64 `json:"antipode_threshold_km,omitempty"`

	// RankBonuses maps a finishing rank to a bonus added to the raw
	// score. Absent ranks get zero bonus.
	RankBonuses map[int]float64 `json:"rank_bonuses,omitempty"`

	// MaxProximity is the proximity component awarded for beating every
	// other player in the round.
	MaxProximity float64 `json:"max_proximity"`

	// DistanceWeight scales the distance component under CombineSum.
	DistanceWeight float64 `json:"distance_weight,omitempty"`

	// ClipNegative floors the distance component at zero for
	// submissions farther than WorldDistanceKm.
	ClipNegative bool `json:"clip_negative"`

	Combine CombinePolicy `json:"combine"`
}

// MainGameOptions is the ruleset of the main game: unweighted sum of
// both components plus the podium bonus table.
func MainGameOptions() ScoringOptions {
	return ScoringOptions{
		Name:                   "main",
		WorldDistanceKm:        DefaultWorldDistanceKm,
		FivekFlatScore:         mainFivekFlatScore,
		FivekThresholdKm:       DefaultFivekThresholdKm,
		AntipodeFivekFlatScore: defaultAntipodeFlatScore,
		AntipodeThresholdKm:    defaultAntipodeCutoffKm,
		RankBonuses:            map[int]float64{1: 3_000, 2: 2_000, 3: 1_000},
		MaxProximity:           DefaultMaxProximity,
		DistanceWeight:         1,
		ClipNegative:           true,
		Combine:                CombineSum,
	}
}

// RegionalOptions is the ruleset of regional spin-offs covering a
// smaller world: components are averaged and there is no bonus table.
func RegionalOptions(worldDistanceKm float64) ScoringOptions {
	return ScoringOptions{
		Name:             "regional",
		WorldDistanceKm:  worldDistanceKm,
		FivekFlatScore:   regionalFivekFlatScore,
		FivekThresholdKm: DefaultFivekThresholdKm,
		MaxProximity:     DefaultMaxProximity,
		DistanceWeight:   1,
		ClipNegative:     true,
		Combine:          CombineAverage,
	}
}

// Validate checks the ruleset invariants: a positive world distance,
// non-negative constants, and a known combine policy.
func (o ScoringOptions) Validate() error {
	if o.WorldDistanceKm <= 0 {
		return fmt.Errorf("%w: world_distance_km must be positive, got %v", ErrInvalidOptions, o.WorldDistanceKm)
	}
	for name, v := range map[string]float64{
		"fivek_flat_score":          o.FivekFlatScore,
		"fivek_threshold_km":        o.FivekThresholdKm,
		"antipode_fivek_flat_score": o.AntipodeFivekFlatScore,
		"antipode_threshold_km":     o.AntipodeThresholdKm,
		"max_proximity":             o.MaxProximity,
		"distance_weight":           o.DistanceWeight,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidOptions, name, v)
		}
	}
	for rank, bonus := range o.RankBonuses {
		if rank < 1 {
			return fmt.Errorf("%w: rank bonus for rank %d, ranks start at 1", ErrInvalidOptions, rank)
		}
		if bonus < 0 {
			return fmt.Errorf("%w: rank bonus for rank %d must not be negative, got %v", ErrInvalidOptions, rank, bonus)
		}
	}
	if _, err := ParseCombinePolicy(string(o.Combine)); err != nil {
		return err
	}
	return nil
}

// Clone returns a copy with its own bonus table.
func (o ScoringOptions) Clone() ScoringOptions {
	out := o
	if o.RankBonuses != nil {
		out.RankBonuses = make(map[int]float64, len(o.RankBonuses))
		for rank, bonus := range o.RankBonuses {
			out.RankBonuses[rank] = bonus
		}
	}
	return out
}

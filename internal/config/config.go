// Package config defines the toolkit configuration and its loading.
//
// Conventions follow the rest of the module: defaults come from New,
// Load layers an optional YAML file and TPG_-prefixed environment
// variables on top, and conversion into domain types happens here so
// the domain packages never see raw config.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/mevric/tpgkit/internal/domain/model"
)

// Config contains process configuration for the scoring and simulation
// CLIs. Scoring fields mirror model.ScoringOptions with koanf-friendly
// types (rank bonus keys arrive as strings from YAML/env).
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Workers bounds concurrent round simulation.
	Workers int `koanf:"workers"`

	// MasterSeed drives the per-round generators of random strategies.
	MasterSeed int64 `koanf:"master_seed"`

	// DistanceModel selects the earth model: geodesic or haversine.
	DistanceModel string `koanf:"distance_model"`

	// Strategy names the simulation strategy: closest, random, fixed.
	Strategy string `koanf:"strategy"`

	// Scoring ruleset.
	RulesetName            string             `koanf:"ruleset"`
	WorldDistanceKm        float64            `koanf:"world_distance_km"`
	FivekFlatScore         float64            `koanf:"fivek_flat_score"`
	FivekThresholdKm       float64            `koanf:"fivek_threshold_km"`
	AntipodeFivekFlatScore float64            `koanf:"antipode_fivek_flat_score"`
	AntipodeThresholdKm    float64            `koanf:"antipode_threshold_km"`
	RankBonuses            map[string]float64 `koanf:"rank_bonuses"`
	MaxProximity           float64            `koanf:"max_proximity"`
	DistanceWeight         float64            `koanf:"distance_weight"`
	ClipNegative           bool               `koanf:"clip_negative"`
	Combine                string             `koanf:"combine"`
}

// New creates a Config with defaults matching the main-game ruleset.
// Context is accepted first per module convention; reserved for future
// use.
func New(_ context.Context) *Config {
	main := model.MainGameOptions()
	bonuses := make(map[string]float64, len(main.RankBonuses))
	for rank, bonus := range main.RankBonuses {
		bonuses[strconv.Itoa(rank)] = bonus
	}
	return &Config{
		LogLevel:               "info",
		Workers:                runtime.NumCPU(),
		MasterSeed:             0,
		DistanceModel:          "haversine",
		Strategy:               "closest",
		RulesetName:            main.Name,
		WorldDistanceKm:        main.WorldDistanceKm,
		FivekFlatScore:         main.FivekFlatScore,
		FivekThresholdKm:       main.FivekThresholdKm,
		AntipodeFivekFlatScore: main.AntipodeFivekFlatScore,
		AntipodeThresholdKm:    main.AntipodeThresholdKm,
		RankBonuses:            bonuses,
		MaxProximity:           main.MaxProximity,
		DistanceWeight:         main.DistanceWeight,
		ClipNegative:           main.ClipNegative,
		Combine:                string(main.Combine),
	}
}

// ScoringOptions converts the scoring fields into a validated ruleset.
func (c *Config) ScoringOptions() (model.ScoringOptions, error) {
	bonuses := make(map[int]float64, len(c.RankBonuses))
	for key, bonus := range c.RankBonuses {
		rank, err := strconv.Atoi(key)
		if err != nil {
			return model.ScoringOptions{}, fmt.Errorf("%w: rank bonus key %q is not a rank", ErrInvalidConfig, key)
		}
		bonuses[rank] = bonus
	}
	combine, err := model.ParseCombinePolicy(c.Combine)
	if err != nil {
		return model.ScoringOptions{}, err
	}
	opts := model.ScoringOptions{
		Name:                   c.RulesetName,
		WorldDistanceKm:        c.WorldDistanceKm,
		FivekFlatScore:         c.FivekFlatScore,
		FivekThresholdKm:       c.FivekThresholdKm,
		AntipodeFivekFlatScore: c.AntipodeFivekFlatScore,
		AntipodeThresholdKm:    c.AntipodeThresholdKm,
		RankBonuses:            bonuses,
		MaxProximity:           c.MaxProximity,
		DistanceWeight:         c.DistanceWeight,
		ClipNegative:           c.ClipNegative,
		Combine:                combine,
	}
	if err := opts.Validate(); err != nil {
		return model.ScoringOptions{}, err
	}
	return opts, nil
}

// Package data is the thin persistence glue around the engine: JSON
// round and point-set files in, JSON/CSV results out. The engine core
// never touches the filesystem; everything here runs before or after it.
package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mevric/tpgkit/internal/domain/model"
)

// ErrBadData marks input files that parse but violate the loader
// contract (coordinates out of range, NaNs, missing players).
var ErrBadData = errors.New("bad data file")

// LoadRounds reads a JSON array of rounds.
func LoadRounds(path string) ([]model.Round, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rounds: %w", err)
	}
	var rounds []model.Round
	if err := json.Unmarshal(raw, &rounds); err != nil {
		return nil, fmt.Errorf("parsing rounds %s: %w", path, err)
	}
	for _, r := range rounds {
		if err := validatePoint(r.Target); err != nil {
			return nil, fmt.Errorf("%w: %s target: %v", ErrBadData, r.DisplayName(), err)
		}
		for _, sub := range r.Submissions {
			if sub.Player == "" {
				return nil, fmt.Errorf("%w: %s has a submission without a player", ErrBadData, r.DisplayName())
			}
			if err := validatePoint(sub.Location); err != nil {
				return nil, fmt.Errorf("%w: %s submission by %s: %v", ErrBadData, r.DisplayName(), sub.Player, err)
			}
		}
	}
	return rounds, nil
}

// SaveRounds writes rounds as indented JSON, the toolkit's data format.
func SaveRounds(path string, rounds []model.Round) error {
	raw, err := json.MarshalIndent(rounds, "", "\t")
	if err != nil {
		return fmt.Errorf("encoding rounds: %w", err)
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

// pointSetFile is the on-disk shape of one player's candidate pool.
type pointSetFile struct {
	Player string        `json:"player"`
	Points []model.Point `json:"points"`
}

// LoadPointSet reads one point-set file. When the file carries no
// player name, the file name (without extension) is used, matching how
// the toolkit ingests folders of per-player files.
func LoadPointSet(path string) (model.PointSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.PointSet{}, fmt.Errorf("reading point set: %w", err)
	}
	var f pointSetFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return model.PointSet{}, fmt.Errorf("parsing point set %s: %w", path, err)
	}
	if f.Player == "" {
		f.Player = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for _, p := range f.Points {
		if err := validatePoint(p); err != nil {
			return model.PointSet{}, fmt.Errorf("%w: point set %s: %v", ErrBadData, f.Player, err)
		}
	}
	return model.NewPointSet(f.Player, f.Points)
}

// LoadPointSetDir reads every .json file in a directory as a point set,
// sorted by file name for deterministic player order. It does not
// recurse.
func LoadPointSetDir(dir string) ([]model.PointSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading point set dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	sets := make([]model.PointSet, 0, len(paths))
	for _, path := range paths {
		set, err := LoadPointSet(path)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func validatePoint(p model.Point) error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return errors.New("coordinate is NaN")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", p.Lng)
	}
	return nil
}

// Command score scores a season data file and prints the rounds and
// season leaderboards. It is batch glue around the engine: read, score,
// print, optionally persist, exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/mevric/tpgkit/internal/config"
	"github.com/mevric/tpgkit/internal/data"
	"github.com/mevric/tpgkit/internal/domain/leaderboard"
	"github.com/mevric/tpgkit/internal/domain/model"
	"github.com/mevric/tpgkit/internal/domain/scorer"
	"github.com/mevric/tpgkit/internal/geo"
	"github.com/mevric/tpgkit/pkg/logger"
	"github.com/mevric/tpgkit/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	roundsPath := flag.String("rounds", "", "path to a JSON rounds file (required)")
	modelName := flag.String("model", "", "distance model: geodesic or haversine (overrides config)")
	outputPath := flag.String("output", "", "write the scored rounds back out as JSON")
	csvDir := flag.String("csv-dir", "", "write per-round and leaderboard CSVs into this directory")
	flag.Parse()

	if *roundsPath == "" {
		return fmt.Errorf("-rounds is required")
	}

	if err := logger.Init(); err != nil {
		return err
	}
	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}
	log := logger.Named("score")

	name := cfg.DistanceModel
	if *modelName != "" {
		name = *modelName
	}
	earthModel, err := geo.ParseModel(name)
	if err != nil {
		return err
	}
	defaultOptions, err := cfg.ScoringOptions()
	if err != nil {
		return err
	}

	rounds, err := data.LoadRounds(*roundsPath)
	if err != nil {
		return err
	}
	log.Info(ctx, "loaded rounds",
		logger.Int("rounds", len(rounds)),
		logger.String("model", earthModel.String()),
	)

	sc := scorer.New(earthModel)
	scored := make([]model.Round, len(rounds))
	for i, r := range rounds {
		// Rounds may carry their own ruleset (regional spin-offs);
		// anything without one gets the configured default.
		if r.Options.WorldDistanceKm == 0 {
			r.Options = defaultOptions.Clone()
		}
		start := time.Now()
		out, err := sc.Score(r)
		if err != nil {
			metrics.RecordScoringError()
			return fmt.Errorf("scoring %s: %w", r.DisplayName(), err)
		}
		metrics.RecordRoundScored()
		metrics.RecordSubmissionsScored(len(out.Submissions))
		metrics.RecordScoringDuration(time.Since(start).Seconds())
		scored[i] = out
		printRound(out)
	}

	season, err := leaderboard.Build(scored)
	if err != nil {
		return err
	}
	printSeason(season)

	if *outputPath != "" {
		if err := data.SaveRounds(*outputPath, scored); err != nil {
			return err
		}
	}
	if *csvDir != "" {
		if err := writeCSVs(*csvDir, scored, season); err != nil {
			return err
		}
	}
	return nil
}

func printRound(r model.Round) {
	fmt.Printf("%s  target %s\n", r.DisplayName(), r.Target)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "rank\tplayer\tdistance km\tscore")
	for _, sub := range r.Submissions {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\n", sub.Rank, sub.Player, sub.Distance/1000, sub.Score)
	}
	w.Flush()
	fmt.Println()
}

func printSeason(season leaderboard.Season) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "== Points ==")
	fmt.Fprintln(w, "player\ttotal\taverage\trounds")
	for _, row := range season.Points {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%d\n", row.Player, row.Total, row.Average, row.Rounds)
	}
	fmt.Fprintln(w, "\n== Distance (km) ==")
	fmt.Fprintln(w, "player\ttotal\taverage\trounds")
	for _, row := range season.Distance {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%d\n", row.Player, row.Total, row.Average, row.Rounds)
	}
	fmt.Fprintln(w, "\n== Medals ==")
	fmt.Fprintln(w, "player\tgold\tsilver\tbronze\tmedal score")
	for _, row := range season.Medals {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", row.Player, row.Gold, row.Silver, row.Bronze, row.MedalScore)
	}
	w.Flush()
}

func writeCSVs(dir string, rounds []model.Round, season leaderboard.Season) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, r := range rounds {
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("round-%d.csv", r.Number)))
		if err != nil {
			return err
		}
		if err := data.WriteRoundCSV(f, r); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	points, err := os.Create(filepath.Join(dir, "points-leaderboard.csv"))
	if err != nil {
		return err
	}
	defer points.Close()
	distance, err := os.Create(filepath.Join(dir, "distance-leaderboard.csv"))
	if err != nil {
		return err
	}
	defer distance.Close()
	medals, err := os.Create(filepath.Join(dir, "medals-leaderboard.csv"))
	if err != nil {
		return err
	}
	defer medals.Close()
	return data.WriteSeasonCSVs(points, distance, medals, season)
}

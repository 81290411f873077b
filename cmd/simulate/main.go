// Command simulate replays a season as though every known player had
// submitted from their point set, scores the synthetic rounds, and
// reports how outcomes diverge from the recorded ones.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mevric/tpgkit/internal/config"
	"github.com/mevric/tpgkit/internal/data"
	"github.com/mevric/tpgkit/internal/domain/model"
	"github.com/mevric/tpgkit/internal/geo"
	"github.com/mevric/tpgkit/internal/sim"
	"github.com/mevric/tpgkit/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	roundsPath := flag.String("rounds", "", "historical rounds JSON; targets come from here (required)")
	pointsDir := flag.String("points-dir", "", "directory of per-player point set JSON files (required)")
	strategyName := flag.String("strategy", "", "closest, random or fixed (overrides config)")
	modelName := flag.String("model", "", "distance model: geodesic or haversine (overrides config)")
	seed := flag.Int64("seed", -1, "master seed for random strategies (overrides config when >= 0)")
	workers := flag.Int("workers", 0, "concurrent rounds (overrides config when > 0)")
	threshold := flag.Int("threshold", 0, "only simulate players with at least this many points")
	track := flag.String("track", "", "report rank/location changes for this player")
	compare := flag.Bool("compare", true, "diff simulated rounds against the historical ones")
	outputPath := flag.String("output", "", "write the simulated rounds as JSON")
	flag.Parse()

	if *roundsPath == "" || *pointsDir == "" {
		return fmt.Errorf("-rounds and -points-dir are required")
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
	log := logger.Named("simulate")

	if *strategyName == "" {
		*strategyName = cfg.Strategy
	}
	if *modelName == "" {
		*modelName = cfg.DistanceModel
	}
	if *seed < 0 {
		*seed = cfg.MasterSeed
	}
	if *workers <= 0 {
		*workers = cfg.Workers
	}

	earthModel, err := geo.ParseModel(*modelName)
	if err != nil {
		return err
	}
	strategy, err := sim.ParseStrategy(*strategyName, earthModel)
	if err != nil {
		return err
	}
	options, err := cfg.ScoringOptions()
	if err != nil {
		return err
	}

	historical, err := data.LoadRounds(*roundsPath)
	if err != nil {
		return err
	}
	sets, err := data.LoadPointSetDir(*pointsDir)
	if err != nil {
		return err
	}
	if *threshold > 1 {
		sets = filterByThreshold(sets, *threshold)
	}
	log.Info(ctx, "loaded inputs",
		logger.Int("targets", len(historical)),
		logger.Int("players", len(sets)),
		logger.String("strategy", strategy.Name()),
		logger.String("model", earthModel.String()),
	)

	targets := make([]sim.Target, len(historical))
	for i, r := range historical {
		targets[i] = sim.Target{Number: r.Number, Name: r.Name, Point: r.Target}
	}

	simulator := sim.New(strategy, options,
		sim.WithModel(earthModel),
		sim.WithWorkers(*workers),
		sim.WithMasterSeed(*seed),
		sim.WithLogger(log),
	)
	simulated, err := simulator.Run(ctx, targets, sets)
	if err != nil {
		return err
	}

	if *compare {
		printComparisons(historical, simulated, *track)
	}
	printRoundSummaries(sim.SummarizeRounds(simulated))
	printPlayerSummaries(sim.SummarizePlayers(simulated))

	if *outputPath != "" {
		if err := data.SaveRounds(*outputPath, simulated); err != nil {
			return err
		}
	}
	return nil
}

func filterByThreshold(sets []model.PointSet, threshold int) []model.PointSet {
	kept := sets[:0]
	for _, set := range sets {
		if len(set.Points) >= threshold {
			kept = append(kept, set)
		}
	}
	return kept
}

func printComparisons(historical, simulated []model.Round, track string) {
	for i, synthetic := range simulated {
		c := sim.Compare(historical[i], synthetic, track)
		if !c.Diverged() {
			continue
		}
		if c.WinnerChanged {
			fmt.Printf("%s: winner was %s, now %s\n", c.Round, c.OldWinner, c.NewWinner)
		}
		if c.RankChanged {
			fmt.Printf("%s: %s placed %d, now %d\n", c.Round, c.TrackedPlayer, c.OldRank, c.NewRank)
		}
		if c.LocationMoved {
			fmt.Printf("%s: %s previously submitted %s, now would submit %s\n",
				c.Round, c.TrackedPlayer, c.OldLocation, c.NewLocation)
		}
	}
}

func printRoundSummaries(summaries []sim.RoundSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\n== Rounds ==")
	fmt.Fprintln(w, "round\twinner\tscore\tdistance km\tplayers")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%d\n", s.Round, s.Winner, s.WinnerScore, s.WinnerDistanceKm, s.Players)
	}
	w.Flush()
}

func printPlayerSummaries(summaries []sim.PlayerSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\n== Players ==")
	fmt.Fprintln(w, "player\ttotal\taverage\twins\tpodiums\trounds")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%d\t%d\t%d\n", s.Player, s.Total, s.Average, s.Wins, s.Podiums, s.Rounds)
	}
	w.Flush()
}

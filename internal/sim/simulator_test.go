package sim_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mevric/tpgkit/internal/domain/model"
	"github.com/mevric/tpgkit/internal/geo"
	"github.com/mevric/tpgkit/internal/sim"
	. "github.com/smartystreets/goconvey/convey"
)

func simOptions() model.ScoringOptions {
	opts := model.MainGameOptions()
	opts.FivekFlatScore = 0
	opts.AntipodeFivekFlatScore = 0
	return opts
}

func simTargets() []sim.Target {
	return []sim.Target{
		{Number: 1, Name: "Alpha", Point: model.Point{Lat: 0, Lng: 0}},
		{Number: 2, Name: "Bravo", Point: model.Point{Lat: 45, Lng: 45}},
		{Number: 3, Point: model.Point{Lat: -30, Lng: 120}},
	}
}

func simSets() []model.PointSet {
	return []model.PointSet{
		{Player: "ada", Points: []model.Point{
			{Lat: 1, Lng: 1}, {Lat: 44, Lng: 44}, {Lat: -29, Lng: 119},
		}},
		{Player: "brin", Points: []model.Point{
			{Lat: 10, Lng: 10}, {Lat: 40, Lng: 40},
		}},
		{Player: "cole", Points: []model.Point{
			{Lat: 0, Lng: 0},
		}},
	}
}

func TestSimulatorRun(t *testing.T) {
	Convey("Given targets and point sets under the closest strategy", t, func() {
		simulator := sim.New(sim.ClosestPoint{Model: geo.Haversine}, simOptions())

		Convey("When running the simulation", func() {
			rounds, err := simulator.Run(context.Background(), simTargets(), simSets())
			So(err, ShouldBeNil)

			Convey("Then every target should yield a scored round in target order", func() {
				So(rounds, ShouldHaveLength, 3)
				So(rounds[0].Number, ShouldEqual, 1)
				So(rounds[0].Name, ShouldEqual, "Alpha")
				So(rounds[1].Number, ShouldEqual, 2)
				So(rounds[2].Number, ShouldEqual, 3)
				for _, r := range rounds {
					So(r.IsScored(), ShouldBeTrue)
					So(r.Submissions, ShouldHaveLength, 3)
				}
			})

			Convey("And each player should submit their nearest point", func() {
				winner := rounds[0].Submissions[0]
				So(winner.Player, ShouldEqual, "cole")
				So(winner.Location, ShouldResemble, model.Point{Lat: 0, Lng: 0})
			})
		})
	})
}

func TestSimulatorDeterminism(t *testing.T) {
	Convey("Given the random strategy with a fixed master seed", t, func() {
		targets := simTargets()
		sets := simSets()

		run := func(workers int) []model.Round {
			simulator := sim.New(sim.RandomPoint{}, simOptions(),
				sim.WithMasterSeed(99),
				sim.WithWorkers(workers),
			)
			rounds, err := simulator.Run(context.Background(), targets, sets)
			So(err, ShouldBeNil)
			return rounds
		}

		Convey("When running sequentially and with four workers", func() {
			sequential := run(1)
			parallel := run(4)

			Convey("Then the results should be bit-identical", func() {
				So(parallel, ShouldResemble, sequential)
			})
		})

		Convey("When running with a different master seed", func() {
			base := run(1)
			simulator := sim.New(sim.RandomPoint{}, simOptions(),
				sim.WithMasterSeed(100),
				sim.WithWorkers(1),
			)
			other, err := simulator.Run(context.Background(), targets, sets)
			So(err, ShouldBeNil)

			Convey("Then at least one submission should differ", func() {
				So(other, ShouldNotResemble, base)
			})
		})
	})
}

func TestSimulatorErrors(t *testing.T) {
	Convey("Given a simulator", t, func() {
		simulator := sim.New(sim.ClosestPoint{Model: geo.Haversine}, simOptions())

		Convey("When no targets are given", func() {
			_, err := simulator.Run(context.Background(), nil, simSets())
			So(errors.Is(err, sim.ErrNoTargets), ShouldBeTrue)
		})

		Convey("When no point sets are given", func() {
			_, err := simulator.Run(context.Background(), simTargets(), nil)
			So(errors.Is(err, sim.ErrNoPlayers), ShouldBeTrue)
		})

		Convey("When the ruleset is invalid", func() {
			bad := simOptions()
			bad.WorldDistanceKm = -1
			broken := sim.New(sim.ClosestPoint{Model: geo.Haversine}, bad)
			_, err := broken.Run(context.Background(), simTargets(), simSets())
			So(errors.Is(err, model.ErrInvalidOptions), ShouldBeTrue)
		})

		Convey("When the strategy rejects a set", func() {
			fixed := sim.New(sim.FixedPoint{}, simOptions())
			_, err := fixed.Run(context.Background(), simTargets(), simSets())
			So(errors.Is(err, sim.ErrNotSinglePoint), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := simulator.Run(ctx, simTargets(), simSets())
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestSimulatorNumbersUnnumberedTargets(t *testing.T) {
	Convey("Given a target without a round number", t, func() {
		simulator := sim.New(sim.ClosestPoint{Model: geo.Haversine}, simOptions())
		targets := []sim.Target{{Point: model.Point{Lat: 0, Lng: 0}}}

		Convey("When simulated", func() {
			rounds, err := simulator.Run(context.Background(), targets, simSets())
			So(err, ShouldBeNil)

			Convey("Then the round should number itself from its position", func() {
				So(rounds[0].Number, ShouldEqual, 1)
			})
		})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given a historical round and a diverging synthetic one", t, func() {
		historical := model.Round{
			Number: 1,
			Submissions: []model.Submission{
				{Player: "ada", Rank: 1, Score: 28_000, Location: model.Point{Lat: 1, Lng: 1}},
				{Player: "brin", Rank: 2, Score: 21_000, Location: model.Point{Lat: 5, Lng: 5}},
			},
		}
		synthetic := model.Round{
			Number: 1,
			Submissions: []model.Submission{
				{Player: "brin", Rank: 1, Score: 27_000, Location: model.Point{Lat: 0, Lng: 0}},
				{Player: "ada", Rank: 2, Score: 22_000, Location: model.Point{Lat: 1, Lng: 1}},
			},
		}

		Convey("When compared without a tracked player", func() {
			c := sim.Compare(historical, synthetic, "")

			Convey("Then only the winner change should register", func() {
				So(c.Diverged(), ShouldBeTrue)
				So(c.WinnerChanged, ShouldBeTrue)
				So(c.OldWinner, ShouldEqual, "ada")
				So(c.NewWinner, ShouldEqual, "brin")
				So(c.RankChanged, ShouldBeFalse)
				So(c.LocationMoved, ShouldBeFalse)
			})
		})

		Convey("When tracking a player whose rank and location changed", func() {
			c := sim.Compare(historical, synthetic, "brin")

			Convey("Then both changes should register", func() {
				So(c.TrackedPlayer, ShouldEqual, "brin")
				So(c.RankChanged, ShouldBeTrue)
				So(c.OldRank, ShouldEqual, 2)
				So(c.NewRank, ShouldEqual, 1)
				So(c.LocationMoved, ShouldBeTrue)
				So(c.OldLocation, ShouldResemble, model.Point{Lat: 5, Lng: 5})
				So(c.NewLocation, ShouldResemble, model.Point{Lat: 0, Lng: 0})
			})
		})

		Convey("When tracking a player who kept their spot", func() {
			same := historical.Clone()
			c := sim.Compare(historical, same, "ada")

			Convey("Then nothing should diverge", func() {
				So(c.Diverged(), ShouldBeFalse)
			})
		})

		Convey("When the historical round is unscored", func() {
			unscored := model.Round{
				Number: 1,
				Submissions: []model.Submission{
					{Player: "ada", Location: model.Point{Lat: 1, Lng: 1}},
				},
			}
			c := sim.Compare(unscored, synthetic, "")

			Convey("Then no winner divergence should be reported", func() {
				So(c.WinnerChanged, ShouldBeFalse)
			})
		})

		Convey("When the tracked player is missing from one side", func() {
			c := sim.Compare(historical, synthetic, "dara")

			Convey("Then tracking should stay empty", func() {
				So(c.TrackedPlayer, ShouldBeEmpty)
				So(c.RankChanged, ShouldBeFalse)
				So(c.LocationMoved, ShouldBeFalse)
			})
		})
	})
}

func TestSummaries(t *testing.T) {
	rounds := []model.Round{
		{
			Number: 1,
			Submissions: []model.Submission{
				{Player: "ada", Rank: 1, Score: 28_000, Distance: 1_000},
				{Player: "brin", Rank: 2, Score: 21_000, Distance: 111_000},
			},
		},
		{
			Number: 2,
			Name:   "Finale",
			Submissions: []model.Submission{
				{Player: "brin", Rank: 1, Score: 27_000, Distance: 5_000},
				{Player: "ada", Rank: 2, Score: 22_000, Distance: 80_000},
			},
		},
	}

	Convey("Given two scored rounds", t, func() {
		Convey("When summarizing rounds", func() {
			summaries := sim.SummarizeRounds(rounds)

			Convey("Then each round should headline its winner", func() {
				So(summaries, ShouldHaveLength, 2)
				So(summaries[0].Round, ShouldEqual, "Round 1")
				So(summaries[0].Winner, ShouldEqual, "ada")
				So(summaries[0].WinnerDistanceKm, ShouldAlmostEqual, 1, 0.001)
				So(summaries[1].Round, ShouldEqual, "Finale")
				So(summaries[1].Winner, ShouldEqual, "brin")
			})

			Convey("And unscored rounds should be skipped", func() {
				withUnscored := append(rounds, model.Round{
					Number:      3,
					Submissions: []model.Submission{{Player: "ada"}},
				})
				So(sim.SummarizeRounds(withUnscored), ShouldHaveLength, 2)
			})
		})

		Convey("When summarizing players", func() {
			summaries := sim.SummarizePlayers(rounds)

			Convey("Then totals should sort descending with wins and podiums counted", func() {
				So(summaries, ShouldHaveLength, 2)
				So(summaries[0].Player, ShouldEqual, "ada")
				So(summaries[0].Total, ShouldAlmostEqual, 50_000, 0.001)
				So(summaries[0].Average, ShouldAlmostEqual, 25_000, 0.001)
				So(summaries[0].Wins, ShouldEqual, 1)
				So(summaries[0].Podiums, ShouldEqual, 2)
				So(summaries[0].Rounds, ShouldEqual, 2)
				So(summaries[1].Player, ShouldEqual, "brin")
				So(summaries[1].Wins, ShouldEqual, 1)
			})
		})
	})
}

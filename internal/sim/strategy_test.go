package sim_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/mevric/tpgkit/internal/domain/model"
	"github.com/mevric/tpgkit/internal/geo"
	"github.com/mevric/tpgkit/internal/sim"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClosestPoint(t *testing.T) {
	Convey("Given a point set and a target", t, func() {
		strategy := sim.ClosestPoint{Model: geo.Haversine}
		set := model.PointSet{
			Player: "ada",
			Points: []model.Point{
				{Lat: 10, Lng: 10},
				{Lat: 1, Lng: 1},
				{Lat: 50, Lng: 50},
			},
		}

		Convey("When selecting against the origin", func() {
			p, err := strategy.Select(set, model.Point{}, nil)

			Convey("Then the nearest point should win", func() {
				So(err, ShouldBeNil)
				So(p, ShouldResemble, model.Point{Lat: 1, Lng: 1})
			})
		})

		Convey("When two points are equidistant", func() {
			tied := model.PointSet{
				Player: "ada",
				Points: []model.Point{
					{Lat: 0, Lng: 1},
					{Lat: 1, Lng: 0},
				},
			}
			p, err := strategy.Select(tied, model.Point{}, nil)

			Convey("Then the first occurrence should win", func() {
				So(err, ShouldBeNil)
				So(p, ShouldResemble, model.Point{Lat: 0, Lng: 1})
			})
		})

		Convey("When the set is empty", func() {
			_, err := strategy.Select(model.PointSet{Player: "ada"}, model.Point{}, nil)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, model.ErrInvalidPointSet), ShouldBeTrue)
			})
		})
	})
}

func TestRandomPoint(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		strategy := sim.RandomPoint{}
		set := model.PointSet{
			Player: "ada",
			Points: []model.Point{
				{Lat: 1, Lng: 1},
				{Lat: 2, Lng: 2},
				{Lat: 3, Lng: 3},
			},
		}

		Convey("When selecting twice with the same seed", func() {
			first, err := strategy.Select(set, model.Point{}, rand.New(rand.NewSource(42)))
			So(err, ShouldBeNil)
			second, err := strategy.Select(set, model.Point{}, rand.New(rand.NewSource(42)))
			So(err, ShouldBeNil)

			Convey("Then the picks should match", func() {
				So(first, ShouldResemble, second)
			})
		})

		Convey("When selecting many times", func() {
			rng := rand.New(rand.NewSource(42))
			seen := make(map[model.Point]bool)
			for i := 0; i < 100; i++ {
				p, err := strategy.Select(set, model.Point{}, rng)
				So(err, ShouldBeNil)
				seen[p] = true
			}

			Convey("Then every pick should come from the set", func() {
				for p := range seen {
					So(set.Points, ShouldContain, p)
				}
			})
		})

		Convey("When no generator is supplied", func() {
			_, err := strategy.Select(set, model.Point{}, nil)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, sim.ErrNilGenerator), ShouldBeTrue)
			})
		})
	})
}

func TestFixedPoint(t *testing.T) {
	Convey("Given the fixed strategy", t, func() {
		strategy := sim.FixedPoint{}

		Convey("When the set holds exactly one point", func() {
			p, err := strategy.Select(model.PointSet{
				Player: "ada",
				Points: []model.Point{{Lat: 5, Lng: 5}},
			}, model.Point{}, nil)

			Convey("Then that point should be returned", func() {
				So(err, ShouldBeNil)
				So(p, ShouldResemble, model.Point{Lat: 5, Lng: 5})
			})
		})

		Convey("When the set holds more than one point", func() {
			_, err := strategy.Select(model.PointSet{
				Player: "ada",
				Points: []model.Point{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}},
			}, model.Point{}, nil)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, sim.ErrNotSinglePoint), ShouldBeTrue)
			})
		})
	})
}

func TestParseStrategy(t *testing.T) {
	Convey("Given the known strategy names", t, func() {
		for _, name := range []string{"closest", "random", "fixed"} {
			strategy, err := sim.ParseStrategy(name, geo.Haversine)
			So(err, ShouldBeNil)
			So(strategy.Name(), ShouldEqual, name)
		}
	})

	Convey("Given an unknown strategy name", t, func() {
		_, err := sim.ParseStrategy("psychic", geo.Haversine)
		So(errors.Is(err, sim.ErrUnknownStrategy), ShouldBeTrue)
	})
}

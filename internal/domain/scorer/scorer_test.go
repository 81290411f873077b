package scorer_test

import (
	"errors"
	"testing"

	"github.com/mevric/tpgkit/internal/domain/model"
	"github.com/mevric/tpgkit/internal/domain/scorer"
	"github.com/mevric/tpgkit/internal/geo"
	. "github.com/smartystreets/goconvey/convey"
)

func testRound() model.Round {
	opts := model.MainGameOptions()
	opts.FivekFlatScore = 0
	opts.AntipodeFivekFlatScore = 0
	return model.Round{
		Number: 1,
		Name:   "Opening",
		Target: model.Point{Lat: 0, Lng: 0},
		Submissions: []model.Submission{
			{Player: "brin", Location: model.Point{Lat: 1, Lng: 0}},
			{Player: "ada", Location: model.Point{Lat: 0, Lng: 0}},
		},
		Options: opts,
	}
}

func TestScorerScore(t *testing.T) {
	Convey("Given a round with an exact hit and a one-degree miss", t, func() {
		sc := scorer.New(geo.Haversine)
		r := testRound()

		Convey("When scored", func() {
			out, err := sc.Score(r)
			So(err, ShouldBeNil)

			Convey("Then submissions should come back sorted by ascending rank", func() {
				So(out.Submissions[0].Player, ShouldEqual, "ada")
				So(out.Submissions[0].Rank, ShouldEqual, 1)
				So(out.Submissions[1].Player, ShouldEqual, "brin")
				So(out.Submissions[1].Rank, ShouldEqual, 2)
			})

			Convey("And distances and bearings should be measured against the target", func() {
				So(out.Submissions[0].Distance, ShouldAlmostEqual, 0, 0.001)
				// One degree of latitude on the scoring sphere.
				So(out.Submissions[1].Distance, ShouldAlmostEqual, 111_194.93, 0.01)
				// From (1,0) the target lies due south.
				So(out.Submissions[1].Bearing, ShouldAlmostEqual, 180, 0.001)
			})

			Convey("And the exact hit should carry the full formula score", func() {
				So(out.Submissions[0].Score, ShouldAlmostEqual, 28_000, 0.001)
			})

			Convey("And the input round should be untouched", func() {
				So(r.IsScored(), ShouldBeFalse)
				So(r.Submissions[0].Distance, ShouldEqual, 0)
				So(r.Submissions[0].Player, ShouldEqual, "brin")
			})

			Convey("And re-scoring the output should give the same result", func() {
				again, err := sc.Score(out)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, out)
			})
		})
	})

	Convey("Given a round with no submissions", t, func() {
		sc := scorer.New(geo.Haversine)
		r := testRound()
		r.Submissions = nil

		Convey("When scored", func() {
			_, err := sc.Score(r)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, model.ErrNoSubmissions), ShouldBeTrue)
			})
		})
	})

	Convey("Given a round where a player submitted twice", t, func() {
		sc := scorer.New(geo.Haversine)
		r := testRound()
		r.Submissions = append(r.Submissions, model.Submission{
			Player:   "ada",
			Location: model.Point{Lat: 2, Lng: 2},
		})

		Convey("When scored", func() {
			_, err := sc.Score(r)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, model.ErrDuplicatePlayer), ShouldBeTrue)
			})
		})
	})

	Convey("Given a round with an invalid ruleset", t, func() {
		sc := scorer.New(geo.Haversine)
		r := testRound()
		r.Options.WorldDistanceKm = -1

		Convey("When scored", func() {
			_, err := sc.Score(r)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, model.ErrInvalidOptions), ShouldBeTrue)
			})
		})
	})
}

func TestScorerModels(t *testing.T) {
	Convey("Given the same round under both earth models", t, func() {
		r := testRound()

		Convey("When scored with each model", func() {
			spherical, err := scorer.New(geo.Haversine).Score(r)
			So(err, ShouldBeNil)
			geodesic, err := scorer.New(geo.Geodesic).Score(r)
			So(err, ShouldBeNil)

			Convey("Then the models should agree on the ordering", func() {
				So(spherical.Submissions[0].Player, ShouldEqual, geodesic.Submissions[0].Player)
			})

			Convey("And disagree slightly on the measured distance", func() {
				sphereD := spherical.Submissions[1].Distance
				geodD := geodesic.Submissions[1].Distance
				So(geodD, ShouldNotEqual, sphereD)
				// Within a percent of each other on a one-degree arc.
				So(geodD, ShouldAlmostEqual, sphereD, sphereD*0.01)
			})
		})
	})
}

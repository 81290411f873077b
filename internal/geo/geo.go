// Package geo computes point-to-point distance and bearing under the
// two earth models the game uses: an ellipsoidal WGS84 geodesic and a
// spherical haversine. Distances are symmetric and deterministic.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/StefanSchroeder/Golang-Ellipsoid/ellipsoid"
	"github.com/golang/geo/s2"
)

// Sentinel kinds for geo errors.
var (
	ErrUnknownModel   = errors.New("unknown distance model")
	ErrLengthMismatch = errors.New("coordinate slices differ in length")
)

// Model selects the earth model used for distances.
type Model int

// Known distance models.
const (
	// Geodesic is the WGS84 ellipsoidal model, the more accurate one.
	Geodesic Model = iota
	// Haversine treats the earth as a sphere; slightly less accurate
	// but what the main game uses.
	Haversine
)

func (m Model) String() string {
	switch m {
	case Geodesic:
		return "geodesic"
	case Haversine:
		return "haversine"
	default:
		return fmt.Sprintf("model(%d)", int(m))
	}
}

// ParseModel resolves a model name from config or CLI input.
func ParseModel(name string) (Model, error) {
	switch name {
	case "geodesic", "geod", "wgs84":
		return Geodesic, nil
	case "haversine", "sphere", "spherical":
		return Haversine, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
}

// earthRadiusM is the sphere radius of the haversine model, matching
// the constant the game itself scores with.
const earthRadiusM = 6_371_000.0

var wgs84 = ellipsoid.Init(
	"WGS84", ellipsoid.Degrees, ellipsoid.Meter,
	ellipsoid.LongitudeIsSymmetric, ellipsoid.BearingIsSymmetric,
)

// DistanceAndBearing returns the distance in metres and the initial
// bearing in degrees from (lat1, lng1) to (lat2, lng2) under the model.
func DistanceAndBearing(m Model, lat1, lng1, lat2, lng2 float64) (float64, float64, error) {
	switch m {
	case Geodesic:
		dist, bearing := wgs84.To(lat1, lng1, lat2, lng2)
		return dist, bearing, nil
	case Haversine:
		return haversineDistance(lat1, lng1, lat2, lng2), initialBearing(lat1, lng1, lat2, lng2), nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
}

// Distance returns only the distance in metres under the model.
func Distance(m Model, lat1, lng1, lat2, lng2 float64) (float64, error) {
	dist, _, err := DistanceAndBearing(m, lat1, lng1, lat2, lng2)
	return dist, err
}

// DistancesAndBearings is the vector form over equal-length coordinate
// slices against a single target point.
func DistancesAndBearings(m Model, lats, lngs []float64, targetLat, targetLng float64) ([]float64, []float64, error) {
	if len(lats) != len(lngs) {
		return nil, nil, fmt.Errorf("%w: %d lats, %d lngs", ErrLengthMismatch, len(lats), len(lngs))
	}
	distances := make([]float64, len(lats))
	bearings := make([]float64, len(lats))
	for i := range lats {
		dist, bearing, err := DistanceAndBearing(m, lats[i], lngs[i], targetLat, targetLng)
		if err != nil {
			return nil, nil, err
		}
		distances[i] = dist
		bearings[i] = bearing
	}
	return distances, bearings, nil
}

// haversineDistance is the spherical great-circle distance in metres.
// The s2 library carries the angle math; only the radius is ours.
func haversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return a.Distance(b).Radians() * earthRadiusM
}

// initialBearing is the forward azimuth on the sphere, in degrees in
// the range (-180, 180] to match the geodesic model's convention.
func initialBearing(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180
	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	return math.Atan2(y, x) * 180 / math.Pi
}

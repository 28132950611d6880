// Package geo implements the spherical-Earth geodesy used to place devices
// around a tower and to measure how far they ended up from it.
package geo

import (
	"math"

	"github.com/UnknownOlympus/cellsim/internal/models"
)

// EarthRadiusM is the mean Earth radius in metres.
const EarthRadiusM = 6371000.0

// DestinationPoint returns the point reached by travelling distanceMeters from
// origin along the initial bearing bearingDegrees (clockwise from north).
// The resulting longitude is normalised into [-180, 180).
func DestinationPoint(origin models.Coordinates, distanceMeters, bearingDegrees float64) models.Coordinates {
	lat := toRadians(origin.Latitude)
	lon := toRadians(origin.Longitude)
	bearing := toRadians(bearingDegrees)
	angular := distanceMeters / EarthRadiusM

	sinLat, cosLat := math.Sincos(lat)
	sinAng, cosAng := math.Sincos(angular)

	destLat := math.Asin(sinLat*cosAng + cosLat*sinAng*math.Cos(bearing))
	destLon := lon + math.Atan2(math.Sin(bearing)*sinAng*cosLat, cosAng-sinLat*math.Sin(destLat))

	return models.Coordinates{
		Latitude:  toDegrees(destLat),
		Longitude: NormalizeLongitude(toDegrees(destLon)),
	}
}

// DistanceMeters returns the great-circle distance between a and b using the
// haversine formula.
func DistanceMeters(a, b models.Coordinates) float64 {
	phi1 := toRadians(a.Latitude)
	phi2 := toRadians(b.Latitude)
	dPhi := toRadians(b.Latitude - a.Latitude)
	dLambda := toRadians(b.Longitude - a.Longitude)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// Rounding can push h a hair outside [0, 1] for antipodal points.
	h = math.Min(math.Max(h, 0), 1)

	return EarthRadiusM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// NormalizeLongitude wraps lon into [-180, 180).
func NormalizeLongitude(lon float64) float64 {
	if lon >= -180 && lon < 180 {
		return lon
	}
	wrapped := math.Mod(lon+180, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	return wrapped - 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

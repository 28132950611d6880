package models

// Coordinates represents a geographical point defined by its latitude and longitude in degrees.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point, [-90, 90].
	Longitude float64 // Longitude of the geographical point, [-180, 180].
}

// Pair returns the point as a [lat, lon] pair, the order used on the wire.
func (c Coordinates) Pair() [2]float64 {
	return [2]float64{c.Latitude, c.Longitude}
}

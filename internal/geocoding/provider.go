// Package geocoding resolves a tower's postal address into coordinates.
package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/cellsim/internal/models"
)

// ErrEmptyResponse is returned when a provider finds no match for the address.
var ErrEmptyResponse = errors.New("geocoding provider returned no results")

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

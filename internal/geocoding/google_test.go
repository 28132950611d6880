package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/cellsim/internal/geocoding"
	"github.com/UnknownOlympus/cellsim/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestGoogleProvider_Geocode(t *testing.T) {
	mockClient := mocks.NewGoogleAPIClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()

	t.Run("api returns error", func(t *testing.T) {
		address := "some invalid place"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).Return(nil, assert.AnError).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		address := "nowhere"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).Return(nil, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		mockClient.AssertExpectations(t)
	})

	t.Run("successful geocoding", func(t *testing.T) {
		address := "Kontraktova square, Kyiv"
		req := &maps.GeocodingRequest{Address: address}
		response := []maps.GeocodingResult{
			{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 50.4656, Lng: 30.5153}}},
		}

		mockClient.On("Geocode", ctx, req).Return(response, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.NoError(t, err)
		assert.InEpsilon(t, 50.4656, coords.Latitude, 1e-9)
		assert.InEpsilon(t, 30.5153, coords.Longitude, 1e-9)
		mockClient.AssertExpectations(t)
	})
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/cellsim/internal/models"
)

// GetSite returns a catalogued tower site.
func (s *SimulationService) GetSite(ctx context.Context, siteID int) (*models.Site, error) {
	if s.sites == nil {
		return nil, ErrSitesUnavailable
	}

	site, err := s.sites.GetSite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load site %d: %w", siteID, err)
	}

	return site, nil
}

// ListSites returns up to limit catalogued tower sites.
func (s *SimulationService) ListSites(ctx context.Context, limit int) ([]models.Site, error) {
	if s.sites == nil {
		return nil, ErrSitesUnavailable
	}

	sites, err := s.sites.ListSites(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	return sites, nil
}

// SaveSite stores site in the catalogue and returns it with its stored ID.
// A zero ID adds a new site, any other ID creates or replaces that site.
func (s *SimulationService) SaveSite(ctx context.Context, site models.Site) (*models.Site, error) {
	if s.sites == nil {
		return nil, ErrSitesUnavailable
	}

	siteID, err := s.sites.SaveSite(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("failed to save site %q: %w", site.Name, err)
	}
	site.ID = siteID

	s.log.InfoContext(ctx, "Tower site saved",
		"site", site.ID,
		"name", site.Name,
		"lat", site.Location.Latitude,
		"lon", site.Location.Longitude,
	)

	return &site, nil
}

// SimulateSite runs a simulation for a catalogued site. The site's nominal
// transmit power is used unless transmitPowerDbm overrides it.
func (s *SimulationService) SimulateSite(
	ctx context.Context,
	siteID int,
	transmitPowerDbm *float64,
	seed *uint64,
) (*models.SimulationReport, error) {
	site, err := s.GetSite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	power := site.TransmitPowerDbm
	if transmitPowerDbm != nil {
		power = *transmitPowerDbm
	}

	s.log.DebugContext(ctx, "Simulating catalogued site", "site", site.ID, "name", site.Name)

	return s.Simulate(ctx, models.SimulationRequest{Tower: site.Location, TransmitPowerDbm: power, Seed: seed})
}

// SimulateAddress geocodes address and runs a simulation with the tower there.
func (s *SimulationService) SimulateAddress(
	ctx context.Context,
	address string,
	transmitPowerDbm float64,
	seed *uint64,
) (*models.SimulationReport, error) {
	if s.geocoder == nil {
		return nil, ErrGeocoderUnavailable
	}

	startTime := time.Now()
	coords, err := s.geocoder.Geocode(ctx, address)
	s.metrics.GeocodingSeconds.WithLabelValues(s.providerName).Observe(time.Since(startTime).Seconds())
	if err != nil {
		s.metrics.GeocodingErrors.Inc()
		s.log.ErrorContext(ctx, "Failed to geocode tower address", "address", address, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGeocodingFailed, err)
	}

	s.log.DebugContext(ctx, "Tower address resolved",
		"address", address,
		"lat", coords.Latitude,
		"lon", coords.Longitude,
	)

	return s.Simulate(ctx, models.SimulationRequest{Tower: *coords, TransmitPowerDbm: transmitPowerDbm, Seed: seed})
}

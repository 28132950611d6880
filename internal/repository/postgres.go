package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/cellsim/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetSite retrieves a single tower site by its ID.
// It returns ErrSiteNotFound when no row matches.
func (r *Repository) GetSite(ctx context.Context, siteID int) (*models.Site, error) {
	query := `
		SELECT site_id, name, address, latitude, longitude, transmit_power_dbm
		FROM public.tower_sites
		WHERE site_id = $1;
	`

	var site models.Site
	err := r.db.QueryRow(ctx, query, siteID).Scan(
		&site.ID,
		&site.Name,
		&site.Address,
		&site.Location.Latitude,
		&site.Location.Longitude,
		&site.TransmitPowerDbm,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSiteNotFound, siteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tower site: %w", err)
	}

	r.log.DebugContext(ctx, "Tower site loaded", "ID", site.ID, "Name", site.Name)

	return &site, nil
}

// ListSites returns up to limit tower sites ordered by ID.
func (r *Repository) ListSites(ctx context.Context, limit int) ([]models.Site, error) {
	sites := []models.Site{}
	query := `
		SELECT site_id, name, address, latitude, longitude, transmit_power_dbm
		FROM public.tower_sites
		ORDER BY site_id ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tower sites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var site models.Site
		if errScan := rows.Scan(
			&site.ID,
			&site.Name,
			&site.Address,
			&site.Location.Latitude,
			&site.Location.Longitude,
			&site.TransmitPowerDbm,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan tower site: %w", errScan)
		}
		sites = append(sites, site)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return sites, nil
}

// SaveSite inserts a tower site, or updates it when site.ID already exists,
// and returns the stored ID. A zero ID always inserts a new site.
func (r *Repository) SaveSite(ctx context.Context, site models.Site) (int, error) {
	var (
		query string
		args  []any
	)
	if site.ID == 0 {
		query = `
		INSERT INTO public.tower_sites (name, address, latitude, longitude, transmit_power_dbm)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING site_id;
	`
		args = []any{site.Name, site.Address, site.Location.Latitude, site.Location.Longitude, site.TransmitPowerDbm}
	} else {
		query = `
		INSERT INTO public.tower_sites (site_id, name, address, latitude, longitude, transmit_power_dbm)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (site_id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			transmit_power_dbm = EXCLUDED.transmit_power_dbm
		RETURNING site_id;
	`
		args = []any{
			site.ID, site.Name, site.Address, site.Location.Latitude, site.Location.Longitude, site.TransmitPowerDbm,
		}
	}

	var siteID int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&siteID); err != nil {
		return 0, fmt.Errorf("failed to save tower site: %w", err)
	}

	r.log.DebugContext(ctx, "Tower site saved", "ID", siteID, "Name", site.Name)

	return siteID, nil
}

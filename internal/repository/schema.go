package repository

import (
	"context"
	"fmt"
)

// Schema creates the tower site catalogue table.
const Schema = `
	CREATE TABLE IF NOT EXISTS public.tower_sites (
		site_id            SERIAL PRIMARY KEY,
		name               TEXT NOT NULL,
		address            TEXT NOT NULL DEFAULT '',
		latitude           DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude          DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
		transmit_power_dbm DOUBLE PRECISION NOT NULL
	);
`

// Migrate applies Schema. It is safe to run on every start-up.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply tower site schema: %w", err)
	}

	r.log.InfoContext(ctx, "Tower site schema is up to date")

	return nil
}

package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/cellsim/internal/models"
	"github.com/UnknownOlympus/cellsim/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getSiteQuery = `
	SELECT site_id, name, address, latitude, longitude, transmit_power_dbm
	FROM public.tower_sites
	WHERE site_id = $1;
`

const listSitesQuery = `
	SELECT site_id, name, address, latitude, longitude, transmit_power_dbm
	FROM public.tower_sites
	ORDER BY site_id ASC
	LIMIT $1;
`

var siteColumns = []string{"site_id", "name", "address", "latitude", "longitude", "transmit_power_dbm"}

func TestGetSite(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	siteID := 7

	t.Run("error - query site", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getSiteQuery)).
			WithArgs(siteID).
			WillReturnError(assert.AnError)

		site, err := repo.GetSite(ctx, siteID)

		require.Nil(t, site)
		require.ErrorContains(t, err, "failed to query tower site")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - site not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getSiteQuery)).
			WithArgs(siteID).
			WillReturnError(pgx.ErrNoRows)

		site, err := repo.GetSite(ctx, siteID)

		require.Nil(t, site)
		require.ErrorIs(t, err, repository.ErrSiteNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - get site", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getSiteQuery)).
			WithArgs(siteID).
			WillReturnRows(pgxmock.NewRows(siteColumns).AddRow(7, "Podil", "Kyiv", 50.46, 30.51, 43.0))

		site, err := repo.GetSite(ctx, siteID)

		require.NoError(t, err)
		assert.Equal(t, &models.Site{
			ID:               7,
			Name:             "Podil",
			Address:          "Kyiv",
			Location:         models.Coordinates{Latitude: 50.46, Longitude: 30.51},
			TransmitPowerDbm: 43,
		}, site)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListSites(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	limit := 10

	t.Run("error - query sites", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listSitesQuery)).
			WithArgs(limit).
			WillReturnError(assert.AnError)

		sites, err := repo.ListSites(ctx, limit)

		require.Nil(t, sites)
		require.ErrorContains(t, err, "failed to query tower sites")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan site", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listSitesQuery)).
			WithArgs(limit).
			WillReturnRows(pgxmock.NewRows(siteColumns).AddRow("invalid_id", "a", "", 1.0, 2.0, 40.0))

		sites, err := repo.ListSites(ctx, limit)

		require.Nil(t, sites)
		require.ErrorContains(t, err, "failed to scan tower site")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listSitesQuery)).
			WithArgs(limit).
			WillReturnRows(
				pgxmock.NewRows(siteColumns).AddRow(1, "a", "", 1.0, 2.0, 40.0).
					RowError(1, assert.AnError),
			)

		sites, err := repo.ListSites(ctx, limit)

		require.Nil(t, sites)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - list sites", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listSitesQuery)).
			WithArgs(limit).
			WillReturnRows(pgxmock.NewRows(siteColumns).
				AddRow(1, "Podil", "", 50.46, 30.51, 43.0).
				AddRow(2, "Obolon", "", 50.50, 30.49, 40.0))

		sites, err := repo.ListSites(ctx, limit)

		require.NoError(t, err)
		require.Len(t, sites, 2)
		assert.Equal(t, "Podil", sites[0].Name)
		assert.Equal(t, 2, sites[1].ID)
		assert.InEpsilon(t, 50.50, sites[1].Location.Latitude, 1e-9)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - empty catalogue", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listSitesQuery)).
			WithArgs(limit).
			WillReturnRows(pgxmock.NewRows(siteColumns))

		sites, err := repo.ListSites(ctx, limit)

		require.NoError(t, err)
		assert.NotNil(t, sites)
		assert.Empty(t, sites)
	})
}

func TestSaveSite(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	site := models.Site{
		Name:             "Podil",
		Address:          "Kyiv",
		Location:         models.Coordinates{Latitude: 50.46, Longitude: 30.51},
		TransmitPowerDbm: 43,
	}

	t.Run("success - insert new site", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(`INSERT INTO public.tower_sites \(name,`).
			WithArgs(site.Name, site.Address, site.Location.Latitude, site.Location.Longitude, site.TransmitPowerDbm).
			WillReturnRows(pgxmock.NewRows([]string{"site_id"}).AddRow(11))

		siteID, err := repo.SaveSite(ctx, site)

		require.NoError(t, err)
		assert.Equal(t, 11, siteID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - upsert existing site", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		existing := site
		existing.ID = 3

		mock.ExpectQuery(`ON CONFLICT \(site_id\) DO UPDATE`).
			WithArgs(3, site.Name, site.Address, site.Location.Latitude, site.Location.Longitude, site.TransmitPowerDbm).
			WillReturnRows(pgxmock.NewRows([]string{"site_id"}).AddRow(3))

		siteID, err := repo.SaveSite(ctx, existing)

		require.NoError(t, err)
		assert.Equal(t, 3, siteID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - save site", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(`INSERT INTO public.tower_sites`).
			WithArgs(site.Name, site.Address, site.Location.Latitude, site.Location.Longitude, site.TransmitPowerDbm).
			WillReturnError(assert.AnError)

		siteID, err := repo.SaveSite(ctx, site)

		require.Zero(t, siteID)
		require.ErrorContains(t, err, "failed to save tower site")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMigrate(t *testing.T) {
	t.Parallel()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(regexp.QuoteMeta(repository.Schema)).WillReturnResult(pgxmock.NewResult("CREATE", 0))

		require.NoError(t, repository.NewRepository(mock, logger).Migrate(t.Context()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(regexp.QuoteMeta(repository.Schema)).WillReturnError(assert.AnError)

		err = repository.NewRepository(mock, logger).Migrate(t.Context())
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

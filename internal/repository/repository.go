package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/cellsim/internal/models"
)

// ErrSiteNotFound is returned when no site matches the requested ID.
var ErrSiteNotFound = errors.New("site not found")

type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the tower site catalogue used to resolve simulation targets.
type Interface interface {
	GetSite(ctx context.Context, siteID int) (*models.Site, error)
	ListSites(ctx context.Context, limit int) ([]models.Site, error)
	SaveSite(ctx context.Context, site models.Site) (int, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

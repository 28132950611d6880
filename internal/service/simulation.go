package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/UnknownOlympus/cellsim/internal/geocoding"
	"github.com/UnknownOlympus/cellsim/internal/metrics"
	"github.com/UnknownOlympus/cellsim/internal/models"
	"github.com/UnknownOlympus/cellsim/internal/repository"
	"github.com/UnknownOlympus/cellsim/internal/simulation"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/UnknownOlympus/cellsim/internal/service"

var (
	// ErrSitesUnavailable is returned by site operations when no catalogue is configured.
	ErrSitesUnavailable = errors.New("tower site catalogue is not configured")
	// ErrGeocoderUnavailable is returned by address lookups when no provider is configured.
	ErrGeocoderUnavailable = errors.New("geocoding provider is not configured")
	// ErrGeocodingFailed wraps any failure of the geocoding provider.
	ErrGeocodingFailed = errors.New("failed to geocode tower address")
)

// SimulationService runs coverage simulations and resolves the tower they are
// run against, either from raw coordinates, a catalogued site or an address.
type SimulationService struct {
	log          *slog.Logger         // Logger for logging service activities
	engine       *simulation.Engine   // Engine computing the per-device results
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	defaultSeed  uint64               // Seed used when a request carries none, 0 draws a fresh one
	sites        repository.Interface // Tower site catalogue, may be nil
	geocoder     geocoding.Provider   // Address resolver, may be nil
	providerName string               // Name of the geocoder for metrics labeling
}

// NewSimulationService creates a new instance of SimulationService.
// The site catalogue and geocoder are optional and attached with WithSites and
// WithGeocoder.
func NewSimulationService(
	log *slog.Logger,
	engine *simulation.Engine,
	metrics *metrics.Metrics,
	defaultSeed uint64,
) *SimulationService {
	return &SimulationService{
		log:         log,
		engine:      engine,
		metrics:     metrics,
		defaultSeed: defaultSeed,
	}
}

// WithSites attaches a tower site catalogue.
func (s *SimulationService) WithSites(repo repository.Interface) *SimulationService {
	s.sites = repo
	return s
}

// WithGeocoder attaches an address resolver; providerName labels its metrics.
func (s *SimulationService) WithGeocoder(provider geocoding.Provider, providerName string) *SimulationService {
	s.geocoder = provider
	s.providerName = providerName
	return s
}

// Simulate runs one simulation for req and returns its report.
func (s *SimulationService) Simulate(ctx context.Context, req models.SimulationRequest) (*models.SimulationReport, error) {
	runID := uuid.New()
	seed := s.seedFor(req)
	log := s.log.With("run", runID.String())

	ctx, span := otel.Tracer(tracerName).Start(ctx, "simulation.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", runID.String()),
		attribute.Float64("tower.latitude", req.Tower.Latitude),
		attribute.Float64("tower.longitude", req.Tower.Longitude),
		attribute.Float64("tower.transmit_power_dbm", req.TransmitPowerDbm),
		attribute.String("run.seed", strconv.FormatUint(seed, 10)),
	)

	s.metrics.ActiveRuns.Inc()
	defer s.metrics.ActiveRuns.Dec()

	log.DebugContext(ctx, "Starting simulation",
		"lat", req.Tower.Latitude,
		"lon", req.Tower.Longitude,
		"transmit_power_dbm", req.TransmitPowerDbm,
		"seed", seed,
	)

	startTime := time.Now()
	results, err := s.engine.Run(ctx, req, rand.New(rand.NewPCG(seed, seed)))
	s.metrics.SimulationSeconds.Observe(time.Since(startTime).Seconds())
	if err != nil {
		s.metrics.Simulations.WithLabelValues("failure").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.WarnContext(ctx, "Simulation aborted", "error", err)
		return nil, fmt.Errorf("failed to run simulation: %w", err)
	}

	s.metrics.Simulations.WithLabelValues("success").Inc()
	for _, r := range results {
		class := string(r.Class)
		s.metrics.DevicesSimulated.WithLabelValues(class).Inc()
		s.metrics.DeviceSatisfaction.WithLabelValues(class).Observe(r.Satisfaction)
	}

	summary := simulation.Summarize(results)
	span.SetAttributes(attribute.Int("run.devices", len(results)))

	log.InfoContext(ctx, "Simulation finished",
		"devices", len(results),
		"duration", time.Since(startTime),
	)

	return &models.SimulationReport{
		RunID:            runID,
		Tower:            req.Tower,
		TransmitPowerDbm: req.TransmitPowerDbm,
		Seed:             seed,
		Devices:          results,
		Summary:          summary,
	}, nil
}

// seedFor picks the random seed of a run: the request's, else the configured
// default, else a fresh one.
func (s *SimulationService) seedFor(req models.SimulationRequest) uint64 {
	switch {
	case req.Seed != nil:
		return *req.Seed
	case s.defaultSeed != 0:
		return s.defaultSeed
	default:
		return rand.Uint64()
	}
}

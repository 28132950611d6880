package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/cellsim/internal/geocoding"
	"github.com/UnknownOlympus/cellsim/internal/models"
	"github.com/UnknownOlympus/cellsim/internal/repository"
	"github.com/UnknownOlympus/cellsim/internal/service"
	"github.com/gorilla/mux"
)

const (
	maxBodyBytes     = 1 << 20
	defaultSiteLimit = 100
	maxSiteLimit     = 1000
)

// Simulator is the service surface the HTTP layer drives.
type Simulator interface {
	Simulate(ctx context.Context, req models.SimulationRequest) (*models.SimulationReport, error)
	SimulateAddress(
		ctx context.Context, address string, transmitPowerDbm float64, seed *uint64,
	) (*models.SimulationReport, error)
	SimulateSite(
		ctx context.Context, siteID int, transmitPowerDbm *float64, seed *uint64,
	) (*models.SimulationReport, error)
	GetSite(ctx context.Context, siteID int) (*models.Site, error)
	ListSites(ctx context.Context, limit int) ([]models.Site, error)
	SaveSite(ctx context.Context, site models.Site) (*models.Site, error)
}

// PingFunc reports whether a backing dependency is reachable.
type PingFunc func(ctx context.Context) error

// Handler serves the simulation API.
type Handler struct {
	log  *slog.Logger
	svc  Simulator
	ping PingFunc
}

// NewHandler creates a Handler. ping may be nil when nothing needs checking.
func NewHandler(log *slog.Logger, svc Simulator, ping PingFunc) *Handler {
	return &Handler{log: log, svc: svc, ping: ping}
}

func (h *Handler) simulate(w http.ResponseWriter, r *http.Request) {
	var body simulateRequest
	if !h.decode(w, r, &body, false) {
		return
	}

	req, err := body.toModel()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	report, err := h.svc.Simulate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSimulationResponse(report))
}

func (h *Handler) simulateAddress(w http.ResponseWriter, r *http.Request) {
	var body addressRequest
	if !h.decode(w, r, &body, false) {
		return
	}

	if err := body.validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	report, err := h.svc.SimulateAddress(r.Context(), body.Address, *body.PotenciaDbm, body.Seed)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSimulationResponse(report))
}

func (h *Handler) simulateSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := siteIDFrom(w, r)
	if !ok {
		return
	}

	var body siteSimulateRequest
	if !h.decode(w, r, &body, true) {
		return
	}

	if err := body.validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	report, err := h.svc.SimulateSite(r.Context(), siteID, body.PotenciaDbm, body.Seed)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSimulationResponse(report))
}

func (h *Handler) getSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := siteIDFrom(w, r)
	if !ok {
		return
	}

	site, err := h.svc.GetSite(r.Context(), siteID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSiteResponse(*site))
}

func (h *Handler) listSites(w http.ResponseWriter, r *http.Request) {
	limit := defaultSiteLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxSiteLimit)
	}

	sites, err := h.svc.ListSites(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := struct {
		Sites []siteResponse `json:"sites"`
	}{Sites: make([]siteResponse, 0, len(sites))}
	for _, site := range sites {
		resp.Sites = append(resp.Sites, newSiteResponse(site))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createSite(w http.ResponseWriter, r *http.Request) {
	h.saveSite(w, r, 0, http.StatusCreated)
}

func (h *Handler) replaceSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := siteIDFrom(w, r)
	if !ok {
		return
	}
	if siteID == 0 {
		writeError(w, http.StatusBadRequest, "invalid site id")
		return
	}

	h.saveSite(w, r, siteID, http.StatusOK)
}

func (h *Handler) saveSite(w http.ResponseWriter, r *http.Request, siteID, status int) {
	var body siteRequest
	if !h.decode(w, r, &body, false) {
		return
	}

	site, err := body.toModel(siteID)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := h.svc.SaveSite(r.Context(), site)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, status, newSiteResponse(*saved))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.log.WarnContext(r.Context(), "Health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// decode reads a JSON body into dst. An empty body is accepted only when optional is set.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		h.log.DebugContext(r.Context(), "Rejected malformed request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrSiteNotFound):
		writeError(w, http.StatusNotFound, "site not found")
	case errors.Is(err, geocoding.ErrEmptyResponse):
		writeError(w, http.StatusNotFound, "address not found")
	case errors.Is(err, service.ErrSitesUnavailable), errors.Is(err, service.ErrGeocoderUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrGeocodingFailed):
		writeError(w, http.StatusBadGateway, "geocoding provider failed")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.log.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func siteIDFrom(w http.ResponseWriter, r *http.Request) (int, bool) {
	siteID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid site id")
		return 0, false
	}
	return siteID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

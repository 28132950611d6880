package api

import (
	"net/http"
	"slices"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers the simulation, site catalogue and monitoring routes.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/simulate", h.simulate).Methods(http.MethodPost)
	r.HandleFunc("/simulate/address", h.simulateAddress).Methods(http.MethodPost)
	r.HandleFunc("/sites", h.listSites).Methods(http.MethodGet)
	r.HandleFunc("/sites", h.createSite).Methods(http.MethodPost)
	r.HandleFunc("/sites/{id:[0-9]+}", h.getSite).Methods(http.MethodGet)
	r.HandleFunc("/sites/{id:[0-9]+}", h.replaceSite).Methods(http.MethodPut)
	r.HandleFunc("/sites/{id:[0-9]+}/simulate", h.simulateSite).Methods(http.MethodPost)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

// corsHeaders are the request headers browser clients may send.
var corsHeaders = []string{
	"Content-Type", "Authorization", "Accept", "Origin", "Cache-Control", "X-Requested-With", "X-Request-Id",
}

// WithCORS lets browser clients on the given origins call the API with
// credentials. A "*" entry admits any origin; the request origin is echoed
// back since browsers refuse a literal wildcard on credentialed responses.
func WithCORS(next http.Handler, origins []string) http.Handler {
	opts := []handlers.CORSOption{
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders(corsHeaders),
		handlers.AllowCredentials(),
	}

	if slices.Contains(origins, "*") {
		opts = append(opts, handlers.AllowedOriginValidator(func(string) bool { return true }))
	} else {
		opts = append(opts, handlers.AllowedOrigins(origins))
	}

	return handlers.CORS(opts...)(next)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors of the simulator.
type Metrics struct {
	Simulations        *prometheus.CounterVec
	SimulationSeconds  prometheus.Histogram
	DevicesSimulated   *prometheus.CounterVec
	DeviceSatisfaction *prometheus.HistogramVec
	ActiveRuns         prometheus.Gauge
	GeocodingSeconds   *prometheus.HistogramVec
	GeocodingErrors    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Simulations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cellsim_simulations_total",
			Help: "Total number of simulation runs.",
		}, []string{"status"}),
		SimulationSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "cellsim_simulation_duration_seconds",
			Help:    "Wall time of a full simulation run.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		DevicesSimulated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cellsim_devices_simulated_total",
			Help: "Total number of simulated devices.",
		}, []string{"service_class"}),
		DeviceSatisfaction: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cellsim_device_satisfaction",
			Help:    "Satisfaction score of simulated devices.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}, []string{"service_class"}),
		ActiveRuns: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "cellsim_active_runs",
			Help: "Current number of simulation runs in progress.",
		}),
		GeocodingSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cellsim_geocoding_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocodingErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "cellsim_geocoding_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
	}
}

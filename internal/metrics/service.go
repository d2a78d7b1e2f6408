package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	SearchRuns         prometheus.Counter
	SearchCacheHits    prometheus.Counter
	SearchDuration     prometheus.Histogram
	BookingsCreated    prometheus.Counter
	BookingsFailed     prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SearchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_search_runs_total",
			Help: "The total number of roster searches executed.",
		}),
		SearchCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_search_cache_hits_total",
			Help: "The total number of searches served from the result cache.",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtline_search_duration_seconds",
			Help:    "The duration of individual roster searches.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_bookings_created_total",
			Help: "The total number of bookings successfully created.",
		}),
		BookingsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_bookings_failed_total",
			Help: "The total number of booking confirmations that failed.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtline_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtline_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SearchRuns,
		s.SearchCacheHits,
		s.SearchDuration,
		s.BookingsCreated,
		s.BookingsFailed,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSearchRuns() {
	s.SearchRuns.Inc()
}

func (s *Service) IncSearchCacheHits() {
	s.SearchCacheHits.Inc()
}

func (s *Service) ObserveSearchDuration(duration float64) {
	s.SearchDuration.Observe(duration)
}

func (s *Service) IncBookingsCreated() {
	s.BookingsCreated.Inc()
}

func (s *Service) IncBookingsFailed() {
	s.BookingsFailed.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

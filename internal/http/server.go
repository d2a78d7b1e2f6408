package http

import (
	"net/http"

	"github.com/vlkr-dev/courtline/internal/availability"
	"github.com/vlkr-dev/courtline/internal/booking"
	"github.com/vlkr-dev/courtline/internal/club"
	"github.com/vlkr-dev/courtline/internal/config"
	"github.com/vlkr-dev/courtline/internal/matching"
	"github.com/vlkr-dev/courtline/internal/metrics"
	"github.com/vlkr-dev/courtline/internal/notifier"
	"github.com/vlkr-dev/courtline/internal/pubsub"
	"github.com/vlkr-dev/courtline/internal/roster"
)

func NewServer(
	rosterStore roster.Store,
	clubStore club.Store,
	bookingStore booking.Store,
	matcher *matching.Service,
	availabilitySvc availability.Provider,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	notifier notifier.Notifier,
	pubsub pubsub.PubSubClient,
) *Server {
	server := &Server{
		Roster:         rosterStore,
		Clubs:          clubStore,
		Bookings:       bookingStore,
		Matcher:        matcher,
		Availability:   availabilitySvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		sessions:       make(map[string]*booking.Workflow),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/clubs", Chain(s.ListClubsHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/search", Chain(s.SearchHandler(), paramsMiddleware))
	s.Router.Handle("/suggestions", Chain(s.SuggestionsHandler(), paramsMiddleware))
	s.Router.Handle("/featured", Chain(s.FeaturedPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/availability", Chain(s.AvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/booking/start", Chain(s.StartBookingHandler(), paramsMiddleware))
	s.Router.Handle("/booking/select-club", Chain(s.SelectClubHandler(), paramsMiddleware))
	s.Router.Handle("/booking/select-datetime", Chain(s.SelectDateTimeHandler(), paramsMiddleware))
	s.Router.Handle("/booking/select-court", Chain(s.SelectCourtHandler(), paramsMiddleware))
	s.Router.Handle("/booking/confirm", Chain(s.ConfirmBookingHandler(), paramsMiddleware))
	s.Router.Handle("/booking/back", Chain(s.BackHandler(), paramsMiddleware))
	s.Router.Handle("/booking/reset", Chain(s.ResetBookingHandler(), paramsMiddleware))
	s.Router.Handle("/booking/state", Chain(s.BookingStateHandler(), paramsMiddleware))
	s.Router.Handle("/bookings", Chain(s.ListBookingsHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/cancel", Chain(s.CancelBookingHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

package http

import (
	"net/http"
	"sync"

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

type Server struct {
	Roster         roster.Store
	Clubs          club.Store
	Bookings       booking.Store
	Matcher        *matching.Service
	Availability   availability.Provider
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux

	pubsub pubsub.PubSubClient

	// Wizard sessions are in-memory only; one workflow per session ID.
	sessionsMu sync.Mutex
	sessions   map[string]*booking.Workflow
}

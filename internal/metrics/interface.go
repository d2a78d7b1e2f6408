package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSearchRuns()
	IncSearchCacheHits()
	ObserveSearchDuration(duration float64)
	IncBookingsCreated()
	IncBookingsFailed()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}

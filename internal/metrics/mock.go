package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	searchRuns      int
	searchCacheHits int
	searchDurations []float64
	bookingsCreated int
	bookingsFailed  int
	notifSent       int
	notifFailed     int
	startupTime     float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		searchDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSearchRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchRuns++
}

func (m *Mock) IncSearchCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCacheHits++
}

func (m *Mock) ObserveSearchDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchDurations = append(m.searchDurations, duration)
}

func (m *Mock) IncBookingsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingsCreated++
}

func (m *Mock) IncBookingsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingsFailed++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SearchRuns returns the number of times IncSearchRuns was called.
func (m *Mock) SearchRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchRuns
}

// SearchCacheHits returns the number of times IncSearchCacheHits was called.
func (m *Mock) SearchCacheHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCacheHits
}

// BookingsCreated returns the number of times IncBookingsCreated was called.
func (m *Mock) BookingsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingsCreated
}

// BookingsFailed returns the number of times IncBookingsFailed was called.
func (m *Mock) BookingsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingsFailed
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

package notifier

import (
	"sync"

	"github.com/vlkr-dev/courtline/internal/booking"
	"github.com/vlkr-dev/courtline/internal/matching"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendBookingConfirmationCalls []struct{ Booking *booking.Booking }
	SendBookingCancellationCalls []struct{ Booking *booking.Booking }
	SendSuggestionsCalls         []struct {
		UserName    string
		Suggestions []matching.SuggestedMatch
	}

	// Spies
	SendBookingConfirmationFunc func(b *booking.Booking, dryRun bool) error
	SendBookingCancellationFunc func(b *booking.Booking, dryRun bool) error
	SendSuggestionsFunc         func(userName string, suggestions []matching.SuggestedMatch, dryRun bool) error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingConfirmationCalls = nil
	m.SendBookingCancellationCalls = nil
	m.SendSuggestionsCalls = nil
}

func (m *Mock) SendBookingConfirmation(b *booking.Booking, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingConfirmationCalls = append(m.SendBookingConfirmationCalls, struct{ Booking *booking.Booking }{b})
	if m.SendBookingConfirmationFunc != nil {
		return m.SendBookingConfirmationFunc(b, dryRun)
	}
	return nil
}

func (m *Mock) SendBookingCancellation(b *booking.Booking, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingCancellationCalls = append(m.SendBookingCancellationCalls, struct{ Booking *booking.Booking }{b})
	if m.SendBookingCancellationFunc != nil {
		return m.SendBookingCancellationFunc(b, dryRun)
	}
	return nil
}

func (m *Mock) SendSuggestions(userName string, suggestions []matching.SuggestedMatch, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSuggestionsCalls = append(m.SendSuggestionsCalls, struct {
		UserName    string
		Suggestions []matching.SuggestedMatch
	}{userName, suggestions})
	if m.SendSuggestionsFunc != nil {
		return m.SendSuggestionsFunc(userName, suggestions, dryRun)
	}
	return nil
}

package notifier

import (
	"github.com/vlkr-dev/courtline/internal/booking"
	"github.com/vlkr-dev/courtline/internal/matching"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For confirmed bookings
	SendBookingConfirmation(b *booking.Booking, dryRun bool) error
	// For cancelled bookings
	SendBookingCancellation(b *booking.Booking, dryRun bool) error
	// For compatibility search results
	SendSuggestions(userName string, suggestions []matching.SuggestedMatch, dryRun bool) error
}

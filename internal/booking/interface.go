package booking

import "context"

// CreationService persists a completed draft as a Booking. A failed create
// leaves nothing behind, so retrying after failure is always safe.
// Failures are reported as *UnavailableError or *ServiceError.
type CreationService interface {
	Create(ctx context.Context, draft Draft, userID string) (*Booking, error)
}

// Store extends CreationService with the read and cancel operations used by
// the API surface.
type Store interface {
	CreationService
	Get(bookingID string) (*Booking, error)
	GetForUser(userID string) ([]Booking, error)
	Cancel(bookingID string) error
}

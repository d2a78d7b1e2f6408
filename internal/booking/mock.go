package booking

import "context"

// MockStore is a mock implementation of the Store interface for testing.
type MockStore struct {
	CreateFunc     func(ctx context.Context, draft Draft, userID string) (*Booking, error)
	GetFunc        func(bookingID string) (*Booking, error)
	GetForUserFunc func(userID string) ([]Booking, error)
	CancelFunc     func(bookingID string) error

	CreateCalls []struct {
		Draft  Draft
		UserID string
	}
	CancelCalls []string
}

// NewMockStore creates a new mock booking store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Create(ctx context.Context, draft Draft, userID string) (*Booking, error) {
	m.CreateCalls = append(m.CreateCalls, struct {
		Draft  Draft
		UserID string
	}{draft, userID})
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, draft, userID)
	}
	return &Booking{
		ID:         "mock-booking",
		ClubID:     draft.Club.ID,
		CourtID:    draft.Court.ID,
		Date:       draft.Date,
		SlotTime:   draft.TimeSlot.Time,
		Duration:   draft.EffectiveDuration(),
		UnitPrice:  draft.TimeSlot.Price,
		TotalPrice: draft.TotalPrice(),
		Status:     StatusConfirmed,
		UserID:     userID,
	}, nil
}

func (m *MockStore) Get(bookingID string) (*Booking, error) {
	if m.GetFunc != nil {
		return m.GetFunc(bookingID)
	}
	return nil, nil
}

func (m *MockStore) GetForUser(userID string) ([]Booking, error) {
	if m.GetForUserFunc != nil {
		return m.GetForUserFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) Cancel(bookingID string) error {
	m.CancelCalls = append(m.CancelCalls, bookingID)
	if m.CancelFunc != nil {
		return m.CancelFunc(bookingID)
	}
	return nil
}

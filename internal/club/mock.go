package club

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetAllFunc               func() ([]Club, error)
	GetByIDFunc              func(clubID string) (*Club, error)
	GetCourtFunc             func(courtID string) (*Court, error)
	UpsertClubFunc           func(c Club) error
	SetCourtAvailabilityFunc func(courtID string, available bool) error

	// Call records
	UpsertClubCalls           []Club
	SetCourtAvailabilityCalls []struct {
		CourtID   string
		Available bool
	}
	ClearCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetAll() ([]Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllFunc != nil {
		return m.GetAllFunc()
	}
	return nil, nil
}

func (m *MockStore) GetByID(clubID string) (*Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) GetCourt(courtID string) (*Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCourtFunc != nil {
		return m.GetCourtFunc(courtID)
	}
	return nil, nil
}

func (m *MockStore) UpsertClub(c Club) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertClubCalls = append(m.UpsertClubCalls, c)
	if m.UpsertClubFunc != nil {
		return m.UpsertClubFunc(c)
	}
	return nil
}

func (m *MockStore) SetCourtAvailability(courtID string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCourtAvailabilityCalls = append(m.SetCourtAvailabilityCalls, struct {
		CourtID   string
		Available bool
	}{courtID, available})
	if m.SetCourtAvailabilityFunc != nil {
		return m.SetCourtAvailabilityFunc(courtID, available)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
}

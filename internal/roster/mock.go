package roster

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetAllFunc        func() ([]Player, error)
	GetFunc           func(playerID string) (*Player, error)
	UpsertPlayerFunc  func(p Player) error
	UpsertPlayersFunc func(players []Player) error
	SetOnlineFunc     func(playerID string, online bool) error
	RecordResultFunc  func(playerID string, won bool) error

	// Call records
	UpsertPlayerCalls  []Player
	UpsertPlayersCalls [][]Player
	SetOnlineCalls     []struct {
		PlayerID string
		Online   bool
	}
	RecordResultCalls []struct {
		PlayerID string
		Won      bool
	}
	ClearCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetAll() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllFunc != nil {
		return m.GetAllFunc()
	}
	return nil, nil
}

func (m *MockStore) Get(playerID string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) UpsertPlayer(p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayerCalls = append(m.UpsertPlayerCalls, p)
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(p)
	}
	return nil
}

func (m *MockStore) UpsertPlayers(players []Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) SetOnline(playerID string, online bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetOnlineCalls = append(m.SetOnlineCalls, struct {
		PlayerID string
		Online   bool
	}{playerID, online})
	if m.SetOnlineFunc != nil {
		return m.SetOnlineFunc(playerID, online)
	}
	return nil
}

func (m *MockStore) RecordResult(playerID string, won bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordResultCalls = append(m.RecordResultCalls, struct {
		PlayerID string
		Won      bool
	}{playerID, won})
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(playerID, won)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
}

package presence

import (
	"context"
	"sort"
	"sync"
)

// MemoryTracker keeps presence in process memory.
type MemoryTracker struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{sessions: map[string]string{}}
}

func (m *MemoryTracker) Connect(_ context.Context, userID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = sessionID
	return nil
}

func (m *MemoryTracker) Disconnect(_ context.Context, userID, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[userID] != sessionID {
		return false, nil
	}
	delete(m.sessions, userID)
	return true, nil
}

func (m *MemoryTracker) Session(_ context.Context, userID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sessionID, ok := m.sessions[userID]
	return sessionID, ok, nil
}

func (m *MemoryTracker) Online(_ context.Context) ([]string, error) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids, nil
}

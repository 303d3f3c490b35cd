package dashboard

import "sync"

// Store keeps each user's current dashboard view in memory. View state is
// UI state: it lives and dies with the process, exactly like the original
// per-tab state it replaces.
type Store struct {
	mu    sync.RWMutex
	views map[string]View
}

func NewStore() *Store {
	return &Store{views: make(map[string]View)}
}

// Get returns the user's current view, or the initial view if none is set.
func (s *Store) Get(userID string) View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.views[userID]; ok {
		return v
	}
	return Initial()
}

func (s *Store) Set(userID string, v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[userID] = v
}

package memory

import (
	"sync"

	"aeroedu-service/internal/domain"
)

// ActivityStore is an append-only in-memory activity feed. Entries are kept in
// append order; listing walks backwards so the feed reads newest-first.
type ActivityStore struct {
	mu      sync.RWMutex
	entries map[string][]domain.ActivityEntry
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{entries: make(map[string][]domain.ActivityEntry)}
}

func (s *ActivityStore) Append(entry domain.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.UserID] = append(s.entries[entry.UserID], entry)
	return nil
}

func (s *ActivityStore) ListForUser(userID string, limit int) ([]domain.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.entries[userID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]domain.ActivityEntry, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

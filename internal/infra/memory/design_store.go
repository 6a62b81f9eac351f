package memory

import (
	"sync"

	"aeroedu-service/internal/domain"
)

// DesignStore keeps immutable rocket design snapshots in memory.
type DesignStore struct {
	mu      sync.RWMutex
	designs map[string]domain.RocketDesign
	order   []string
}

func NewDesignStore() *DesignStore {
	return &DesignStore{designs: make(map[string]domain.RocketDesign)}
}

func (s *DesignStore) Put(design domain.RocketDesign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.designs[design.ID]; !ok {
		s.order = append(s.order, design.ID)
	}
	s.designs[design.ID] = design
	return nil
}

func (s *DesignStore) Get(id string) (domain.RocketDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	design, ok := s.designs[id]
	if !ok {
		return domain.RocketDesign{}, domain.ErrDesignNotFound
	}
	return design, nil
}

func (s *DesignStore) ListForUser(userID string) ([]domain.RocketDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.RocketDesign
	for _, id := range s.order {
		if design := s.designs[id]; design.UserID == userID {
			out = append(out, design)
		}
	}
	return out, nil
}

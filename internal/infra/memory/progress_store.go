package memory

import (
	"fmt"
	"sync"

	"aeroedu-service/internal/domain"
)

// ProgressStore keeps module progress records in memory, keyed per user/module pair.
type ProgressStore struct {
	mu      sync.RWMutex
	records map[string]domain.ModuleProgress
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{records: make(map[string]domain.ModuleProgress)}
}

func (s *ProgressStore) Get(userID string, moduleID int) (domain.ModuleProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[progressKey(userID, moduleID)]
	if !ok {
		return domain.ModuleProgress{}, domain.ErrProgressNotFound
	}
	return cloneProgress(record), nil
}

func (s *ProgressStore) Put(record domain.ModuleProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[progressKey(record.UserID, record.ModuleID)] = cloneProgress(record)
	return nil
}

func (s *ProgressStore) ListForUser(userID string) ([]domain.ModuleProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ModuleProgress
	for _, record := range s.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

func progressKey(userID string, moduleID int) string {
	return fmt.Sprintf("%s:%d", userID, moduleID)
}

func cloneProgress(record domain.ModuleProgress) domain.ModuleProgress {
	answers := make(map[string]int, len(record.QuizAnswers))
	for k, v := range record.QuizAnswers {
		answers[k] = v
	}
	record.QuizAnswers = answers
	if record.CompletedAt != nil {
		completedAt := *record.CompletedAt
		record.CompletedAt = &completedAt
	}
	return record
}

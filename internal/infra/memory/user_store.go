package memory

import (
	"sync"

	"aeroedu-service/internal/domain"
)

// UserStore is an in-memory implementation of app.UserRepository, the
// reference persistence for ledger records.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

func (s *UserStore) Get(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *UserStore) GetByUsername(username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (s *UserStore) Put(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(user)
	return nil
}

// cloneUser copies the badge slice so callers cannot alias stored state.
func cloneUser(user domain.User) domain.User {
	badges := make([]string, len(user.Badges))
	copy(badges, user.Badges)
	user.Badges = badges
	if user.CurrentModule != nil {
		current := *user.CurrentModule
		user.CurrentModule = &current
	}
	return user
}

package memory

import (
	"sync"

	"aeroedu-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository for
// live builder sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.AssemblySession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*app.AssemblySession)}
}

func (s *SessionStore) GetOrCreate(userID string) *app.AssemblySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[userID]; ok {
		return session
	}
	session := app.NewAssemblySession(userID)
	s.sessions[userID] = session
	return session
}

func (s *SessionStore) Get(userID string) (*app.AssemblySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"aeroedu-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Builder sessions stay in a local in-memory map so the placement logic
//     runs in-process.
//   - Redis marks session liveness (and could be extended to share snapshots
//     across instances).
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.AssemblySession
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.AssemblySession),
	}
}

func (s *SessionStore) GetOrCreate(userID string) *app.AssemblySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[userID]; ok {
		// refresh the liveness marker
		_ = s.client.Expire(context.Background(), s.key(userID), s.ttl).Err()
		return session
	}
	session := app.NewAssemblySession(userID)
	s.sessions[userID] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(userID), "1", s.ttl).Err()
	return session
}

func (s *SessionStore) Get(userID string) (*app.AssemblySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

func (s *SessionStore) key(userID string) string {
	return "builder:session:" + userID
}

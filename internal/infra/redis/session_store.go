package redis

import (
	"context"
	"sync"
	"time"

	"fitfinder-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Sessions stay in a local in-process map; the transition machine and
//     score state are cheap and rebuilt wholesale on restart anyway.
//   - Redis marks session liveness so operators can see active playthroughs
//     across instances (and it could be extended to share snapshots).
type SessionStore struct {
	client            *redis.Client
	ttl               time.Duration
	transitionTimeout time.Duration
	mu                sync.RWMutex
	sessions          map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl, transitionTimeout time.Duration) *SessionStore {
	return &SessionStore{
		client:            client,
		ttl:               ttl,
		transitionTimeout: transitionTimeout,
		sessions:          make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(sessionID string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	session := app.NewSessionWithTimeout(sessionID, s.transitionTimeout)
	s.sessions[sessionID] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(sessionID), "1", s.ttl).Err()
	return session
}

func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}

package memory

import (
	"sync"
	"time"

	"fitfinder-quiz-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	transitionTimeout time.Duration
	mu                sync.RWMutex
	sessions          map[string]*app.Session
}

func NewSessionStore(transitionTimeout time.Duration) *SessionStore {
	return &SessionStore{
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
	delete(s.sessions, sessionID)
}

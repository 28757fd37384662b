// pkg/memcache/sessions.go
package memcache

import (
	"log"
	"sync"
	"time"

	"ceyloncircuit/internal/models/session_models"
)

const (
	// SessionTTL is how long an idle conversation survives before the
	// janitor purges it.
	SessionTTL = 24 * time.Hour

	// SweepInterval is how often the janitor runs.
	SweepInterval = time.Hour
)

// SessionStore keys conversation state by session ID. It is deliberately
// an interface so tests use the in-memory map and production could swap in
// a shared cache without the orchestrator noticing.
type SessionStore interface {
	// Create stores state under its session ID and reports whether the
	// ID was free. An existing session is left untouched.
	Create(state *session_models.ConversationState) bool

	Get(sessionID string) (*session_models.ConversationState, bool)
	Update(state *session_models.ConversationState)
	Delete(sessionID string)

	// Sweep removes sessions idle longer than ttl and returns how many
	// were purged.
	Sweep(ttl time.Duration) int
}

type SessionCache struct {
	mu   sync.RWMutex
	data map[string]*session_models.ConversationState
	stop chan struct{}
	once sync.Once
}

func NewSessionCache() *SessionCache {
	return &SessionCache{
		data: make(map[string]*session_models.ConversationState),
		stop: make(chan struct{}),
	}
}

func (s *SessionCache) Create(state *session_models.ConversationState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[state.SessionID]; exists {
		return false
	}
	state.LastUpdated = time.Now()
	s.data[state.SessionID] = state
	return true
}

func (s *SessionCache) Get(sessionID string) (*session_models.ConversationState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[sessionID]
	return state, ok
}

func (s *SessionCache) Update(state *session_models.ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.LastUpdated = time.Now()
	s.data[state.SessionID] = state
}

func (s *SessionCache) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, sessionID)
}

func (s *SessionCache) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	purged := 0
	for id, state := range s.data {
		if state.LastUpdated.Before(cutoff) {
			delete(s.data, id)
			purged++
		}
	}
	return purged
}

// StartJanitor runs the expiry sweep on a fixed interval until StopJanitor
// is called. Deleting a session mid-conversation is acceptable lossy
// behavior; the traveler simply starts over.
func (s *SessionCache) StartJanitor(interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if purged := s.Sweep(ttl); purged > 0 {
					log.Printf("Session sweep purged %d expired sessions", purged)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *SessionCache) StopJanitor() {
	s.once.Do(func() { close(s.stop) })
}

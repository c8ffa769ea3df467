package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/skyrouteai/skyroute/internal/router"
)

// session is one conversation: a router with its own memory plus a lock
// that serializes turns, since a conversation is strictly sequential.
type session struct {
	id     string
	router *router.Router
	mu     sync.Mutex

	// lastUsed holds unix nanoseconds, stored atomically so the idle
	// sweep never waits on an in-flight turn.
	lastUsed atomic.Int64
}

func (s *session) touch() {
	s.lastUsed.Store(time.Now().UnixNano())
}

func (s *session) lastUsedAt() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// ask routes one utterance, holding the session lock for the full turn.
func (s *session) ask(ctx context.Context, utterance string) *router.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.router.Handle(ctx, utterance)
}

// sessionManager tracks live sessions by ID.
type sessionManager struct {
	mu        sync.Mutex
	sessions  map[string]*session
	newRouter func() *router.Router
}

func newSessionManager(newRouter func() *router.Router) *sessionManager {
	return &sessionManager{
		sessions:  make(map[string]*session),
		newRouter: newRouter,
	}
}

func (m *sessionManager) create() *session {
	s := &session{
		id:     uuid.NewString(),
		router: m.newRouter(),
	}
	s.touch()
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

func (m *sessionManager) get(id string) (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *sessionManager) remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// sweep drops sessions idle for longer than maxIdle and returns how many
// were removed. WebSocket conversations have no explicit delete, so the
// sweep is the only way they ever leave the map.
func (m *sessionManager) sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.lastUsedAt().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

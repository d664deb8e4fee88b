package mcp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/hollis/fabula/engine"
	"github.com/hollis/fabula/types"
)

// SessionManager owns one engine per active session. Engines are not safe
// for concurrent use, so all access goes through With, which serializes
// calls under the manager lock. Idle sessions are evicted lazily on the
// next access after their TTL expires.
type SessionManager struct {
	def *types.GameDefinition
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*session

	// now is replaceable for tests.
	now func() time.Time
}

type session struct {
	engine     *engine.Engine
	lastAccess time.Time
}

// NewSessionManager creates a manager for the given definition. The
// definition is validated once here rather than per session.
func NewSessionManager(def *types.GameDefinition, ttl time.Duration) (*SessionManager, error) {
	if _, err := engine.New(def, engine.Options{}); err != nil {
		return nil, err
	}
	return &SessionManager{
		def:      def,
		ttl:      ttl,
		sessions: make(map[string]*session),
		now:      time.Now,
	}, nil
}

// With runs fn against the session's engine and returns the session id the
// client should pass back. An unknown or empty id gets a fresh session;
// expired sessions are treated as unknown, so a stale id silently starts
// over rather than erroring.
func (m *SessionManager) With(sessionID string, fn func(*engine.Engine) string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictExpired()

	if sessionID != "" {
		if s, ok := m.sessions[sessionID]; ok {
			s.lastAccess = m.now()
			return sessionID, fn(s.engine), nil
		}
	}

	eng, err := engine.New(m.def, engine.Options{SkipValidation: true})
	if err != nil {
		return "", "", err
	}
	if sessionID == "" {
		sessionID = newSessionID()
	}
	m.sessions[sessionID] = &session{engine: eng, lastAccess: m.now()}
	return sessionID, fn(eng), nil
}

// Count reports the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictExpired()
	return len(m.sessions)
}

func (m *SessionManager) evictExpired() {
	now := m.now()
	for id, s := range m.sessions {
		if now.Sub(s.lastAccess) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

func newSessionID() string {
	var b [8]byte
	rand.Read(b[:])
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(b[:]))
}

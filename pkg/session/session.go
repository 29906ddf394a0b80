// Package session holds per-client build state for the HTTP API.
//
// A [Session] owns a single slot with the most recently built road graph.
// A successful build replaces the slot wholesale; a failed build leaves it
// untouched. Exports read from the slot, so "export" always means "export
// the last graph this session built".
//
// Sessions live in a [Store]. [MemoryStore] is the only backend: graphs are
// never written to disk or shared between processes.
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess := session.New(session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	svc := session.NewService(fetcher, logger)
//	resp := svc.Build(ctx, sess, map[string]any{
//	    "north": 52.52, "south": 52.50, "east": 13.41, "west": 13.39,
//	})
//	if !resp.Success {
//	    // resp.Code, resp.Message
//	}
//	out := svc.Export(sess, "graphml")
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/roadgraph/pkg/graph"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// Session is one client's build state.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	mu    sync.RWMutex
	graph *graph.Graph
}

// New creates a session with a random id that expires after ttl.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Now().After(s.ExpiresAt)
}

// Touch pushes the expiry ttl into the future.
func (s *Session) Touch(ttl time.Duration) {
	s.mu.Lock()
	s.ExpiresAt = time.Now().Add(ttl)
	s.mu.Unlock()
}

// Graph returns the most recently built graph, or nil before the first
// successful build.
func (s *Session) Graph() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// SetGraph replaces the stored graph.
func (s *Session) SetGraph(g *graph.Graph) {
	s.mu.Lock()
	s.graph = g
	s.mu.Unlock()
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// MemoryStore keeps sessions in a map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if sess.IsExpired() {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return nil, nil
	}
	return sess, nil
}

func (m *MemoryStore) Set(_ context.Context, sess *Session) error {
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Cleanup(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		if sess.IsExpired() {
			delete(m.sessions, id)
		}
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ Store = (*MemoryStore)(nil)

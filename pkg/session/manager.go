package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/internal/logging"
	"github.com/aretw0/aiforms/pkg/domain"
)

// DefaultCapacity bounds the number of live sessions when WithCapacity is not given.
const DefaultCapacity = 1024

// ErrSessionNotFound is returned for unknown or evicted session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Session is one live conversation.
type Session struct {
	ID        string
	Form      string
	CreatedAt time.Time
	UpdatedAt time.Time
	// Last is the most recent envelope. Read it only inside WithLock.
	Last *domain.Envelope

	conv *aiforms.Form[map[string]any]
}

// Conversation returns the form driven by this session.
// Use it only inside WithLock.
func (s *Session) Conversation() *aiforms.Form[map[string]any] {
	return s.conv
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	sessions *lru.Cache[string, *Session]

	mu    sync.Mutex            // guards locks
	locks map[string]*lockEntry // active locks

	capacity int
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithCapacity bounds the number of live sessions. The least recently used
// session is dropped when a new one would exceed it.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		m.capacity = n
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates an empty session manager.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		locks:    make(map[string]*lockEntry),
		capacity: DefaultCapacity,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	cache, err := lru.NewWithEvict(m.capacity, func(id string, s *Session) {
		m.logger.Info("session dropped", "session_id", id, "form", s.Form)
	})
	if err != nil {
		return nil, err
	}
	m.sessions = cache
	return m, nil
}

// Create registers conv under a new session ID.
func (m *Manager) Create(formName string, conv *aiforms.Form[map[string]any]) *Session {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Form:      formName,
		CreatedAt: now,
		UpdatedAt: now,
		conv:      conv,
	}
	m.sessions.Add(s.ID, s)
	m.logger.Debug("session created", "session_id", s.ID, "form", formName)
	return s
}

// Get returns the session without locking it.
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes the session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(context.Context, *Session) error {
		m.sessions.Remove(id)
		return nil
	})
}

// List returns the live session IDs, oldest first.
func (m *Manager) List() []string {
	return m.sessions.Keys()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock runs fn with exclusive access to the session.
// It returns ErrSessionNotFound when the session does not exist (anymore).
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context, *Session) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	s, ok := m.sessions.Get(id)
	if !ok {
		return ErrSessionNotFound
	}

	err := fn(ctx, s)
	s.UpdatedAt = m.now()
	return err
}

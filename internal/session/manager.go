package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Purger is implemented by stores that can sweep expired sessions.
type Purger interface {
	PurgeExpired(ctx context.Context) ([]string, error)
}

// Manager owns the session lifecycle on top of a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	onDestroy []func(id string)
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// OnDestroy registers fn to run whenever a session ends, whether by
// logout, expiry or purge.
func (m *Manager) OnDestroy(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDestroy = append(m.onDestroy, fn)
}

func (m *Manager) destroyed(id string) {
	m.mu.Lock()
	hooks := append([]func(string){}, m.onDestroy...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
}

// Create starts a session for s, assigning its id and lifetime.
func (m *Manager) Create(ctx context.Context, s Session) (Session, error) {
	now := m.now()
	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.ttl)
	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, err
	}
	logrus.WithFields(logrus.Fields{
		"session_id": s.ID,
		"admin_id":   s.AdminID,
	}).Info("Admin session created")
	return s, nil
}

// Get loads a live session. Expired sessions are destroyed and reported as
// ErrNotFound.
func (m *Manager) Get(ctx context.Context, id string) (Session, error) {
	s, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	if s.Expired(m.now()) {
		if err := m.Destroy(ctx, id); err != nil {
			logrus.WithError(err).WithField("session_id", id).Warn("Failed to destroy expired session")
		}
		return Session{}, ErrNotFound
	}
	return s, nil
}

// Update saves changed profile fields. The id and lifetime are kept.
func (m *Manager) Update(ctx context.Context, s Session) error {
	current, err := m.Get(ctx, s.ID)
	if err != nil {
		return err
	}
	s.CreatedAt = current.CreatedAt
	s.ExpiresAt = current.ExpiresAt
	s.Token = current.Token
	return m.store.Save(ctx, s)
}

func (m *Manager) Destroy(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.destroyed(id)
	logrus.WithField("session_id", id).Info("Admin session destroyed")
	return nil
}

// Purge sweeps expired sessions when the store supports it.
func (m *Manager) Purge(ctx context.Context) (int, error) {
	p, ok := m.store.(Purger)
	if !ok {
		return 0, nil
	}
	ids, err := p.PurgeExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge: %w", err)
	}
	for _, id := range ids {
		m.destroyed(id)
	}
	return len(ids), nil
}

package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns session lifecycle: id generation, load/save, and the
// per-session single-writer guarantee. Every mutation goes through Update,
// which holds the session's mutex for the whole read-modify-write, so two
// concurrent requests for the same session cannot interleave cart mutations.
type Manager struct {
	store      Store
	ttl        time.Duration
	cookieName string
	secure     bool

	locks sync.Map // sid -> *sync.Mutex
}

// NewManager creates a session manager over a store.
func NewManager(store Store, cookieName string, ttl time.Duration, secure bool) *Manager {
	if cookieName == "" {
		cookieName = "ministore_session"
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Manager{
		store:      store,
		ttl:        ttl,
		cookieName: cookieName,
		secure:     secure,
	}
}

// CookieName returns the session cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Secure reports whether the session cookie requires HTTPS.
func (m *Manager) Secure() bool {
	return m.secure
}

// NewID generates a fresh session id.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

func (m *Manager) sessionLock(sid string) *sync.Mutex {
	lock, _ := m.locks.LoadOrStore(sid, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Update runs fn on the session data under the session's mutex, with
// load-at-entry and save-at-exit. A missing session starts empty. When fn
// returns an error the save is skipped, so an error response always implies
// no state change.
func (m *Manager) Update(ctx context.Context, sid string, fn func(*Data) error) error {
	lock := m.sessionLock(sid)
	lock.Lock()
	defer lock.Unlock()

	data, found, err := m.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	if !found {
		data = &Data{CreatedAt: time.Now()}
	}
	if err := fn(data); err != nil {
		return err
	}
	return m.store.Set(ctx, sid, data)
}

// View runs fn on a read-only copy of the session data. A missing session
// reads as empty.
func (m *Manager) View(ctx context.Context, sid string, fn func(*Data)) error {
	data, found, err := m.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	if !found {
		data = &Data{}
	}
	fn(data)
	return nil
}

// Flash stores a one-shot message on the session.
func (m *Manager) Flash(ctx context.Context, sid, message string) error {
	return m.Update(ctx, sid, func(d *Data) error {
		d.Flash = message
		return nil
	})
}

// TakeFlash consumes the session's flash message, clearing the slot.
func (m *Manager) TakeFlash(ctx context.Context, sid string) (string, error) {
	var message string
	err := m.Update(ctx, sid, func(d *Data) error {
		message = d.TakeFlash()
		return nil
	})
	return message, err
}

// Destroy removes the session entirely.
func (m *Manager) Destroy(ctx context.Context, sid string) error {
	lock := m.sessionLock(sid)
	lock.Lock()
	defer lock.Unlock()
	defer m.locks.Delete(sid)
	return m.store.Delete(ctx, sid)
}

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ministore-next/internal/cache"
	"github.com/ministore-next/internal/models"
)

// Data is everything a session carries: the owning user (0 for guests), the
// cart, and a single-slot flash message consumed by the next page render.
type Data struct {
	UserID    uint        `json:"user_id"`
	UserName  string      `json:"user_name"`
	Cart      models.Cart `json:"cart"`
	Flash     string      `json:"flash"`
	CreatedAt time.Time   `json:"created_at"`
}

// LoggedIn reports whether the session belongs to an authenticated shopper.
func (d *Data) LoggedIn() bool {
	return d.UserID != 0
}

// TakeFlash returns the flash message and clears the slot, so the message
// shows on exactly one render.
func (d *Data) TakeFlash() string {
	message := d.Flash
	d.Flash = ""
	return message
}

// Store persists session data by session id.
type Store interface {
	Get(ctx context.Context, sid string) (*Data, bool, error)
	Set(ctx context.Context, sid string, data *Data) error
	Delete(ctx context.Context, sid string) error
}

// MemoryStore is the in-process store used when Redis is disabled and in
// tests. Entries expire lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// NewMemoryStore creates an in-process store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns a copy of the stored session data.
func (s *MemoryStore) Get(ctx context.Context, sid string) (*Data, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sid)
		s.mu.Unlock()
		return nil, false, nil
	}
	data := entry.data
	data.Cart.Items = append([]models.LineItem(nil), entry.data.Cart.Items...)
	return &data, true, nil
}

// Set stores session data, refreshing the TTL.
func (s *MemoryStore) Set(ctx context.Context, sid string, data *Data) error {
	copied := *data
	copied.Cart.Items = append([]models.LineItem(nil), data.Cart.Items...)
	s.mu.Lock()
	s.entries[sid] = memoryEntry{data: copied, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, sid string) error {
	s.mu.Lock()
	delete(s.entries, sid)
	s.mu.Unlock()
	return nil
}

// RedisStore persists sessions through the shared Redis client, surviving
// process restarts. Keys are namespaced under the configured prefix.
type RedisStore struct {
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &RedisStore{ttl: ttl}
}

func redisKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

// Get loads session data from Redis.
func (s *RedisStore) Get(ctx context.Context, sid string) (*Data, bool, error) {
	var data Data
	found, err := cache.GetJSON(ctx, redisKey(sid), &data)
	if err != nil || !found {
		return nil, false, err
	}
	return &data, true, nil
}

// Set stores session data in Redis, refreshing the TTL.
func (s *RedisStore) Set(ctx context.Context, sid string, data *Data) error {
	return cache.SetJSON(ctx, redisKey(sid), data, s.ttl)
}

// Delete removes a session from Redis.
func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return cache.Del(ctx, redisKey(sid))
}

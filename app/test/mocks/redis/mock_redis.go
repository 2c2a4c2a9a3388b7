package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	goRedis "github.com/redis/go-redis/v9"
)

type entry struct {
	value []byte
	expAt *time.Time
}

// InMemoryRedis is a map backed Redis for tests that only need key/value
// semantics. GetUniversalClient returns nil, so it cannot back queues or limiters.
type InMemoryRedis struct {
	mu    sync.Mutex
	store map[string]entry
	now   func() time.Time
}

func NewInMemoryRedis() *InMemoryRedis {
	return &InMemoryRedis{store: make(map[string]entry), now: time.Now}
}

func (m *InMemoryRedis) GetUniversalClient() goRedis.UniversalClient { return nil }

func (m *InMemoryRedis) Reset(ctx context.Context) error {
	m.mu.Lock()
	m.store = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

func (m *InMemoryRedis) Close() error { return nil }

// Keys returns the live keys, for assertions.
func (m *InMemoryRedis) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.store))
	for k, e := range m.store {
		if !m.expired(e) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (m *InMemoryRedis) SetPrimitive(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Set(ctx, key, value, ttl)
}

func (m *InMemoryRedis) GetPrimitive(ctx context.Context, key string, outPtr any) error {
	return m.Get(ctx, key, outPtr)
}

func (m *InMemoryRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = entry{value: b, expAt: m.expiry(ttl)}
	return nil
}

func (m *InMemoryRedis) Get(ctx context.Context, key string, outPtr any) error {
	m.mu.Lock()
	e, ok := m.lookup(key)
	m.mu.Unlock()
	if !ok {
		return goRedis.Nil
	}
	return json.Unmarshal(e.value, outPtr)
}

func (m *InMemoryRedis) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.store, key)
	m.mu.Unlock()
	return nil
}

func (m *InMemoryRedis) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.lookup(key)
	return ok, nil
}

func (m *InMemoryRedis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.lookup(key); ok {
		e.expAt = m.expiry(ttl)
		m.store[key] = e
	}
	return nil
}

func (m *InMemoryRedis) Increment(ctx context.Context, key string, val int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var cur int64
	if e, ok := m.lookup(key); ok {
		parsed, err := strconv.ParseInt(string(e.value), 10, 64)
		if err != nil {
			return 0, err
		}
		cur = parsed
	}
	cur += val
	m.store[key] = entry{value: []byte(strconv.FormatInt(cur, 10))}
	return cur, nil
}

func (m *InMemoryRedis) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lookup(lockKey); ok {
		return false, nil
	}
	m.store[lockKey] = entry{value: []byte("true"), expAt: m.expiry(ttl)}
	return true, nil
}

func (m *InMemoryRedis) ReleaseLock(ctx context.Context, lockKey string) error {
	return m.Delete(ctx, lockKey)
}

func (m *InMemoryRedis) lookup(key string) (entry, bool) {
	e, ok := m.store[key]
	if !ok {
		return entry{}, false
	}
	if m.expired(e) {
		delete(m.store, key)
		return entry{}, false
	}
	return e, true
}

func (m *InMemoryRedis) expired(e entry) bool {
	return e.expAt != nil && m.now().After(*e.expAt)
}

func (m *InMemoryRedis) expiry(ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	t := m.now().Add(ttl)
	return &t
}

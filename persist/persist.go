// Package persist stores post-mutation state snapshots under named slots.
// The stores themselves stay free of storage concerns: they expose snapshot
// hooks, and subscribers here write the snapshots out.
package persist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("slot not found")

// Slot name layout. Cart and session snapshots live under distinct named
// slots keyed by user; order snapshots are transient handoffs keyed by order.
const (
	cartSlotPrefix    = "cart-storage:"
	sessionSlotPrefix = "auth-storage:"
	orderSlotPrefix   = "orderData:"
)

func CartSlot(userID string) string    { return cartSlotPrefix + userID }
func SessionSlot(userID string) string { return sessionSlotPrefix + userID }
func OrderSlot(orderID string) string  { return orderSlotPrefix + orderID }

// Slots is the minimal named-slot store the subscribers need.
type Slots interface {
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns ErrNotFound when the slot has never been written or has
	// expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
}

// RedisSlots backs Slots with a Redis connection.
type RedisSlots struct {
	c *redis.Client
}

func NewRedisSlots(c *redis.Client) *RedisSlots {
	return &RedisSlots{c: c}
}

func (s *RedisSlots) Set(ctx context.Context, key string, value []byte) error {
	return s.c.Set(ctx, key, value, 0).Err()
}

func (s *RedisSlots) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.c.Set(ctx, key, value, ttl).Err()
}

func (s *RedisSlots) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	return val, err
}

func (s *RedisSlots) Del(ctx context.Context, key string) error {
	return s.c.Del(ctx, key).Err()
}

// MemorySlots is an in-process Slots used by tests and by the demo when no
// Redis server is configured. TTLs are tracked with absolute deadlines.
type MemorySlots struct {
	mu       sync.RWMutex
	data     map[string][]byte
	deadline map[string]time.Time
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{
		data:     make(map[string][]byte),
		deadline: make(map[string]time.Time),
	}
}

func (s *MemorySlots) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	delete(s.deadline, key)
	return nil
}

func (s *MemorySlots) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	s.deadline[key] = time.Now().Add(ttl)
	return nil
}

func (s *MemorySlots) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	if dl, has := s.deadline[key]; has && time.Now().After(dl) {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *MemorySlots) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	delete(s.deadline, key)
	return nil
}

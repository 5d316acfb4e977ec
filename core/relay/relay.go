// Package relay holds one externally supplied token so that another client
// can pick it up later.
package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"MusicHub/core/apperror"

	"github.com/go-redis/redis/v8"
)

const (
	MsgTokenMissing  = "Token is missing!"
	MsgNoTokenStored = "No token stored!"

	// RedisKey is where RedisStore keeps the token.
	RedisKey = "relay:token"
)

// ErrEmpty is returned by a Store that has never been written.
var ErrEmpty = errors.New("relay: no token stored")

// Store is a single-slot token holder. Set overwrites; last writer wins.
type Store interface {
	Set(ctx context.Context, token string) error
	Get(ctx context.Context) (string, error)
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	m.token, m.set = token, true
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return "", ErrEmpty
	}
	return m.token, nil
}

// RedisStore keeps the token under RedisKey.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Set(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, RedisKey, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to store relay token: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, RedisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrEmpty
		}
		return "", fmt.Errorf("failed to read relay token: %w", err)
	}
	return val, nil
}

// Service validates relay requests against a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Store overwrites the held token.
func (s *Service) Store(ctx context.Context, token string) error {
	if token == "" {
		return apperror.Validation(MsgTokenMissing)
	}
	if err := s.store.Set(ctx, token); err != nil {
		return apperror.Wrap(err, "failed to store token")
	}
	return nil
}

// Fetch returns the held token.
func (s *Service) Fetch(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			return "", apperror.NotFound(MsgNoTokenStored)
		}
		return "", apperror.Wrap(err, "failed to fetch token")
	}
	return token, nil
}

// Package redisstore persists session ids in Redis, for hosts that run the
// client core server-side and keep per-user conversations across instances.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store implements the sessions.Store contract on a Redis client. Keys are
// namespaced so several deployments can share an instance.
type Store struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
}

type Option func(*Store)

// WithNamespace overrides the key prefix, default "auphere:sessions".
func WithNamespace(namespace string) Option {
	return func(s *Store) {
		s.namespace = namespace
	}
}

// WithTTL expires entries; zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client:    client,
		namespace: "auphere:sessions",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.namespaced(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading session from redis: %w", err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.namespaced(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("error writing session to redis: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.namespaced(key)).Err(); err != nil {
		return fmt.Errorf("error deleting session from redis: %w", err)
	}
	return nil
}

func (s *Store) namespaced(key string) string {
	return s.namespace + ":" + key
}

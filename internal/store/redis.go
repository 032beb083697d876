package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sentinel errors surfaced by the store.
var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// Store is the Redis-backed document store. Articles, categories and
// users are persisted as JSON documents; secondary indexes live in
// sorted sets and sets. URL uniqueness for articles is enforced with
// SETNX, which doubles as the dedup guard between racing fetchers.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection.
func New(redisURL, prefix string) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{rdb: client, prefix: prefix}, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) key(parts ...string) string {
	k := s.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

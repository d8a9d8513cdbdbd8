package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound signals a missing or expired session token.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "staff_session"

// SessionStore associates opaque session tokens with staff ids.
type SessionStore interface {
	Create(ctx context.Context, staffID string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore builds a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttlMinutes int) SessionStore {
	if ttlMinutes <= 0 {
		ttlMinutes = 720
	}
	return &redisSessionStore{
		client: client,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

func (s *redisSessionStore) Create(ctx context.Context, staffID string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, staffID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (string, error) {
	staffID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return staffID, nil
}

func (s *redisSessionStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

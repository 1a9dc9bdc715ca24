package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/constants"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// Store persists sessions by ID.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore builds the store selected in the session settings.
func NewStore(ctx context.Context, cfg *config.SessionSettings) (Store, error) {
	switch cfg.Store {
	case "", constants.SessionStoreMemory:
		return NewMemoryStore(time.Minute), nil
	case constants.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisStore(client, constants.RedisSessionPrefix), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

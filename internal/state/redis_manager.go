package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

// RedisManager caches sessions in Redis so multiple processes share the
// same view of authentication state.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password:     "", // no password
		DB:           0,  // default DB
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{
		client: client,
	}, nil
}

func sessionKey(email string) string {
	return fmt.Sprintf("session:%s", email)
}

// SetSession stores the session with a TTL matching its expiry.
func (m *RedisManager) SetSession(email string, session Session) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}

	ttl := defaultSessionTTL
	if !session.ExpiresAt.IsZero() {
		if remaining := time.Until(session.ExpiresAt); remaining > 0 {
			ttl = remaining
		}
	}

	ctx := context.Background()
	m.client.Set(ctx, sessionKey(email), data, ttl)
}

// GetSession returns the cached session for an account
func (m *RedisManager) GetSession(email string) (Session, bool) {
	ctx := context.Background()
	result := m.client.Get(ctx, sessionKey(email))
	if result.Err() != nil {
		return Session{}, false // absent or unreachable, caller falls back
	}

	var session Session
	if err := json.Unmarshal([]byte(result.Val()), &session); err != nil {
		return Session{}, false
	}
	if session.Expired() {
		m.ClearSession(email)
		return Session{}, false
	}
	return session, true
}

// ClearSession removes the cached session for an account
func (m *RedisManager) ClearSession(email string) {
	ctx := context.Background()
	m.client.Del(ctx, sessionKey(email))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}

// Package session is a Redis-backed conversation session store. Bot
// front-ends keep per-conversation state here (pending habit, awaited reply)
// instead of process-global maps, so sessions survive restarts and are shared
// across replicas.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL expires abandoned conversations
const DefaultTTL = 30 * time.Minute

// Store keeps one Redis hash per (owner, conversation)
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store. A non-positive ttl falls back to DefaultTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

func sessionKey(ownerID uuid.UUID, conversationID string) string {
	return fmt.Sprintf("session:%s:%s", ownerID, conversationID)
}

// Get returns the session fields, or nil when no session exists
func (s *Store) Get(ctx context.Context, ownerID uuid.UUID, conversationID string) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(ownerID, conversationID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

// Put replaces the session fields and resets the TTL
func (s *Store) Put(ctx context.Context, ownerID uuid.UUID, conversationID string, fields map[string]string) error {
	if conversationID == "" {
		return fmt.Errorf("conversation id is required")
	}
	if len(fields) == 0 {
		return s.Clear(ctx, ownerID, conversationID)
	}

	key := sessionKey(ownerID, conversationID)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// SetField updates one field and resets the TTL
func (s *Store) SetField(ctx context.Context, ownerID uuid.UUID, conversationID, field, value string) error {
	key := sessionKey(ownerID, conversationID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, field, value)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update session field: %w", err)
	}
	return nil
}

// Touch extends the TTL of an existing session without changing it
func (s *Store) Touch(ctx context.Context, ownerID uuid.UUID, conversationID string) error {
	if err := s.client.Expire(ctx, sessionKey(ownerID, conversationID), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// Clear removes the session. Clearing an absent session is not an error.
func (s *Store) Clear(ctx context.Context, ownerID uuid.UUID, conversationID string) error {
	if err := s.client.Del(ctx, sessionKey(ownerID, conversationID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/delishapp/delish-backend/pkg/logger"
	"github.com/delishapp/delish-backend/pkg/util"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore persists sessions in Redis. Key TTL does the eviction, so a
// token that outlives its TTL simply stops resolving.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *RedisStore) Create(ctx context.Context, userID uint) (*Session, error) {
	token, err := util.GenerateSecureToken(TokenBytes)
	if err != nil {
		return nil, err
	}

	sess := Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}

	if err := s.client.Set(ctx, sessionKey(token), payload, s.ttl).Err(); err != nil {
		logger.Error("Failed to store session in Redis", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	logger.Debug("Session created", map[string]interface{}{
		"user_id":    userID,
		"expires_at": sess.ExpiresAt,
	})
	return &sess, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		logger.Error("Failed to read session from Redis", err, nil)
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		logger.Error("Failed to delete session from Redis", err, nil)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/sherpa-concierge-poc/server/internal/core/error"
	"github.com/sherpa-concierge-poc/server/internal/dialog/model"
	logx "github.com/sherpa-concierge-poc/server/pkg/logger"
)

// RedisSessionRepository stores each session as one JSON document with a
// sliding TTL.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

// Get loads the session for a user. A missing key yields the canonical
// initial session, so a first message implicitly creates the conversation.
func (r *RedisSessionRepository) Get(ctx context.Context, userID string) (model.Session, error) {
	key := r.sessionKey(userID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return model.NewSession(userID), nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session from redis")
		return model.Session{}, errx.WrapRedis(err)
	}

	var s model.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to unmarshal session")
		return model.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	if s.UserID == "" {
		s.UserID = userID
	}
	return s, nil
}

// Put stores the session and refreshes the TTL.
func (r *RedisSessionRepository) Put(ctx context.Context, userID string, s model.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to marshal session")
		return fmt.Errorf("marshal session: %w", err)
	}
	key := r.sessionKey(userID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store session in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// Delete removes the session.
func (r *RedisSessionRepository) Delete(ctx context.Context, userID string) error {
	key := r.sessionKey(userID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionStore = (*RedisSessionRepository)(nil)

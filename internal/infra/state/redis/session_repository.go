package redisstate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

const (
	fieldUserID    = "user_id"
	fieldRole      = "role"
	fieldCreatedAt = "created_at"
)

// RedisSessionRepository 是 SessionRepository 接口的 Redis 实现。
// 每个会话是一个 Hash，另有一个按用户索引的 Set 用于批量吊销。
type RedisSessionRepository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSessionRepository 创建 RedisSessionRepository 实例
func NewRedisSessionRepository(client *redis.Client, keyPrefix string) *RedisSessionRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisSessionRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "jb:"
	}
	return &RedisSessionRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// --- Key Generation Helpers ---
func (r *RedisSessionRepository) sessionKey(id string) string {
	return fmt.Sprintf("%ssession:%s", r.keyPrefix, id)
}

func (r *RedisSessionRepository) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%suser:%d:sessions", r.keyPrefix, userID)
}

// Create 保存会话并设置 TTL，同时登记到用户的会话集合
func (r *RedisSessionRepository) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	key := r.sessionKey(session.ID)
	userKey := r.userSessionsKey(session.UserID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldUserID, session.UserID,
			fieldRole, string(session.Role),
			fieldCreatedAt, session.CreatedAt.UTC().Unix(),
		)
		pipe.Expire(ctx, key, ttl)
		pipe.SAdd(ctx, userKey, session.ID)
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: failed to create session for user %d: %w", session.UserID, err)
	}
	return nil
}

// Get 读取会话
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	key := r.sessionKey(id)
	values, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis: failed to get session from %s: %w", key, err)
	}
	if len(values) == 0 {
		return nil, repository.ErrSessionNotFound
	}

	userID, err := strconv.ParseUint(values[fieldUserID], 10, 64)
	if err != nil || userID == 0 {
		logrus.WithField("key", key).Warn("Session hash has invalid user_id, treating as missing")
		return nil, repository.ErrSessionNotFound
	}
	session := &domain.Session{
		ID:     id,
		UserID: uint(userID),
		Role:   domain.Role(values[fieldRole]),
	}
	if ts, err := strconv.ParseInt(values[fieldCreatedAt], 10, 64); err == nil {
		session.CreatedAt = time.Unix(ts, 0).UTC()
	}
	return session, nil
}

// Delete 删除单个会话
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	key := r.sessionKey(id)
	userID, err := r.client.HGet(ctx, key, fieldUserID).Uint64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis: failed to read session %s: %w", key, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if userID != 0 {
			pipe.SRem(ctx, r.userSessionsKey(uint(userID)), id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: failed to delete session %s: %w", key, err)
	}
	return nil
}

// DeleteByUser 吊销某用户的全部会话
func (r *RedisSessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	userKey := r.userSessionsKey(userID)
	ids, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis: failed to list sessions of user %d: %w", userID, err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, r.sessionKey(id))
	}
	keys = append(keys, userKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete sessions of user %d: %w", userID, err)
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "sessions": len(ids)}).Debug("Revoked user sessions")
	return nil
}

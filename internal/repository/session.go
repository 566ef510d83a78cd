package repository

import (
	"context"
	"time"

	"job-board/internal/domain"
)

// SessionRepository 定义了会话状态的存储，通常由 Redis 实现。
// 会话只保存用户 ID 和缓存的角色，过期由存储自身负责。
type SessionRepository interface {
	// Create 保存会话并设置过期时间
	Create(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Get 读取会话，不存在或已过期时返回 ErrSessionNotFound。
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete 删除单个会话 (登出)
	Delete(ctx context.Context, id string) error

	// DeleteByUser 删除某用户的全部会话 (用户被删除时调用)
	DeleteByUser(ctx context.Context, userID uint) error
}

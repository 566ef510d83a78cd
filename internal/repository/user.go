package repository

import (
	"context"

	"job-board/internal/domain"
)

// UserFilter 用户列表的过滤条件
type UserFilter struct {
	Role   domain.Role // 为空表示不过滤
	Search Search
}

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByID 根据用户 ID 查找用户，不存在时返回 ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername 根据用户名查找用户，不存在时返回 ErrUserNotFound。
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByEmail 根据邮箱查找用户，不存在时返回 ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create 插入新用户，违反唯一约束时返回 ErrDuplicateEntry。
	Create(ctx context.Context, user *domain.User) error

	// UpdateProfile 更新资料字段 (full_name/email/phone/company_name)，角色与用户名不会被写入。
	UpdateProfile(ctx context.Context, user *domain.User) error

	// Delete 删除用户并级联删除其申请、其职位以及这些职位下的申请。
	Delete(ctx context.Context, id uint) error

	// List 分页查询，按创建时间倒序，同时返回总数。
	List(ctx context.Context, filter UserFilter, page PageRequest) ([]domain.User, int64, error)

	// All 返回全部用户，按创建时间倒序。
	All(ctx context.Context) ([]domain.User, error)

	// Count 统计满足条件的用户数
	Count(ctx context.Context, filter UserFilter) (int64, error)
}

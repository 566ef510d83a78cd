package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// GormUserRepository 是 UserRepository 接口的 GORM 实现
type GormUserRepository struct {
	db *gorm.DB // 依赖 GORM DB 连接
}

// NewGormUserRepository 创建 GormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// FindByID 实现根据用户 ID 查找用户
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by id %d: %w", id, err)
	}
	return &user, nil
}

// FindByUsername 实现根据用户名查找用户
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by username '%s': %w", username, err)
	}
	return &user, nil
}

// FindByEmail 实现根据邮箱查找用户
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by email '%s': %w", email, err)
	}
	return &user, nil
}

// Create 插入新用户
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create user (username: %s): %w", user.Username, err)
	}
	return nil
}

// UpdateProfile 只写入资料字段。用 map 更新，nil 指针会被写成 NULL。
func (r *GormUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"full_name":    user.FullName,
		"email":        user.Email,
		"phone":        user.Phone,
		"company_name": user.CompanyName,
	})
	if err := result.Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: update user profile (id: %d): %w", user.ID, err)
	}
	return confirmAffected(result, r.db.WithContext(ctx), &domain.User{}, user.ID, repository.ErrUserNotFound)
}

// Delete 在一个事务中按 Applications → Jobs → User 的顺序级联删除
func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jobIDs []uint
		if err := tx.Model(&domain.Job{}).Where("employer_id = ?", id).Pluck("id", &jobIDs).Error; err != nil {
			return fmt.Errorf("gorm: list jobs of user %d: %w", id, err)
		}

		if err := tx.Where("applicant_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
			return fmt.Errorf("gorm: delete applications of user %d: %w", id, err)
		}
		if len(jobIDs) > 0 {
			if err := tx.Where("job_id IN ?", jobIDs).Delete(&domain.Application{}).Error; err != nil {
				return fmt.Errorf("gorm: delete applications for jobs of user %d: %w", id, err)
			}
			if err := tx.Where("id IN ?", jobIDs).Delete(&domain.Job{}).Error; err != nil {
				return fmt.Errorf("gorm: delete jobs of user %d: %w", id, err)
			}
		}

		result := tx.Delete(&domain.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("gorm: delete user %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrUserNotFound
		}
		return nil
	})
}

func (r *GormUserRepository) filtered(ctx context.Context, filter repository.UserFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&domain.User{})
	if filter.Role != "" {
		tx = tx.Where("user_type = ?", filter.Role)
	}
	return applySearch(tx, filter.Search)
}

// List 分页查询用户
func (r *GormUserRepository) List(ctx context.Context, filter repository.UserFilter, page repository.PageRequest) ([]domain.User, int64, error) {
	base := r.filtered(ctx, filter).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count users: %w", err)
	}

	users := []domain.User{}
	err := paginate(base.Order("created_at DESC").Order("id DESC"), page).Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gorm: list users: %w", err)
	}
	return users, total, nil
}

// All 返回全部用户
func (r *GormUserRepository) All(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("gorm: list all users: %w", err)
	}
	return users, nil
}

// Count 统计用户数
func (r *GormUserRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count users: %w", err)
	}
	return count, nil
}

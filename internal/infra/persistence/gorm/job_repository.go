package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// GormJobRepository 是 JobRepository 接口的 GORM 实现
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository 创建 GormJobRepository 实例
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	if db == nil {
		panic("database connection cannot be nil for GormJobRepository")
	}
	return &GormJobRepository{db: db}
}

// FindByID 根据 ID 查找职位，并加载雇主
func (r *GormJobRepository) FindByID(ctx context.Context, id uint) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).Preload("Employer").First(&job, id).Error; err != nil {
		if err = translate(err); err == repository.ErrNotFound {
			return nil, repository.ErrJobNotFound
		}
		return nil, fmt.Errorf("gorm: find job by id %d: %w", id, err)
	}
	return &job, nil
}

// Create 插入职位，忽略 Employer 关联
func (r *GormJobRepository) Create(ctx context.Context, job *domain.Job) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error; err != nil {
		return fmt.Errorf("gorm: create job (employer_id: %d): %w", job.EmployerID, translate(err))
	}
	return nil
}

// Update 写入可编辑字段。is_active 为 false 时也要写入，所以用 map。
func (r *GormJobRepository) Update(ctx context.Context, job *domain.Job) error {
	result := r.db.WithContext(ctx).Model(&domain.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"title":        job.Title,
		"description":  job.Description,
		"location":     job.Location,
		"salary":       job.Salary,
		"requirements": job.Requirements,
		"is_active":    job.IsActive,
	})
	if result.Error != nil {
		return fmt.Errorf("gorm: update job %d: %w", job.ID, translate(result.Error))
	}
	return confirmAffected(result, r.db.WithContext(ctx), &domain.Job{}, job.ID, repository.ErrJobNotFound)
}

// SetActive 修改职位的上下线状态
func (r *GormJobRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&domain.Job{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("gorm: set job %d active=%t: %w", id, active, result.Error)
	}
	return confirmAffected(result, r.db.WithContext(ctx), &domain.Job{}, id, repository.ErrJobNotFound)
}

// Delete 在一个事务中先删申请再删职位
func (r *GormJobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
			return fmt.Errorf("gorm: delete applications of job %d: %w", id, err)
		}
		result := tx.Delete(&domain.Job{}, id)
		if result.Error != nil {
			return fmt.Errorf("gorm: delete job %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrJobNotFound
		}
		return nil
	})
}

func (r *GormJobRepository) filtered(ctx context.Context, filter repository.JobFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&domain.Job{})
	if filter.Active != nil {
		tx = tx.Where("is_active = ?", *filter.Active)
	}
	if filter.EmployerID != 0 {
		tx = tx.Where("employer_id = ?", filter.EmployerID)
	}
	if filter.Location != "" {
		tx = tx.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	return applySearch(tx, filter.Search)
}

// List 分页查询职位
func (r *GormJobRepository) List(ctx context.Context, filter repository.JobFilter, page repository.PageRequest) ([]domain.Job, int64, error) {
	base := r.filtered(ctx, filter).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count jobs: %w", err)
	}

	jobs := []domain.Job{}
	err := paginate(base.Preload("Employer").Order("created_at DESC").Order("id DESC"), page).Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gorm: list jobs: %w", err)
	}
	return jobs, total, nil
}

// ListByEmployer 返回雇主的全部职位
func (r *GormJobRepository) ListByEmployer(ctx context.Context, employerID uint) ([]domain.Job, error) {
	jobs := []domain.Job{}
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Where("employer_id = ?", employerID).
		Order("created_at DESC").Order("id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list jobs of employer %d: %w", employerID, err)
	}
	return jobs, nil
}

// Count 统计职位数
func (r *GormJobRepository) Count(ctx context.Context, filter repository.JobFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count jobs: %w", err)
	}
	return count, nil
}

package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// GormApplicationRepository 是 ApplicationRepository 接口的 GORM 实现
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository 创建 GormApplicationRepository 实例
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	if db == nil {
		panic("database connection cannot be nil for GormApplicationRepository")
	}
	return &GormApplicationRepository{db: db}
}

func (r *GormApplicationRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Job").Preload("Applicant")
}

// FindByID 根据 ID 查找申请，并加载职位和申请人
func (r *GormApplicationRepository) FindByID(ctx context.Context, id uint) (*domain.Application, error) {
	var app domain.Application
	if err := r.withRelations(ctx).First(&app, id).Error; err != nil {
		if err = translate(err); err == repository.ErrNotFound {
			return nil, repository.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("gorm: find application by id %d: %w", id, err)
	}
	return &app, nil
}

// FindByJobAndApplicant 查找某求职者对某职位的申请
func (r *GormApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID uint) (*domain.Application, error) {
	var app domain.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		First(&app).Error
	if err != nil {
		if err = translate(err); err == repository.ErrNotFound {
			return nil, repository.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("gorm: find application (job %d, applicant %d): %w", jobID, applicantID, err)
	}
	return &app, nil
}

// Create 插入申请。联合唯一索引冲突映射为 ErrDuplicateEntry。
func (r *GormApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app.Status == "" {
		app.Status = domain.StatusPending
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create application (job %d, applicant %d): %w", app.JobID, app.ApplicantID, err)
	}
	return nil
}

// UpdateStatus 只修改 status
func (r *GormApplicationRepository) UpdateStatus(ctx context.Context, id uint, status domain.ApplicationStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.Application{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("gorm: update application %d status: %w", id, result.Error)
	}
	return confirmAffected(result, r.db.WithContext(ctx), &domain.Application{}, id, repository.ErrApplicationNotFound)
}

// Delete 删除单个申请
func (r *GormApplicationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Application{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete application %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrApplicationNotFound
	}
	return nil
}

func (r *GormApplicationRepository) filtered(tx *gorm.DB, filter repository.ApplicationFilter) *gorm.DB {
	tx = tx.Model(&domain.Application{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.JobID != 0 {
		tx = tx.Where("job_id = ?", filter.JobID)
	}
	if filter.ApplicantID != 0 {
		tx = tx.Where("applicant_id = ?", filter.ApplicantID)
	}
	return tx
}

// List 分页查询申请
func (r *GormApplicationRepository) List(ctx context.Context, filter repository.ApplicationFilter, page repository.PageRequest) ([]domain.Application, int64, error) {
	base := r.filtered(r.db.WithContext(ctx), filter).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count applications: %w", err)
	}

	apps := []domain.Application{}
	err := paginate(base.Preload("Job").Preload("Applicant").Order("applied_at DESC").Order("id DESC"), page).Find(&apps).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gorm: list applications: %w", err)
	}
	return apps, total, nil
}

// ListAll 不分页查询申请
func (r *GormApplicationRepository) ListAll(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	apps := []domain.Application{}
	err := r.filtered(r.withRelations(ctx), filter).Order("applied_at DESC").Order("id DESC").Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list applications: %w", err)
	}
	return apps, nil
}

// Count 统计申请数
func (r *GormApplicationRepository) Count(ctx context.Context, filter repository.ApplicationFilter) (int64, error) {
	var count int64
	if err := r.filtered(r.db.WithContext(ctx), filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count applications: %w", err)
	}
	return count, nil
}

package repository

import (
	"context"

	"job-board/internal/domain"
)

// ApplicationFilter 申请列表的过滤条件
type ApplicationFilter struct {
	Status      domain.ApplicationStatus // 为空表示不过滤
	JobID       uint
	ApplicantID uint
}

// ApplicationRepository 定义了申请数据的存储和检索操作。
// 读取方法会一并加载 Job 与 Applicant，供序列化层反查职位名称和申请人姓名。
type ApplicationRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Application, error)

	// FindByJobAndApplicant 查找某求职者对某职位的申请，不存在时返回 ErrApplicationNotFound。
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID uint) (*domain.Application, error)

	// Create 插入新申请。(job_id, applicant_id) 重复时返回 ErrDuplicateEntry。
	Create(ctx context.Context, app *domain.Application) error

	// UpdateStatus 只修改 status 字段
	UpdateStatus(ctx context.Context, id uint, status domain.ApplicationStatus) error

	Delete(ctx context.Context, id uint) error

	// List 分页查询，按申请时间倒序。
	List(ctx context.Context, filter ApplicationFilter, page PageRequest) ([]domain.Application, int64, error)

	// ListAll 不分页，按申请时间倒序 (用于 "我的申请" 和 "职位的申请")。
	ListAll(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error)

	Count(ctx context.Context, filter ApplicationFilter) (int64, error)
}

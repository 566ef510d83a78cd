package repository

import (
	"context"

	"job-board/internal/domain"
)

// JobFilter 职位列表的过滤条件
type JobFilter struct {
	Active     *bool // nil 表示不区分
	EmployerID uint  // 0 表示不过滤
	Location   string
	Search     Search
}

// JobRepository 定义了职位数据的存储和检索操作。
// 读取方法会一并加载 Employer，供序列化层反查公司名。
type JobRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Job, error)

	// Create 插入新职位，关联对象不会被写入。
	Create(ctx context.Context, job *domain.Job) error

	// Update 更新职位的可编辑字段 (不包括 employer_id)。
	Update(ctx context.Context, job *domain.Job) error

	// SetActive 只修改 is_active 字段
	SetActive(ctx context.Context, id uint, active bool) error

	// Delete 删除职位并级联删除其下所有申请。
	Delete(ctx context.Context, id uint) error

	// List 分页查询，按创建时间倒序。
	List(ctx context.Context, filter JobFilter, page PageRequest) ([]domain.Job, int64, error)

	// ListByEmployer 返回某雇主的全部职位 (不分页)，按创建时间倒序。
	ListByEmployer(ctx context.Context, employerID uint) ([]domain.Job, error)

	Count(ctx context.Context, filter JobFilter) (int64, error)
}

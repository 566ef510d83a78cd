package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// PublicJobPageSize 公开职位列表的默认每页条数
const PublicJobPageSize = 10

// JobService 处理职位的发布、维护和查询
type JobService struct {
	jobRepo repository.JobRepository
	appRepo repository.ApplicationRepository
}

// NewJobService 创建 JobService 实例
func NewJobService(jobRepo repository.JobRepository, appRepo repository.ApplicationRepository) *JobService {
	if jobRepo == nil || appRepo == nil {
		panic("JobRepository and ApplicationRepository cannot be nil for JobService")
	}
	return &JobService{jobRepo: jobRepo, appRepo: appRepo}
}

// JobInput 创建职位的字段
type JobInput struct {
	Title        string
	Description  string
	Location     string
	Salary       *string
	Requirements *string
}

// 与 jobs 表的列宽一致
const maxSalaryLength = 50

// JobUpdate 部分更新，nil 字段保持不变；Salary / Requirements 可以被清空
type JobUpdate struct {
	Title        *string
	Description  *string
	Location     *string
	Salary       Optional[string]
	Requirements Optional[string]
	IsActive     *bool
}

// JobQuery 公开列表的查询参数
type JobQuery struct {
	Search   string
	Location string
	Page     int
	PerPage  int
}

// AdminJobQuery 管理员列表的查询参数。Status 取 active / inactive，其他值不过滤。
type AdminJobQuery struct {
	Status  string
	Search  string
	Page    int
	PerPage int
}

// 职位相关的角色规则，路由与服务共用
var (
	PostJob    = Policy{Name: "post_job", Roles: []domain.Role{domain.RoleEmployer}, Reason: "only employers can post jobs"}
	ViewMyJobs = Policy{Name: "my_jobs", Roles: []domain.Role{domain.RoleEmployer}, Reason: "only employers can view their job postings"}
)

// ListActive 公开的在招职位列表，搜索标题、描述和地点
func (s *JobService) ListActive(ctx context.Context, q JobQuery) (*Page[domain.Job], error) {
	active := true
	filter := repository.JobFilter{
		Active:   &active,
		Location: strings.TrimSpace(q.Location),
		Search: repository.Search{
			Term:   strings.TrimSpace(q.Search),
			Fields: []string{repository.FieldTitle, repository.FieldDescription, repository.FieldLocation},
		},
	}
	page := repository.NewPageRequest(q.Page, q.PerPage, PublicJobPageSize)
	jobs, total, err := s.jobRepo.List(ctx, filter, page)
	if err != nil {
		logrus.WithError(err).Error("Failed to list active jobs")
		return nil, ErrInternalServer
	}
	return newPage(jobs, total, page), nil
}

// Get 职位详情，公开访问 (包括已关闭的职位)
func (s *JobService) Get(ctx context.Context, id uint) (*domain.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrJobNotFound)
	}
	return job, nil
}

// Create 发布职位，employer_id 始终取调用方
func (s *JobService) Create(ctx context.Context, principal *domain.Principal, in JobInput) (*domain.Job, error) {
	if err := PostJob.Check(principal); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Location) == "" {
		return nil, validationError("title, description and location are required")
	}
	if err := checkLength("salary", in.Salary, maxSalaryLength); err != nil {
		return nil, err
	}
	logCtx := logrus.WithField("employer_id", principal.UserID)

	job := &domain.Job{
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		Salary:       in.Salary,
		Requirements: in.Requirements,
		EmployerID:   principal.UserID,
		IsActive:     true,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		logCtx.WithError(err).Error("Failed to create job")
		return nil, mapRepoError(err, nil)
	}
	logCtx.WithField("job_id", job.ID).Info("Job created")

	// 重新加载以带上雇主信息
	created, err := s.jobRepo.FindByID(ctx, job.ID)
	if err != nil {
		logCtx.WithError(err).Warn("Failed to reload created job")
		return job, nil
	}
	return created, nil
}

// Update 修改职位，仅职位所有者或管理员
func (s *JobService) Update(ctx context.Context, principal *domain.Principal, id uint, in JobUpdate) (*domain.Job, error) {
	if err := Authenticated.Check(principal); err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrJobNotFound)
	}
	if err := JobOwnership(job, "you can only edit your own job postings").Check(principal); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		name  string
		value *string
		dst   *string
	}{
		{"title", in.Title, &job.Title},
		{"description", in.Description, &job.Description},
		{"location", in.Location, &job.Location},
	} {
		if f.value == nil {
			continue
		}
		if strings.TrimSpace(*f.value) == "" {
			return nil, validationError("%s cannot be empty", f.name)
		}
		*f.dst = *f.value
	}
	if err := checkLength("salary", in.Salary.Value, maxSalaryLength); err != nil {
		return nil, err
	}
	in.Salary.applyTo(&job.Salary)
	in.Requirements.applyTo(&job.Requirements)
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}

	logCtx := logrus.WithFields(logrus.Fields{"job_id": id, "user_id": principal.UserID})
	if err := s.jobRepo.Update(ctx, job); err != nil {
		logCtx.WithError(err).Error("Failed to update job")
		return nil, mapRepoError(err, ErrJobNotFound)
	}
	logCtx.Info("Job updated")
	return job, nil
}

// Delete 删除职位及其申请，仅职位所有者或管理员
func (s *JobService) Delete(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := Authenticated.Check(principal); err != nil {
		return err
	}
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return mapRepoError(err, ErrJobNotFound)
	}
	if err := JobOwnership(job, "you can only delete your own job postings").Check(principal); err != nil {
		return err
	}

	logCtx := logrus.WithFields(logrus.Fields{"job_id": id, "user_id": principal.UserID})
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		logCtx.WithError(err).Error("Failed to delete job")
		return mapRepoError(err, ErrJobNotFound)
	}
	logCtx.Info("Job deleted")
	return nil
}

// MyJobs 当前雇主发布的全部职位
func (s *JobService) MyJobs(ctx context.Context, principal *domain.Principal) ([]domain.Job, error) {
	if err := ViewMyJobs.Check(principal); err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.ListByEmployer(ctx, principal.UserID)
	if err != nil {
		logrus.WithError(err).WithField("employer_id", principal.UserID).Error("Failed to list employer jobs")
		return nil, ErrInternalServer
	}
	return jobs, nil
}

// Applications 某职位收到的全部申请，仅职位所有者或管理员
func (s *JobService) Applications(ctx context.Context, principal *domain.Principal, jobID uint) ([]domain.Application, error) {
	if err := Authenticated.Check(principal); err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, ErrJobNotFound)
	}
	if err := JobOwnership(job, "you can only view applications for your own jobs").Check(principal); err != nil {
		return nil, err
	}
	apps, err := s.appRepo.ListAll(ctx, repository.ApplicationFilter{JobID: jobID})
	if err != nil {
		logrus.WithError(err).WithField("job_id", jobID).Error("Failed to list job applications")
		return nil, ErrInternalServer
	}
	return apps, nil
}

// ListAll 管理员职位列表，搜索标题、描述和任职要求
func (s *JobService) ListAll(ctx context.Context, principal *domain.Principal, q AdminJobQuery) (*Page[domain.Job], error) {
	if err := AdminOnly.Check(principal); err != nil {
		return nil, err
	}
	filter := repository.JobFilter{
		Search: repository.Search{
			Term:   strings.TrimSpace(q.Search),
			Fields: []string{repository.FieldTitle, repository.FieldDescription, repository.FieldRequirements},
		},
	}
	switch q.Status {
	case "active":
		active := true
		filter.Active = &active
	case "inactive":
		inactive := false
		filter.Active = &inactive
	}

	page := repository.NewPageRequest(q.Page, q.PerPage, repository.DefaultPageSize)
	jobs, total, err := s.jobRepo.List(ctx, filter, page)
	if err != nil {
		logrus.WithError(err).Error("Failed to list jobs for admin")
		return nil, ErrInternalServer
	}
	return newPage(jobs, total, page), nil
}

// AdminDelete 管理员删除任意职位
func (s *JobService) AdminDelete(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := AdminOnly.Check(principal); err != nil {
		return err
	}
	return s.Delete(ctx, principal, id)
}

// ToggleStatus 切换职位的 is_active，仅管理员
func (s *JobService) ToggleStatus(ctx context.Context, principal *domain.Principal, id uint) (*domain.Job, error) {
	if err := AdminOnly.Check(principal); err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrJobNotFound)
	}
	if err := s.jobRepo.SetActive(ctx, id, !job.IsActive); err != nil {
		logrus.WithError(err).WithField("job_id", id).Error("Failed to toggle job status")
		return nil, mapRepoError(err, ErrJobNotFound)
	}
	job.IsActive = !job.IsActive
	logrus.WithFields(logrus.Fields{"job_id": id, "is_active": job.IsActive}).Info("Job status toggled")
	return job, nil
}

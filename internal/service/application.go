package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// ApplicationService 处理求职申请
type ApplicationService struct {
	jobRepo repository.JobRepository
	appRepo repository.ApplicationRepository
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(jobRepo repository.JobRepository, appRepo repository.ApplicationRepository) *ApplicationService {
	if jobRepo == nil || appRepo == nil {
		panic("JobRepository and ApplicationRepository cannot be nil for ApplicationService")
	}
	return &ApplicationService{jobRepo: jobRepo, appRepo: appRepo}
}

// ApplyInput 申请附带的可选字段
type ApplyInput struct {
	CoverLetter    *string
	ResumeFilename *string
}

// ApplicationQuery 管理员申请列表的查询参数
type ApplicationQuery struct {
	Status  string
	Page    int
	PerPage int
}

// 申请相关的角色规则，路由与服务共用
var (
	ApplyToJob         = Policy{Name: "apply", Roles: []domain.Role{domain.RoleJobSeeker}, Reason: "only job seekers can apply to jobs"}
	ViewMyApplications = Policy{Name: "my_applications", Roles: []domain.Role{domain.RoleJobSeeker}, Reason: "only job seekers can view their applications"}
)

// Apply 求职者申请职位。同一求职者对同一职位只能申请一次。
func (s *ApplicationService) Apply(ctx context.Context, principal *domain.Principal, jobID uint, in ApplyInput) (*domain.Application, error) {
	if err := ApplyToJob.Check(principal); err != nil {
		return nil, err
	}
	logCtx := logrus.WithFields(logrus.Fields{"job_id": jobID, "applicant_id": principal.UserID})

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, ErrJobNotFound)
	}
	if !job.IsActive {
		return nil, ErrJobNotActive
	}

	// 预检查；并发下由唯一索引兜底
	existing, err := s.appRepo.FindByJobAndApplicant(ctx, jobID, principal.UserID)
	switch {
	case err == nil && existing != nil:
		logCtx.Warn("Apply rejected: already applied")
		return nil, ErrAlreadyApplied
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		logCtx.WithError(err).Error("Failed to check existing application")
		return nil, ErrInternalServer
	}

	app := &domain.Application{
		JobID:          jobID,
		ApplicantID:    principal.UserID,
		CoverLetter:    in.CoverLetter,
		ResumeFilename: in.ResumeFilename,
		Status:         domain.StatusPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Apply rejected: duplicate detected by store")
			return nil, ErrAlreadyApplied
		}
		logCtx.WithError(err).Error("Failed to create application")
		return nil, ErrInternalServer
	}
	logCtx.WithField("application_id", app.ID).Info("Application submitted")

	created, err := s.appRepo.FindByID(ctx, app.ID)
	if err != nil {
		logCtx.WithError(err).Warn("Failed to reload created application")
		app.Job = job
		return app, nil
	}
	return created, nil
}

// MyApplications 当前求职者的全部申请
func (s *ApplicationService) MyApplications(ctx context.Context, principal *domain.Principal) ([]domain.Application, error) {
	if err := ViewMyApplications.Check(principal); err != nil {
		return nil, err
	}
	apps, err := s.appRepo.ListAll(ctx, repository.ApplicationFilter{ApplicantID: principal.UserID})
	if err != nil {
		logrus.WithError(err).WithField("applicant_id", principal.UserID).Error("Failed to list applications")
		return nil, ErrInternalServer
	}
	return apps, nil
}

// UpdateStatus 修改申请状态，仅职位所有者或管理员。状态在写入前校验。
func (s *ApplicationService) UpdateStatus(ctx context.Context, principal *domain.Principal, id uint, status string) (*domain.Application, error) {
	if err := Authenticated.Check(principal); err != nil {
		return nil, err
	}
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrApplicationNotFound)
	}

	job := app.Job
	if job == nil {
		if job, err = s.jobRepo.FindByID(ctx, app.JobID); err != nil {
			return nil, mapRepoError(err, ErrJobNotFound)
		}
	}
	if err := JobOwnership(job, "you can only update applications for your own jobs").Check(principal); err != nil {
		return nil, err
	}

	next := domain.ApplicationStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	logCtx := logrus.WithFields(logrus.Fields{"application_id": id, "status": next, "user_id": principal.UserID})
	if err := s.appRepo.UpdateStatus(ctx, id, next); err != nil {
		logCtx.WithError(err).Error("Failed to update application status")
		return nil, mapRepoError(err, ErrApplicationNotFound)
	}
	app.Status = next
	logCtx.Info("Application status updated")
	return app, nil
}

// ListAll 管理员申请列表，可按状态过滤
func (s *ApplicationService) ListAll(ctx context.Context, principal *domain.Principal, q ApplicationQuery) (*Page[domain.Application], error) {
	if err := AdminOnly.Check(principal); err != nil {
		return nil, err
	}
	var filter repository.ApplicationFilter
	if q.Status != "" {
		status := domain.ApplicationStatus(q.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		filter.Status = status
	}

	page := repository.NewPageRequest(q.Page, q.PerPage, repository.DefaultPageSize)
	apps, total, err := s.appRepo.List(ctx, filter, page)
	if err != nil {
		logrus.WithError(err).Error("Failed to list applications for admin")
		return nil, ErrInternalServer
	}
	return newPage(apps, total, page), nil
}

// Delete 删除申请，仅管理员
func (s *ApplicationService) Delete(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := AdminOnly.Check(principal); err != nil {
		return err
	}
	if err := s.appRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithError(err).WithField("application_id", id).Error("Failed to delete application")
		}
		return mapRepoError(err, ErrApplicationNotFound)
	}
	logrus.WithFields(logrus.Fields{"application_id": id, "admin_id": principal.UserID}).Info("Application deleted")
	return nil
}

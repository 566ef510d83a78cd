package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// RecentLimit 仪表盘中 "最近" 列表的条数
const RecentLimit = 5

// DashboardStats 全站统计
type DashboardStats struct {
	TotalUsers        int64
	TotalEmployers    int64
	TotalJobSeekers   int64
	TotalJobs         int64
	ActiveJobs        int64
	TotalApplications int64
}

// Dashboard 管理员仪表盘：统计数据加最近的用户、职位和申请
type Dashboard struct {
	Stats              DashboardStats
	RecentUsers        []domain.User
	RecentJobs         []domain.Job
	RecentApplications []domain.Application
}

// AdminService 汇总管理员视图
type AdminService struct {
	userRepo repository.UserRepository
	jobRepo  repository.JobRepository
	appRepo  repository.ApplicationRepository
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(userRepo repository.UserRepository, jobRepo repository.JobRepository, appRepo repository.ApplicationRepository) *AdminService {
	if userRepo == nil || jobRepo == nil || appRepo == nil {
		panic("repositories cannot be nil for AdminService")
	}
	return &AdminService{userRepo: userRepo, jobRepo: jobRepo, appRepo: appRepo}
}

// Dashboard 生成仪表盘数据，仅管理员
func (s *AdminService) Dashboard(ctx context.Context, principal *domain.Principal) (*Dashboard, error) {
	if err := AdminOnly.Check(principal); err != nil {
		return nil, err
	}
	logCtx := logrus.WithField("admin_id", principal.UserID)

	var (
		stats  DashboardStats
		err    error
		active = true
	)
	counts := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&stats.TotalUsers, func() (int64, error) { return s.userRepo.Count(ctx, repository.UserFilter{}) }},
		{&stats.TotalEmployers, func() (int64, error) {
			return s.userRepo.Count(ctx, repository.UserFilter{Role: domain.RoleEmployer})
		}},
		{&stats.TotalJobSeekers, func() (int64, error) {
			return s.userRepo.Count(ctx, repository.UserFilter{Role: domain.RoleJobSeeker})
		}},
		{&stats.TotalJobs, func() (int64, error) { return s.jobRepo.Count(ctx, repository.JobFilter{}) }},
		{&stats.ActiveJobs, func() (int64, error) { return s.jobRepo.Count(ctx, repository.JobFilter{Active: &active}) }},
		{&stats.TotalApplications, func() (int64, error) {
			return s.appRepo.Count(ctx, repository.ApplicationFilter{})
		}},
	}
	for _, c := range counts {
		if *c.dst, err = c.count(); err != nil {
			logCtx.WithError(err).Error("Failed to compute dashboard stats")
			return nil, ErrInternalServer
		}
	}

	recent := repository.NewPageRequest(1, RecentLimit, RecentLimit)
	dash := &Dashboard{Stats: stats}
	if dash.RecentUsers, _, err = s.userRepo.List(ctx, repository.UserFilter{}, recent); err != nil {
		logCtx.WithError(err).Error("Failed to load recent users")
		return nil, ErrInternalServer
	}
	if dash.RecentJobs, _, err = s.jobRepo.List(ctx, repository.JobFilter{}, recent); err != nil {
		logCtx.WithError(err).Error("Failed to load recent jobs")
		return nil, ErrInternalServer
	}
	if dash.RecentApplications, _, err = s.appRepo.List(ctx, repository.ApplicationFilter{}, recent); err != nil {
		logCtx.WithError(err).Error("Failed to load recent applications")
		return nil, ErrInternalServer
	}
	return dash, nil
}

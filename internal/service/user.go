package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// UserService 处理个人资料以及管理员的用户管理
type UserService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *UserService {
	if userRepo == nil || sessionRepo == nil {
		panic("UserRepository and SessionRepository cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo, sessionRepo: sessionRepo}
}

// ProfileInput 资料更新，nil 字段保持不变；Phone / CompanyName 可以被清空
type ProfileInput struct {
	FullName    *string
	Email       *string
	Phone       Optional[string]
	CompanyName Optional[string]
}

// 与 users 表的列宽一致
const (
	maxPhoneLength   = 20
	maxCompanyLength = 100
)

// UserQuery 管理员用户列表的查询参数
type UserQuery struct {
	Role    string
	Search  string
	Page    int
	PerPage int
}

// Profile 返回当前用户的资料
func (s *UserService) Profile(ctx context.Context, principal *domain.Principal) (*domain.User, error) {
	if err := Authenticated.Check(principal); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, mapRepoError(err, ErrUserNotFound)
	}
	return user, nil
}

// UpdateProfile 更新当前用户的资料。公司名只对雇主生效；用户名和角色不可修改。
func (s *UserService) UpdateProfile(ctx context.Context, principal *domain.Principal, in ProfileInput) (*domain.User, error) {
	if err := Authenticated.Check(principal); err != nil {
		return nil, err
	}
	logCtx := logrus.WithField("user_id", principal.UserID)

	user, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, mapRepoError(err, ErrUserNotFound)
	}

	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return nil, validationError("full_name cannot be empty")
		}
		user.FullName = *in.FullName
	}
	if in.Email != nil && *in.Email != user.Email {
		if strings.TrimSpace(*in.Email) == "" {
			return nil, validationError("email cannot be empty")
		}
		// 邮箱只与其他用户比较
		other, err := s.userRepo.FindByEmail(ctx, *in.Email)
		switch {
		case err == nil && other != nil && other.ID != user.ID:
			logCtx.Warn("Profile update rejected: email already exists")
			return nil, ErrEmailTaken
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			logCtx.WithError(err).Error("Failed to check email uniqueness")
			return nil, ErrInternalServer
		}
		user.Email = *in.Email
	}
	if err := checkLength("phone", in.Phone.Value, maxPhoneLength); err != nil {
		return nil, err
	}
	if err := checkLength("company_name", in.CompanyName.Value, maxCompanyLength); err != nil {
		return nil, err
	}
	in.Phone.applyTo(&user.Phone)
	if user.Role == domain.RoleEmployer {
		in.CompanyName.applyTo(&user.CompanyName)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrEmailTaken
		}
		logCtx.WithError(err).Error("Failed to update profile")
		return nil, mapRepoError(err, ErrUserNotFound)
	}

	logCtx.Info("Profile updated")
	return user, nil
}

// AllUsers 返回全部用户 (不分页)，仅管理员
func (s *UserService) AllUsers(ctx context.Context, principal *domain.Principal) ([]domain.User, error) {
	if err := AdminOnly.Check(principal); err != nil {
		return nil, err
	}
	users, err := s.userRepo.All(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		return nil, ErrInternalServer
	}
	return users, nil
}

// ListUsers 分页列出用户，可按角色过滤并在用户名、邮箱、姓名中搜索
func (s *UserService) ListUsers(ctx context.Context, principal *domain.Principal, q UserQuery) (*Page[domain.User], error) {
	if err := AdminOnly.Check(principal); err != nil {
		return nil, err
	}

	filter := repository.UserFilter{
		Search: repository.Search{
			Term:   strings.TrimSpace(q.Search),
			Fields: []string{repository.FieldUsername, repository.FieldEmail, repository.FieldFullName},
		},
	}
	if q.Role != "" {
		role := domain.Role(q.Role)
		if !role.Valid() {
			return nil, ErrInvalidUserType
		}
		filter.Role = role
	}

	page := repository.NewPageRequest(q.Page, q.PerPage, repository.DefaultPageSize)
	users, total, err := s.userRepo.List(ctx, filter, page)
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		return nil, ErrInternalServer
	}
	return newPage(users, total, page), nil
}

// DeleteUser 删除用户及其职位和申请，并吊销其全部会话。
// 不允许删除自己，这一检查先于角色检查。
func (s *UserService) DeleteUser(ctx context.Context, principal *domain.Principal, targetID uint) error {
	if err := Authenticated.Check(principal); err != nil {
		return err
	}
	if err := NotSelf(principal, targetID); err != nil {
		return err
	}
	if err := AdminOnly.Check(principal); err != nil {
		return err
	}
	logCtx := logrus.WithFields(logrus.Fields{"admin_id": principal.UserID, "target_id": targetID})

	if _, err := s.userRepo.FindByID(ctx, targetID); err != nil {
		return mapRepoError(err, ErrUserNotFound)
	}
	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		logCtx.WithError(err).Error("Failed to delete user")
		return mapRepoError(err, ErrUserNotFound)
	}

	// 数据已提交，吊销会话失败只记录日志
	if err := s.sessionRepo.DeleteByUser(ctx, targetID); err != nil {
		logCtx.WithError(err).Warn("Failed to revoke sessions of deleted user")
	}
	logCtx.Info("User deleted")
	return nil
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// ApplicationRepository 是 repository.ApplicationRepository 的 Mock
type ApplicationRepository struct {
	mock.Mock
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)

func (m *ApplicationRepository) FindByID(ctx context.Context, id uint) (*domain.Application, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*domain.Application)
	return app, args.Error(1)
}

func (m *ApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID uint) (*domain.Application, error) {
	args := m.Called(ctx, jobID, applicantID)
	app, _ := args.Get(0).(*domain.Application)
	return app, args.Error(1)
}

func (m *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *ApplicationRepository) UpdateStatus(ctx context.Context, id uint, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *ApplicationRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ApplicationRepository) List(ctx context.Context, filter repository.ApplicationFilter, page repository.PageRequest) ([]domain.Application, int64, error) {
	args := m.Called(ctx, filter, page)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Get(1).(int64), args.Error(2)
}

func (m *ApplicationRepository) ListAll(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, filter)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}

func (m *ApplicationRepository) Count(ctx context.Context, filter repository.ApplicationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

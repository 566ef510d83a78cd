package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// JobRepository 是 repository.JobRepository 的 Mock
type JobRepository struct {
	mock.Mock
}

var _ repository.JobRepository = (*JobRepository)(nil)

func (m *JobRepository) FindByID(ctx context.Context, id uint) (*domain.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *JobRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *JobRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *JobRepository) List(ctx context.Context, filter repository.JobFilter, page repository.PageRequest) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, page)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Get(1).(int64), args.Error(2)
}

func (m *JobRepository) ListByEmployer(ctx context.Context, employerID uint) ([]domain.Job, error) {
	args := m.Called(ctx, employerID)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *JobRepository) Count(ctx context.Context, filter repository.JobFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

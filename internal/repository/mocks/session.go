package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"job-board/internal/domain"
	"job-board/internal/repository"
)

// SessionRepository 是 repository.SessionRepository 的 Mock
type SessionRepository struct {
	mock.Mock
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

func (m *SessionRepository) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	return m.Called(ctx, session, ttl).Error(0)
}

func (m *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Session)
	return s, args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

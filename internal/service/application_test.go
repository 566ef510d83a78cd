package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"job-board/internal/domain"
	"job-board/internal/repository"
	"job-board/internal/repository/mocks"
	"job-board/internal/service"
)

func newApplicationService() (*service.ApplicationService, *mocks.JobRepository, *mocks.ApplicationRepository) {
	jobRepo := new(mocks.JobRepository)
	appRepo := new(mocks.ApplicationRepository)
	return service.NewApplicationService(jobRepo, appRepo), jobRepo, appRepo
}

func TestApplicationService_Apply_Success(t *testing.T) {
	svc, jobRepo, appRepo := newApplicationService()
	ctx := context.Background()

	jobRepo.On("FindByID", ctx, uint(8)).Return(&domain.Job{ID: 8, IsActive: true}, nil)
	appRepo.On("FindByJobAndApplicant", ctx, uint(8), seekerP.UserID).Return(nil, repository.ErrApplicationNotFound)
	appRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
		return a.JobID == 8 && a.ApplicantID == seekerP.UserID && a.Status == domain.StatusPending
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Application).ID = 21
	}).Return(nil).Once()
	appRepo.On("FindByID", ctx, uint(21)).Return(&domain.Application{ID: 21, JobID: 8, Status: domain.StatusPending}, nil)

	app, err := svc.Apply(ctx, seekerP, 8, service.ApplyInput{CoverLetter: strPtr("hello")})

	require.NoError(t, err)
	assert.Equal(t, uint(21), app.ID)
	assert.Equal(t, domain.StatusPending, app.Status)
	appRepo.AssertExpectations(t)
}

func TestApplicationService_Apply_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("employer cannot apply", func(t *testing.T) {
		svc, jobRepo, _ := newApplicationService()
		_, err := svc.Apply(ctx, employerP, 8, service.ApplyInput{})
		assert.EqualError(t, err, "only job seekers can apply to jobs")
		jobRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing job", func(t *testing.T) {
		svc, jobRepo, _ := newApplicationService()
		jobRepo.On("FindByID", ctx, uint(8)).Return(nil, repository.ErrJobNotFound)
		_, err := svc.Apply(ctx, seekerP, 8, service.ApplyInput{})
		assert.ErrorIs(t, err, service.ErrJobNotFound)
	})

	t.Run("inactive job", func(t *testing.T) {
		svc, jobRepo, appRepo := newApplicationService()
		jobRepo.On("FindByID", ctx, uint(8)).Return(&domain.Job{ID: 8, IsActive: false}, nil)
		_, err := svc.Apply(ctx, seekerP, 8, service.ApplyInput{})
		assert.ErrorIs(t, err, service.ErrJobNotActive)
		assert.Equal(t, service.KindValidation, service.KindOf(err))
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("second application", func(t *testing.T) {
		svc, jobRepo, appRepo := newApplicationService()
		jobRepo.On("FindByID", ctx, uint(8)).Return(&domain.Job{ID: 8, IsActive: true}, nil)
		appRepo.On("FindByJobAndApplicant", ctx, uint(8), seekerP.UserID).Return(&domain.Application{ID: 1}, nil)
		_, err := svc.Apply(ctx, seekerP, 8, service.ApplyInput{})
		assert.ErrorIs(t, err, service.ErrAlreadyApplied)
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate caught by store", func(t *testing.T) {
		svc, jobRepo, appRepo := newApplicationService()
		jobRepo.On("FindByID", ctx, uint(8)).Return(&domain.Job{ID: 8, IsActive: true}, nil)
		appRepo.On("FindByJobAndApplicant", ctx, uint(8), seekerP.UserID).Return(nil, repository.ErrApplicationNotFound)
		appRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEntry)
		_, err := svc.Apply(ctx, seekerP, 8, service.ApplyInput{})
		assert.ErrorIs(t, err, service.ErrAlreadyApplied)
	})
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	stored := func() *domain.Application {
		return &domain.Application{
			ID: 30, JobID: 8, ApplicantID: seekerP.UserID, Status: domain.StatusPending,
			Job: &domain.Job{ID: 8, EmployerID: employerP.UserID},
		}
	}

	t.Run("owner accepts", func(t *testing.T) {
		svc, _, appRepo := newApplicationService()
		appRepo.On("FindByID", ctx, uint(30)).Return(stored(), nil)
		appRepo.On("UpdateStatus", ctx, uint(30), domain.StatusAccepted).Return(nil).Once()

		app, err := svc.UpdateStatus(ctx, employerP, 30, "accepted")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, app.Status)
		appRepo.AssertExpectations(t)
	})

	t.Run("invalid status never written", func(t *testing.T) {
		svc, _, appRepo := newApplicationService()
		appRepo.On("FindByID", ctx, uint(30)).Return(stored(), nil)

		_, err := svc.UpdateStatus(ctx, employerP, 30, "hired")

		assert.ErrorIs(t, err, service.ErrInvalidStatus)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("applicant cannot change own status", func(t *testing.T) {
		svc, _, appRepo := newApplicationService()
		appRepo.On("FindByID", ctx, uint(30)).Return(stored(), nil)

		_, err := svc.UpdateStatus(ctx, seekerP, 30, "accepted")

		assert.Equal(t, service.KindAuthorization, service.KindOf(err))
	})

	t.Run("job loaded when relation missing", func(t *testing.T) {
		svc, jobRepo, appRepo := newApplicationService()
		app := stored()
		app.Job = nil
		appRepo.On("FindByID", ctx, uint(30)).Return(app, nil)
		jobRepo.On("FindByID", ctx, uint(8)).Return(&domain.Job{ID: 8, EmployerID: employerP.UserID}, nil).Once()
		appRepo.On("UpdateStatus", ctx, uint(30), domain.StatusReviewed).Return(nil)

		_, err := svc.UpdateStatus(ctx, adminP, 30, "reviewed")

		require.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("missing application", func(t *testing.T) {
		svc, _, appRepo := newApplicationService()
		appRepo.On("FindByID", ctx, uint(30)).Return(nil, repository.ErrApplicationNotFound)

		_, err := svc.UpdateStatus(ctx, employerP, 30, "accepted")

		assert.ErrorIs(t, err, service.ErrApplicationNotFound)
	})
}

func TestApplicationService_MyApplications(t *testing.T) {
	svc, _, appRepo := newApplicationService()
	ctx := context.Background()
	appRepo.On("ListAll", ctx, repository.ApplicationFilter{ApplicantID: seekerP.UserID}).
		Return([]domain.Application{{ID: 1}}, nil)

	apps, err := svc.MyApplications(ctx, seekerP)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	_, err = svc.MyApplications(ctx, employerP)
	assert.EqualError(t, err, "only job seekers can view their applications")
}

func TestApplicationService_AdminOperations(t *testing.T) {
	svc, _, appRepo := newApplicationService()
	ctx := context.Background()

	appRepo.On("List", ctx, repository.ApplicationFilter{Status: domain.StatusRejected}, repository.PageRequest{Page: 1, PerPage: 20}).
		Return([]domain.Application{}, int64(0), nil).Once()
	_, err := svc.ListAll(ctx, adminP, service.ApplicationQuery{Status: "rejected"})
	require.NoError(t, err)

	_, err = svc.ListAll(ctx, adminP, service.ApplicationQuery{Status: "bogus"})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	appRepo.On("Delete", ctx, uint(5)).Return(repository.ErrApplicationNotFound).Once()
	assert.ErrorIs(t, svc.Delete(ctx, adminP, 5), service.ErrApplicationNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, employerP, 5), service.ErrAdminRequired)
	appRepo.AssertExpectations(t)
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/medmarket/backend/internal/application/services"
	"github.com/medmarket/backend/internal/domain/entities"
	apperrors "github.com/medmarket/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAppointmentFixture(requireOwner bool) (*MockAppointmentRepository, *MockAdRepository, *MockUserRepository, *services.AppointmentService) {
	appointmentRepo := new(MockAppointmentRepository)
	adRepo := new(MockAdRepository)
	userRepo := new(MockUserRepository)
	service := services.NewAppointmentService(appointmentRepo, adRepo, userRepo, requireOwner)
	return appointmentRepo, adRepo, userRepo, service
}

func timePtr(t time.Time) *time.Time { return &t }

func TestAppointmentService_Create(t *testing.T) {
	ctx := context.Background()
	when := time.Now().Add(48 * time.Hour)

	t.Run("new appointments always start pending", func(t *testing.T) {
		appointmentRepo, adRepo, userRepo, service := newAppointmentFixture(true)

		userRepo.On("GetByID", mock.Anything, "client-1").Return(&entities.User{ID: "client-1"}, nil)
		adRepo.On("GetByID", mock.Anything, "ad-1").Return(&entities.Ad{ID: "ad-1", DoctorID: "doc-1"}, nil)
		appointmentRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.Status == entities.AppointmentStatusPending &&
				a.ClientID == "client-1" && a.DoctorID == "doc-1" && a.AdID == "ad-1"
		})).Return(nil)

		appointment, err := service.Create(ctx, "client-1", "ad-1", services.AppointmentInput{
			Message:         "please",
			AppointmentTime: timePtr(when),
		})

		assert.NoError(t, err)
		assert.Equal(t, entities.AppointmentStatusPending, appointment.Status)
		appointmentRepo.AssertExpectations(t)
	})

	t.Run("requires an appointment time", func(t *testing.T) {
		appointmentRepo, adRepo, userRepo, service := newAppointmentFixture(true)

		userRepo.On("GetByID", mock.Anything, "client-1").Return(&entities.User{ID: "client-1"}, nil)
		adRepo.On("GetByID", mock.Anything, "ad-1").Return(&entities.Ad{ID: "ad-1", DoctorID: "doc-1"}, nil)

		_, err := service.Create(ctx, "client-1", "ad-1", services.AppointmentInput{Message: "no time"})

		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
		appointmentRepo.AssertNotCalled(t, "Create")
	})

	t.Run("fails when the ad does not exist", func(t *testing.T) {
		_, adRepo, userRepo, service := newAppointmentFixture(true)

		userRepo.On("GetByID", mock.Anything, "client-1").Return(&entities.User{ID: "client-1"}, nil)
		adRepo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("ad not found"))

		_, err := service.Create(ctx, "client-1", "missing", services.AppointmentInput{
			AppointmentTime: timePtr(when),
		})

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestAppointmentService_Update(t *testing.T) {
	ctx := context.Background()
	existing := func() *entities.Appointment {
		return &entities.Appointment{
			ID:       "apt-1",
			ClientID: "client-1",
			DoctorID: "doc-1",
			Message:  "original",
			Status:   entities.AppointmentStatusPending,
		}
	}

	t.Run("owner can update when the policy is active", func(t *testing.T) {
		appointmentRepo, _, _, service := newAppointmentFixture(true)

		appointmentRepo.On("GetByID", mock.Anything, "apt-1").Return(existing(), nil)
		appointmentRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.Message == "rescheduled"
		})).Return(nil)

		appointment, err := service.Update(ctx, "client-1", "apt-1", services.AppointmentInput{Message: "rescheduled"})

		assert.NoError(t, err)
		assert.Equal(t, "rescheduled", appointment.Message)
	})

	t.Run("non-owner is rejected when the policy is active", func(t *testing.T) {
		appointmentRepo, _, _, service := newAppointmentFixture(true)

		appointmentRepo.On("GetByID", mock.Anything, "apt-1").Return(existing(), nil)

		_, err := service.Update(ctx, "intruder", "apt-1", services.AppointmentInput{Message: "hijack"})

		assert.True(t, apperrors.IsForbidden(err))
		appointmentRepo.AssertNotCalled(t, "Update")
	})

	t.Run("non-owner may update when the policy is relaxed", func(t *testing.T) {
		appointmentRepo, _, _, service := newAppointmentFixture(false)

		appointmentRepo.On("GetByID", mock.Anything, "apt-1").Return(existing(), nil)
		appointmentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Update(ctx, "someone-else", "apt-1", services.AppointmentInput{Message: "edited"})

		assert.NoError(t, err)
	})

	t.Run("blank fields leave stored values untouched", func(t *testing.T) {
		appointmentRepo, _, _, service := newAppointmentFixture(true)

		appointmentRepo.On("GetByID", mock.Anything, "apt-1").Return(existing(), nil)
		appointmentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		appointment, err := service.Update(ctx, "client-1", "apt-1", services.AppointmentInput{Message: "  "})

		assert.NoError(t, err)
		assert.Equal(t, "original", appointment.Message)
	})
}

func TestAppointmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner may delete, regardless of policy", func(t *testing.T) {
		appointmentRepo, _, _, service := newAppointmentFixture(false)

		appointmentRepo.On("GetByID", mock.Anything, "apt-1").Return(&entities.Appointment{
			ID: "apt-1", ClientID: "client-1",
		}, nil)

		err := service.Delete(ctx, "intruder", "apt-1")

		assert.True(t, apperrors.IsForbidden(err))
		appointmentRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("owner deletes successfully", func(t *testing.T) {
		appointmentRepo, _, _, service := newAppointmentFixture(true)

		appointmentRepo.On("GetByID", mock.Anything, "apt-1").Return(&entities.Appointment{
			ID: "apt-1", ClientID: "client-1",
		}, nil)
		appointmentRepo.On("Delete", mock.Anything, "apt-1").Return(nil)

		err := service.Delete(ctx, "client-1", "apt-1")

		assert.NoError(t, err)
		appointmentRepo.AssertExpectations(t)
	})
}

func TestAppointmentService_ListMineByStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown statuses", func(t *testing.T) {
		appointmentRepo, _, _, service := newAppointmentFixture(true)

		_, err := service.ListMineByStatus(ctx, "client-1", "snoozed")

		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
		appointmentRepo.AssertNotCalled(t, "ListByClient")
	})
}

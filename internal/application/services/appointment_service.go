package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	apperrors "github.com/medmarket/backend/pkg/errors"
)

// AppointmentInput carries the client-editable fields of an appointment.
// Nil time/price and blank message mean "leave as is" on update.
type AppointmentInput struct {
	Message         string
	AppointmentTime *time.Time
	DesiredPrice    *float64
}

// AppointmentService handles booking requests from clients to doctors.
// requireOwner controls whether updates are restricted to the requesting
// client; deletion is always ownership-checked.
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	adRepo          repositories.AdRepository
	userRepo        repositories.UserRepository
	requireOwner    bool
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	adRepo repositories.AdRepository,
	userRepo repositories.UserRepository,
	requireOwner bool,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		adRepo:          adRepo,
		userRepo:        userRepo,
		requireOwner:    requireOwner,
	}
}

// Create books a new appointment for the caller against an ad. The status
// is always pending regardless of the payload.
func (s *AppointmentService) Create(ctx context.Context, clientID, adID string, input AppointmentInput) (*entities.Appointment, error) {
	if _, err := s.userRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	if input.AppointmentTime == nil {
		return nil, apperrors.NewValidationError("appointment time is required")
	}

	now := time.Now().UTC()
	appointment := &entities.Appointment{
		ID:              uuid.New().String(),
		ClientID:        clientID,
		DoctorID:        ad.DoctorID,
		AdID:            ad.ID,
		Message:         strings.TrimSpace(input.Message),
		AppointmentTime: *input.AppointmentTime,
		Status:          entities.AppointmentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.DesiredPrice != nil {
		appointment.DesiredPrice = *input.DesiredPrice
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Update applies the non-empty fields of input to an appointment. When the
// ownership policy is active, only the requesting client may update.
func (s *AppointmentService) Update(ctx context.Context, clientID, appointmentID string, input AppointmentInput) (*entities.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if s.requireOwner && appointment.ClientID != clientID {
		return nil, apperrors.NewForbiddenError("you cannot edit this appointment")
	}

	if message := strings.TrimSpace(input.Message); message != "" {
		appointment.Message = message
	}
	if input.AppointmentTime != nil {
		appointment.AppointmentTime = *input.AppointmentTime
	}
	if input.DesiredPrice != nil {
		appointment.DesiredPrice = *input.DesiredPrice
	}
	appointment.UpdatedAt = time.Now().UTC()

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Delete removes an appointment; only the requesting client may delete.
func (s *AppointmentService) Delete(ctx context.Context, clientID, appointmentID string) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment.ClientID != clientID {
		return apperrors.NewForbiddenError("you cannot delete this appointment")
	}
	return s.appointmentRepo.Delete(ctx, appointment.ID)
}

// ListMine returns all of the caller's appointments.
func (s *AppointmentService) ListMine(ctx context.Context, clientID string) ([]*entities.Appointment, error) {
	return s.appointmentRepo.ListByClient(ctx, clientID, repositories.AppointmentFilter{})
}

// ListMineByStatus returns the caller's appointments in a given state.
func (s *AppointmentService) ListMineByStatus(ctx context.Context, clientID string, status entities.AppointmentStatus) ([]*entities.Appointment, error) {
	if !entities.ValidAppointmentStatus(status) {
		return nil, apperrors.NewValidationError("unknown appointment status")
	}
	return s.appointmentRepo.ListByClient(ctx, clientID, repositories.AppointmentFilter{Status: status})
}

package repositories

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
)

// AppointmentFilter narrows appointment listings. An empty status means
// no status constraint.
type AppointmentFilter struct {
	Status entities.AppointmentStatus
}

// AppointmentRepository defines the interface for appointment operations
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// Update updates an appointment
	Update(ctx context.Context, appointment *entities.Appointment) error

	// Delete deletes an appointment
	Delete(ctx context.Context, id string) error

	// ListByClient retrieves a client's appointments, optionally filtered
	ListByClient(ctx context.Context, clientID string, filter AppointmentFilter) ([]*entities.Appointment, error)
}

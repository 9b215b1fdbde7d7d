package repositories

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
)

// FeedbackRepository defines the interface for feedback operations.
type FeedbackRepository interface {
	// Create creates a new feedback record
	Create(ctx context.Context, feedback *entities.Feedback) error

	// GetByID retrieves a feedback record by ID
	GetByID(ctx context.Context, id string) (*entities.Feedback, error)

	// ListByDoctor retrieves all feedback received by a doctor
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Feedback, error)

	// ListByClient retrieves all feedback authored by a client
	ListByClient(ctx context.Context, clientID string) ([]*entities.Feedback, error)

	// Update updates a feedback record
	Update(ctx context.Context, feedback *entities.Feedback) error

	// Delete deletes a feedback record
	Delete(ctx context.Context, id string) error
}

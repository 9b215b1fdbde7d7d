package repositories

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
)

// DoctorSearchFilter carries the optional equality filters of a doctor
// search. Nil fields are skipped; all present fields are combined with
// logical AND on top of the fixed doctor-role constraint.
type DoctorSearchFilter struct {
	ID        *string
	FirstName *string
	LastName  *string
	Category  *string
	Rating    *float64
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Update updates a user
	Update(ctx context.Context, user *entities.User) error

	// Delete deletes a user
	Delete(ctx context.Context, id string) error

	// SearchDoctors retrieves doctors matching all present filters
	SearchDoctors(ctx context.Context, filter DoctorSearchFilter) ([]*entities.User, error)
}

// RatingRepository applies a recomputed doctor rating to the doctor row
// and every ad the doctor owns, atomically.
type RatingRepository interface {
	// ApplyDoctorRating writes rating to the doctor and all of their ads
	// in a single transaction and returns the affected ad IDs.
	ApplyDoctorRating(ctx context.Context, doctorID string, rating float64) ([]string, error)
}

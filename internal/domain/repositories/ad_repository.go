package repositories

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
)

// AdRepository defines the interface for ad listing operations
type AdRepository interface {
	// Create creates a new ad
	Create(ctx context.Context, ad *entities.Ad) error

	// GetByID retrieves an ad by ID
	GetByID(ctx context.Context, id string) (*entities.Ad, error)

	// ListByDoctor retrieves all ads owned by a doctor
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Ad, error)

	// ListByCategory retrieves all ads in a category
	ListByCategory(ctx context.Context, categoryID string) ([]*entities.Ad, error)

	// ListByCityAndRatingBetween retrieves ads in a city whose rating
	// falls within [minRating, maxRating]
	ListByCityAndRatingBetween(ctx context.Context, city string, minRating, maxRating float64) ([]*entities.Ad, error)

	// Update updates an ad
	Update(ctx context.Context, ad *entities.Ad) error

	// Delete deletes an ad
	Delete(ctx context.Context, id string) error
}

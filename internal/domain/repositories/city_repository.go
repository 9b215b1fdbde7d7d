package repositories

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
)

// CityRepository defines the interface for city reference data
type CityRepository interface {
	// GetByID retrieves a city by ID
	GetByID(ctx context.Context, id string) (*entities.City, error)

	// List retrieves all cities
	List(ctx context.Context) ([]*entities.City, error)
}

// CategoryRepository defines the interface for ad category reference data
type CategoryRepository interface {
	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*entities.Category, error)

	// List retrieves all categories
	List(ctx context.Context) ([]*entities.Category, error)
}

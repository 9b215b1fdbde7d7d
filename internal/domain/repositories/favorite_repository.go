package repositories

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
)

// FavoriteAdRepository defines the interface for favorite bookmarks
type FavoriteAdRepository interface {
	// Create creates a new favorite record
	Create(ctx context.Context, favorite *entities.FavoriteAd) error

	// GetByUserAndAd retrieves the favorite for a (user, ad) pair, or a
	// not-found error when none exists
	GetByUserAndAd(ctx context.Context, userID, adID string) (*entities.FavoriteAd, error)

	// ListByUser retrieves all favorites of a user
	ListByUser(ctx context.Context, userID string) ([]*entities.FavoriteAd, error)

	// Delete deletes a favorite record
	Delete(ctx context.Context, id string) error
}

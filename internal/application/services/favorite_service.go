package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	apperrors "github.com/medmarket/backend/pkg/errors"
)

// FavoriteService handles client bookmarks of ads. The (user, ad) pair is
// treated as a set: adding an existing pair is an idempotent no-op.
type FavoriteService struct {
	favoriteRepo repositories.FavoriteAdRepository
	adRepo       repositories.AdRepository
	userRepo     repositories.UserRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(
	favoriteRepo repositories.FavoriteAdRepository,
	adRepo repositories.AdRepository,
	userRepo repositories.UserRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		adRepo:       adRepo,
		userRepo:     userRepo,
	}
}

// Add bookmarks an ad for the caller. Returns the existing favorite when
// the pair is already bookmarked.
func (s *FavoriteService) Add(ctx context.Context, userID, adID string) (*entities.FavoriteAd, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
		return nil, err
	}

	if existing, err := s.favoriteRepo.GetByUserAndAd(ctx, userID, adID); err == nil {
		return existing, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	favorite := &entities.FavoriteAd{
		ID:        uuid.New().String(),
		UserID:    userID,
		AdID:      adID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// Remove deletes the caller's bookmark of an ad.
func (s *FavoriteService) Remove(ctx context.Context, userID, adID string) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
		return err
	}

	favorite, err := s.favoriteRepo.GetByUserAndAd(ctx, userID, adID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFoundError("ad is not in favorites")
		}
		return err
	}

	return s.favoriteRepo.Delete(ctx, favorite.ID)
}

// List returns the caller's favorites, each enriched with the bookmarked
// ad's short info and the owning doctor's display name.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]entities.FavoriteAdDetails, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]entities.FavoriteAdDetails, 0, len(favorites))
	for _, favorite := range favorites {
		ad, err := s.adRepo.GetByID(ctx, favorite.AdID)
		if err != nil {
			return nil, err
		}
		doctor, err := s.userRepo.GetByID(ctx, ad.DoctorID)
		if err != nil {
			return nil, err
		}
		details = append(details, entities.FavoriteAdDetails{
			ID: favorite.ID,
			Ad: entities.AdShortInfo{
				ID:         ad.ID,
				Title:      ad.Title,
				Price:      ad.Price,
				Rating:     ad.Rating,
				DoctorName: doctor.FullName(),
			},
		})
	}
	return details, nil
}

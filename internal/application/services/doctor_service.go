package services

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	apperrors "github.com/medmarket/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Recommendation bounds: only well-rated ads are surfaced.
const (
	recommendationMinRating = 3.0
	recommendationMaxRating = 5.0
	suggestLimit            = 10
)

// DoctorService handles doctor discovery: filtered search, profile lookup
// and ad browsing with doctor/category enrichment.
type DoctorService struct {
	userRepo     repositories.UserRepository
	adRepo       repositories.AdRepository
	cityRepo     repositories.CityRepository
	categoryRepo repositories.CategoryRepository
	searchRepo   repositories.DoctorSearchRepository
}

// NewDoctorService creates a new doctor discovery service. searchRepo is
// optional; without it free-text suggestions return no results.
func NewDoctorService(
	userRepo repositories.UserRepository,
	adRepo repositories.AdRepository,
	cityRepo repositories.CityRepository,
	categoryRepo repositories.CategoryRepository,
	searchRepo repositories.DoctorSearchRepository,
) *DoctorService {
	return &DoctorService{
		userRepo:     userRepo,
		adRepo:       adRepo,
		cityRepo:     cityRepo,
		categoryRepo: categoryRepo,
		searchRepo:   searchRepo,
	}
}

// SearchDoctors returns doctors matching every present filter. With no
// filters it returns all doctors.
func (s *DoctorService) SearchDoctors(ctx context.Context, filter repositories.DoctorSearchFilter) ([]*entities.User, error) {
	return s.userRepo.SearchDoctors(ctx, filter)
}

// SuggestDoctors returns doctors matching a free-text query against the
// search index.
func (s *DoctorService) SuggestDoctors(ctx context.Context, query string) ([]entities.DoctorSummary, error) {
	if s.searchRepo == nil {
		return []entities.DoctorSummary{}, nil
	}
	return s.searchRepo.Suggest(ctx, query, suggestLimit)
}

// GetDoctorProfile returns the full profile of a doctor.
func (s *DoctorService) GetDoctorProfile(ctx context.Context, doctorID string) (*entities.User, error) {
	doctor, err := s.userRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != entities.RoleDoctor {
		return nil, apperrors.NewNotFoundError("doctor not found")
	}
	return doctor, nil
}

// GetRecommendedAds returns well-rated ads in the caller's city, each
// enriched with the owning doctor and category name.
func (s *DoctorService) GetRecommendedAds(ctx context.Context, callerID string) ([]entities.AdDetails, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.CityID == nil {
		return nil, apperrors.NewValidationError("no city assigned to user")
	}

	city, err := s.cityRepo.GetByID(ctx, *caller.CityID)
	if err != nil {
		return nil, err
	}

	ads, err := s.adRepo.ListByCityAndRatingBetween(ctx, city.Name, recommendationMinRating, recommendationMaxRating)
	if err != nil {
		return nil, err
	}

	return s.enrichAll(ctx, ads)
}

// GetAdByID returns a single ad enriched with doctor and category info.
func (s *DoctorService) GetAdByID(ctx context.Context, adID string) (*entities.AdDetails, error) {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	details, err := s.enrich(ctx, ad)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// ListAdsByCategory returns all ads in a category with enrichment.
func (s *DoctorService) ListAdsByCategory(ctx context.Context, categoryID string) ([]entities.AdDetails, error) {
	ads, err := s.adRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, ads)
}

func (s *DoctorService) enrich(ctx context.Context, ad *entities.Ad) (entities.AdDetails, error) {
	doctor, err := s.userRepo.GetByID(ctx, ad.DoctorID)
	if err != nil {
		return entities.AdDetails{}, err
	}

	categoryName := ""
	if category, err := s.categoryRepo.GetByID(ctx, ad.CategoryID); err == nil {
		categoryName = category.Name
	} else {
		log.Warn().Err(err).Str("ad_id", ad.ID).Msg("failed to resolve ad category")
	}

	return entities.AdDetails{
		Ad:       *ad,
		Doctor:   entities.SummaryOf(doctor),
		Category: categoryName,
	}, nil
}

func (s *DoctorService) enrichAll(ctx context.Context, ads []*entities.Ad) ([]entities.AdDetails, error) {
	details := make([]entities.AdDetails, 0, len(ads))
	for _, ad := range ads {
		d, err := s.enrich(ctx, ad)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

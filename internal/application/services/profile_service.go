package services

import (
	"context"
	"strings"
	"time"

	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	apperrors "github.com/medmarket/backend/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// ProfileInput carries the user-editable profile fields. Blank fields are
// skipped, values are trimmed before being applied.
type ProfileInput struct {
	FirstName string
	LastName  string
	Password  string
}

// ProfileService handles the caller's own profile.
type ProfileService struct {
	userRepo repositories.UserRepository
	cityRepo repositories.CityRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(userRepo repositories.UserRepository, cityRepo repositories.CityRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		cityRepo: cityRepo,
	}
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*entities.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Update applies the non-blank fields of input to the caller's profile.
// A new password is bcrypt-hashed before storage.
func (s *ProfileService) Update(ctx context.Context, userID string, input ProfileInput) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if firstName := strings.TrimSpace(input.FirstName); firstName != "" {
		user.FirstName = firstName
	}
	if lastName := strings.TrimSpace(input.LastName); lastName != "" {
		user.LastName = lastName
	}
	if password := strings.TrimSpace(input.Password); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AssignCity associates the caller with a city.
func (s *ProfileService) AssignCity(ctx context.Context, userID, cityID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	city, err := s.cityRepo.GetByID(ctx, cityID)
	if err != nil {
		return err
	}

	user.CityID = &city.ID
	user.UpdatedAt = time.Now().UTC()
	return s.userRepo.Update(ctx, user)
}

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

// FeedbackInput carries the mutable fields of a feedback record. For
// partial updates a nil rating and a blank text both mean "leave as is".
type FeedbackInput struct {
	Rating *float64
	Text   string
}

// FeedbackService handles client feedback about doctors. Every mutation
// triggers a rating recomputation for the affected doctor.
type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	adRepo       repositories.AdRepository
	userRepo     repositories.UserRepository
	rating       *RatingService
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	adRepo repositories.AdRepository,
	userRepo repositories.UserRepository,
	rating *RatingService,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		adRepo:       adRepo,
		userRepo:     userRepo,
		rating:       rating,
	}
}

// ownsFeedback is the single ownership check used by both update and
// delete: the caller must be the authoring client.
func ownsFeedback(f *entities.Feedback, callerID string) bool {
	return f.ClientID == callerID
}

func validateFeedbackRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return apperrors.NewValidationError("rating must be between 0 and 5")
	}
	return nil
}

// Add creates feedback for the doctor who owns the given ad and recomputes
// that doctor's rating.
func (s *FeedbackService) Add(ctx context.Context, clientID, adID string, input FeedbackInput) (*entities.Feedback, error) {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	if input.Rating == nil {
		return nil, apperrors.NewValidationError("rating is required")
	}
	if err := validateFeedbackRating(*input.Rating); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	feedback := &entities.Feedback{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		DoctorID:  ad.DoctorID,
		Rating:    *input.Rating,
		Text:      strings.TrimSpace(input.Text),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	if _, err := s.rating.Recompute(ctx, ad.DoctorID); err != nil {
		return nil, err
	}

	return feedback, nil
}

// Update applies the non-empty fields of input to the caller's own
// feedback and recomputes the doctor's rating. Blank text and nil rating
// leave the stored values untouched.
func (s *FeedbackService) Update(ctx context.Context, clientID, feedbackID string, input FeedbackInput) (*entities.Feedback, error) {
	if _, err := s.userRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	feedback, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if !ownsFeedback(feedback, clientID) {
		return nil, apperrors.NewForbiddenError("you cannot edit this feedback")
	}

	if text := strings.TrimSpace(input.Text); text != "" {
		feedback.Text = text
	}
	if input.Rating != nil {
		if err := validateFeedbackRating(*input.Rating); err != nil {
			return nil, err
		}
		feedback.Rating = *input.Rating
	}
	feedback.UpdatedAt = time.Now().UTC()

	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}

	if _, err := s.rating.Recompute(ctx, feedback.DoctorID); err != nil {
		return nil, err
	}

	return feedback, nil
}

// Delete removes the caller's own feedback and recomputes the doctor's
// rating from the remaining set.
func (s *FeedbackService) Delete(ctx context.Context, clientID, feedbackID string) error {
	feedback, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return err
	}
	if !ownsFeedback(feedback, clientID) {
		return apperrors.NewForbiddenError("you cannot delete this feedback")
	}

	if err := s.feedbackRepo.Delete(ctx, feedback.ID); err != nil {
		return err
	}

	_, err = s.rating.Recompute(ctx, feedback.DoctorID)
	return err
}

// ListMine returns all feedback authored by the caller in store order.
func (s *FeedbackService) ListMine(ctx context.Context, clientID string) ([]*entities.Feedback, error) {
	if _, err := s.userRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByClient(ctx, clientID)
}

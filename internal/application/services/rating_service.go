package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/providers"
	"github.com/medmarket/backend/internal/domain/repositories"
	"github.com/medmarket/backend/internal/infrastructure/observability"
	"github.com/rs/zerolog/log"
)

// defaultRating is assigned to a doctor with no received feedback.
const defaultRating = 0.0

// RatingService keeps a doctor's aggregate rating, and the denormalized
// rating on every ad the doctor owns, consistent with the doctor's current
// feedback set. It is invoked after every feedback mutation.
type RatingService struct {
	feedbackRepo repositories.FeedbackRepository
	ratingRepo   repositories.RatingRepository
	userRepo     repositories.UserRepository
	searchRepo   repositories.DoctorSearchRepository
	eventBus     providers.EventBus
	metrics      *observability.Metrics
}

// NewRatingService creates a new rating service. searchRepo and eventBus
// are optional; when nil, re-indexing and event publishing are skipped.
func NewRatingService(
	feedbackRepo repositories.FeedbackRepository,
	ratingRepo repositories.RatingRepository,
	userRepo repositories.UserRepository,
	searchRepo repositories.DoctorSearchRepository,
	eventBus providers.EventBus,
) *RatingService {
	return &RatingService{
		feedbackRepo: feedbackRepo,
		ratingRepo:   ratingRepo,
		userRepo:     userRepo,
		searchRepo:   searchRepo,
		eventBus:     eventBus,
	}
}

// WithMetrics attaches application metrics to the service. Recomputations
// and event publishes are counted when set.
func (s *RatingService) WithMetrics(metrics *observability.Metrics) *RatingService {
	s.metrics = metrics
	return s
}

// Recompute recalculates the doctor's rating as the arithmetic mean of all
// received feedback (defaultRating when none) and fans the value out to the
// doctor row and every owned ad in one transaction. After the write
// commits, the doctor document is re-indexed and an AdEvent is published;
// both are best effort and never fail the operation.
func (s *RatingService) Recompute(ctx context.Context, doctorID string) (float64, error) {
	feedbacks, err := s.feedbackRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	rating := defaultRating
	if len(feedbacks) > 0 {
		sum := 0.0
		for _, f := range feedbacks {
			sum += f.Rating
		}
		rating = sum / float64(len(feedbacks))
	}

	adIDs, err := s.ratingRepo.ApplyDoctorRating(ctx, doctorID, rating)
	if err != nil {
		return 0, err
	}

	observability.RecordRatingRecompute(ctx, s.metrics, doctorID, len(adIDs))

	s.reindexDoctor(ctx, doctorID)
	s.publishRatingUpdate(ctx, doctorID, rating, adIDs)

	return rating, nil
}

func (s *RatingService) reindexDoctor(ctx context.Context, doctorID string) {
	if s.searchRepo == nil {
		return
	}

	doctor, err := s.userRepo.GetByID(ctx, doctorID)
	if err != nil {
		log.Warn().Err(err).Str("doctor_id", doctorID).Msg("failed to load doctor for re-indexing")
		return
	}
	if err := s.searchRepo.Index(ctx, doctor); err != nil {
		log.Warn().Err(err).Str("doctor_id", doctorID).Msg("failed to re-index doctor")
	}
}

func (s *RatingService) publishRatingUpdate(ctx context.Context, doctorID string, rating float64, adIDs []string) {
	if s.eventBus == nil {
		return
	}

	event := &entities.AdEvent{
		ID:        uuid.New().String(),
		EventType: entities.AdEventRatingUpdated,
		DoctorID:  doctorID,
		Rating:    rating,
		AdIDs:     adIDs,
		Timestamp: time.Now().UTC(),
	}

	for _, channel := range []string{providers.EventChannelAdUpdates, providers.DoctorChannel(doctorID)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to publish rating update event")
			continue
		}
		observability.RecordEventPublish(ctx, s.metrics, channel)
	}
}

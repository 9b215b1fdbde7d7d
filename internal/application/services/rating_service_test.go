package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/medmarket/backend/internal/application/services"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/providers"
	"github.com/medmarket/backend/internal/infrastructure/observability"
)

// counterValue sums the data points of a named int64 counter.
func counterValue(t *testing.T, rm *metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestRatingService_Recompute(t *testing.T) {
	ctx := context.Background()

	t.Run("computes the mean of all feedback", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		ratingRepo := new(MockRatingRepository)
		userRepo := new(MockUserRepository)
		service := services.NewRatingService(feedbackRepo, ratingRepo, userRepo, nil, nil)

		feedbackRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]*entities.Feedback{
			{ID: "f-1", DoctorID: "doc-1", Rating: 4},
			{ID: "f-2", DoctorID: "doc-1", Rating: 2},
		}, nil)
		ratingRepo.On("ApplyDoctorRating", mock.Anything, "doc-1", 3.0).Return([]string{"ad-1", "ad-2"}, nil)

		rating, err := service.Recompute(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, 3.0, rating)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("falls back to the default when no feedback remains", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		ratingRepo := new(MockRatingRepository)
		userRepo := new(MockUserRepository)
		service := services.NewRatingService(feedbackRepo, ratingRepo, userRepo, nil, nil)

		feedbackRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]*entities.Feedback{}, nil)
		ratingRepo.On("ApplyDoctorRating", mock.Anything, "doc-1", 0.0).Return([]string{}, nil)

		rating, err := service.Recompute(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, 0.0, rating)
	})

	t.Run("publishes the new rating on global and doctor channels", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		ratingRepo := new(MockRatingRepository)
		userRepo := new(MockUserRepository)
		eventBus := new(MockEventBus)
		service := services.NewRatingService(feedbackRepo, ratingRepo, userRepo, nil, eventBus)

		feedbackRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]*entities.Feedback{
			{ID: "f-1", DoctorID: "doc-1", Rating: 5},
		}, nil)
		ratingRepo.On("ApplyDoctorRating", mock.Anything, "doc-1", 5.0).Return([]string{"ad-1"}, nil)

		validEvent := mock.MatchedBy(func(e *entities.AdEvent) bool {
			return e.DoctorID == "doc-1" && e.Rating == 5.0 &&
				e.EventType == entities.AdEventRatingUpdated &&
				len(e.AdIDs) == 1 && e.AdIDs[0] == "ad-1"
		})
		eventBus.On("Publish", mock.Anything, providers.EventChannelAdUpdates, validEvent).Return(nil)
		eventBus.On("Publish", mock.Anything, providers.DoctorChannel("doc-1"), validEvent).Return(nil)

		rating, err := service.Recompute(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, 5.0, rating)
		eventBus.AssertExpectations(t)
	})

	t.Run("re-indexes the doctor after the write commits", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		ratingRepo := new(MockRatingRepository)
		userRepo := new(MockUserRepository)
		searchRepo := new(MockDoctorSearchRepository)
		service := services.NewRatingService(feedbackRepo, ratingRepo, userRepo, searchRepo, nil)

		doctor := &entities.User{ID: "doc-1", Role: entities.RoleDoctor, Rating: 4.5}
		feedbackRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]*entities.Feedback{
			{ID: "f-1", DoctorID: "doc-1", Rating: 4.5},
		}, nil)
		ratingRepo.On("ApplyDoctorRating", mock.Anything, "doc-1", 4.5).Return([]string{}, nil)
		userRepo.On("GetByID", mock.Anything, "doc-1").Return(doctor, nil)
		searchRepo.On("Index", mock.Anything, doctor).Return(nil)

		_, err := service.Recompute(ctx, "doc-1")

		assert.NoError(t, err)
		searchRepo.AssertExpectations(t)
	})

	t.Run("index failures do not fail the recomputation", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		ratingRepo := new(MockRatingRepository)
		userRepo := new(MockUserRepository)
		searchRepo := new(MockDoctorSearchRepository)
		service := services.NewRatingService(feedbackRepo, ratingRepo, userRepo, searchRepo, nil)

		feedbackRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]*entities.Feedback{
			{ID: "f-1", DoctorID: "doc-1", Rating: 3},
		}, nil)
		ratingRepo.On("ApplyDoctorRating", mock.Anything, "doc-1", 3.0).Return([]string{"ad-1"}, nil)
		userRepo.On("GetByID", mock.Anything, "doc-1").Return(&entities.User{ID: "doc-1"}, nil)
		searchRepo.On("Index", mock.Anything, mock.Anything).Return(errors.New("typesense down"))

		rating, err := service.Recompute(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, 3.0, rating)
	})

	t.Run("counts recomputations and publishes when metrics are attached", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
		metrics, err := observability.InitMetrics()
		require.NoError(t, err)

		feedbackRepo := new(MockFeedbackRepository)
		ratingRepo := new(MockRatingRepository)
		userRepo := new(MockUserRepository)
		eventBus := new(MockEventBus)
		service := services.NewRatingService(feedbackRepo, ratingRepo, userRepo, nil, eventBus).
			WithMetrics(metrics)

		feedbackRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]*entities.Feedback{
			{ID: "f-1", DoctorID: "doc-1", Rating: 4},
		}, nil)
		ratingRepo.On("ApplyDoctorRating", mock.Anything, "doc-1", 4.0).Return([]string{"ad-1"}, nil)
		eventBus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err = service.Recompute(ctx, "doc-1")
		require.NoError(t, err)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))

		assert.Equal(t, int64(1), counterValue(t, &rm, "rating.recompute.count"))
		assert.Equal(t, int64(2), counterValue(t, &rm, "events.publish.count"))
	})

	t.Run("fails when the fanout write fails", func(t *testing.T) {
		feedbackRepo := new(MockFeedbackRepository)
		ratingRepo := new(MockRatingRepository)
		userRepo := new(MockUserRepository)
		service := services.NewRatingService(feedbackRepo, ratingRepo, userRepo, nil, nil)

		feedbackRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]*entities.Feedback{
			{ID: "f-1", DoctorID: "doc-1", Rating: 3},
		}, nil)
		ratingRepo.On("ApplyDoctorRating", mock.Anything, "doc-1", 3.0).Return(nil, errors.New("tx failed"))

		_, err := service.Recompute(ctx, "doc-1")

		assert.Error(t, err)
	})
}

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medmarket/backend/internal/api/handlers"
	"github.com/medmarket/backend/internal/api/middleware"
	"github.com/medmarket/backend/internal/application/services"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	apperrors "github.com/medmarket/backend/pkg/errors"
)

// In-memory stubs backing a real feedback service. Handler tests exercise
// the full request path down to the repository boundary.

type stubFeedbackRepo struct {
	feedback map[string]*entities.Feedback
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{feedback: make(map[string]*entities.Feedback)}
}

func (s *stubFeedbackRepo) Create(_ context.Context, f *entities.Feedback) error {
	s.feedback[f.ID] = f
	return nil
}

func (s *stubFeedbackRepo) GetByID(_ context.Context, id string) (*entities.Feedback, error) {
	f, ok := s.feedback[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("feedback not found")
	}
	return f, nil
}

func (s *stubFeedbackRepo) ListByDoctor(_ context.Context, doctorID string) ([]*entities.Feedback, error) {
	var out []*entities.Feedback
	for _, f := range s.feedback {
		if f.DoctorID == doctorID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFeedbackRepo) ListByClient(_ context.Context, clientID string) ([]*entities.Feedback, error) {
	var out []*entities.Feedback
	for _, f := range s.feedback {
		if f.ClientID == clientID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFeedbackRepo) Update(_ context.Context, f *entities.Feedback) error {
	s.feedback[f.ID] = f
	return nil
}

func (s *stubFeedbackRepo) Delete(_ context.Context, id string) error {
	delete(s.feedback, id)
	return nil
}

type stubAdRepo struct {
	ads map[string]*entities.Ad
}

func (s *stubAdRepo) Create(_ context.Context, ad *entities.Ad) error {
	s.ads[ad.ID] = ad
	return nil
}

func (s *stubAdRepo) GetByID(_ context.Context, id string) (*entities.Ad, error) {
	ad, ok := s.ads[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("ad not found")
	}
	return ad, nil
}

func (s *stubAdRepo) ListByDoctor(_ context.Context, _ string) ([]*entities.Ad, error) {
	return nil, nil
}

func (s *stubAdRepo) ListByCategory(_ context.Context, _ string) ([]*entities.Ad, error) {
	return nil, nil
}

func (s *stubAdRepo) ListByCityAndRatingBetween(_ context.Context, _ string, _, _ float64) ([]*entities.Ad, error) {
	return nil, nil
}

func (s *stubAdRepo) Update(_ context.Context, ad *entities.Ad) error {
	s.ads[ad.ID] = ad
	return nil
}

func (s *stubAdRepo) Delete(_ context.Context, id string) error {
	delete(s.ads, id)
	return nil
}

type stubUserRepo struct {
	users map[string]*entities.User
}

func (s *stubUserRepo) Create(_ context.Context, u *entities.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*entities.User, error) {
	return nil, apperrors.NewNotFoundError("user not found")
}

func (s *stubUserRepo) Update(_ context.Context, u *entities.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(s.users, id)
	return nil
}

func (s *stubUserRepo) SearchDoctors(_ context.Context, _ repositories.DoctorSearchFilter) ([]*entities.User, error) {
	return nil, nil
}

type stubRatingRepo struct {
	applied map[string]float64
}

func (s *stubRatingRepo) ApplyDoctorRating(_ context.Context, doctorID string, rating float64) ([]string, error) {
	if s.applied == nil {
		s.applied = make(map[string]float64)
	}
	s.applied[doctorID] = rating
	return []string{"ad-1"}, nil
}

type feedbackHandlerFixture struct {
	handler    *handlers.FeedbackHandler
	feedback   *stubFeedbackRepo
	ratingRepo *stubRatingRepo
}

func newFeedbackHandlerFixture() *feedbackHandlerFixture {
	feedbackRepo := newStubFeedbackRepo()
	adRepo := &stubAdRepo{ads: map[string]*entities.Ad{
		"ad-1": {ID: "ad-1", DoctorID: "doc-1", Title: "Consultation"},
	}}
	userRepo := &stubUserRepo{users: map[string]*entities.User{
		"client-1": {ID: "client-1", Role: entities.RoleClient},
		"doc-1":    {ID: "doc-1", Role: entities.RoleDoctor},
	}}
	ratingRepo := &stubRatingRepo{}

	rating := services.NewRatingService(feedbackRepo, ratingRepo, userRepo, nil, nil)
	service := services.NewFeedbackService(feedbackRepo, adRepo, userRepo, rating)

	return &feedbackHandlerFixture{
		handler:    handlers.NewFeedbackHandler(service),
		feedback:   feedbackRepo,
		ratingRepo: ratingRepo,
	}
}

func authenticatedRequest(method, target, body, callerID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if callerID != "" {
		ctx := middleware.WithCaller(req.Context(), callerID, entities.RoleClient)
		req = req.WithContext(ctx)
	}
	return req
}

func TestFeedbackHandler_AddFeedback(t *testing.T) {
	t.Run("creates feedback and recomputes the rating", func(t *testing.T) {
		fixture := newFeedbackHandlerFixture()

		req := authenticatedRequest("POST", "/api/ads/ad-1/feedback",
			`{"rating":4,"text":"thorough and kind"}`, "client-1")
		req.SetPathValue("id", "ad-1")
		w := httptest.NewRecorder()

		fixture.handler.AddFeedback(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created entities.Feedback
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, "client-1", created.ClientID)
		assert.Equal(t, "doc-1", created.DoctorID)
		assert.Equal(t, 4.0, created.Rating)
		assert.Equal(t, 4.0, fixture.ratingRepo.applied["doc-1"])
	})

	t.Run("rejects unauthenticated requests", func(t *testing.T) {
		fixture := newFeedbackHandlerFixture()

		req := authenticatedRequest("POST", "/api/ads/ad-1/feedback",
			`{"rating":4}`, "")
		req.SetPathValue("id", "ad-1")
		w := httptest.NewRecorder()

		fixture.handler.AddFeedback(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		fixture := newFeedbackHandlerFixture()

		req := authenticatedRequest("POST", "/api/ads/ad-1/feedback",
			`{"rating":`, "client-1")
		req.SetPathValue("id", "ad-1")
		w := httptest.NewRecorder()

		fixture.handler.AddFeedback(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown ad maps to 404", func(t *testing.T) {
		fixture := newFeedbackHandlerFixture()

		req := authenticatedRequest("POST", "/api/ads/ghost/feedback",
			`{"rating":4}`, "client-1")
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		fixture.handler.AddFeedback(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("out of range rating maps to 400", func(t *testing.T) {
		fixture := newFeedbackHandlerFixture()

		req := authenticatedRequest("POST", "/api/ads/ad-1/feedback",
			`{"rating":5.5}`, "client-1")
		req.SetPathValue("id", "ad-1")
		w := httptest.NewRecorder()

		fixture.handler.AddFeedback(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFeedbackHandler_UpdateFeedback(t *testing.T) {
	t.Run("another client's feedback maps to 403", func(t *testing.T) {
		fixture := newFeedbackHandlerFixture()
		fixture.feedback.feedback["fb-1"] = &entities.Feedback{
			ID: "fb-1", ClientID: "someone-else", DoctorID: "doc-1", Rating: 5,
		}

		req := authenticatedRequest("PUT", "/api/feedback/fb-1",
			`{"rating":1}`, "client-1")
		req.SetPathValue("id", "fb-1")
		w := httptest.NewRecorder()

		fixture.handler.UpdateFeedback(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFeedbackHandler_DeleteFeedback(t *testing.T) {
	t.Run("owner deletes and the rating falls back to default", func(t *testing.T) {
		fixture := newFeedbackHandlerFixture()
		fixture.feedback.feedback["fb-1"] = &entities.Feedback{
			ID: "fb-1", ClientID: "client-1", DoctorID: "doc-1", Rating: 5,
		}

		req := authenticatedRequest("DELETE", "/api/feedback/fb-1", "", "client-1")
		req.SetPathValue("id", "fb-1")
		w := httptest.NewRecorder()

		fixture.handler.DeleteFeedback(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, fixture.feedback.feedback)
		assert.Equal(t, 0.0, fixture.ratingRepo.applied["doc-1"])
	})
}

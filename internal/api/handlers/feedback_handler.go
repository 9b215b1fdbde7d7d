package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medmarket/backend/internal/api/middleware"
	"github.com/medmarket/backend/internal/application/services"
)

// FeedbackHandler handles feedback HTTP requests
type FeedbackHandler struct {
	service *services.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type feedbackRequest struct {
	Rating *float64 `json:"rating"`
	Text   string   `json:"text"`
}

// AddFeedback handles POST /api/ads/{id}/feedback
func (h *FeedbackHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	adID := r.PathValue("id")
	if adID == "" {
		respondWithError(w, http.StatusBadRequest, "ad ID is required")
		return
	}

	var payload feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	feedback, err := h.service.Add(r.Context(), callerID, adID, services.FeedbackInput{
		Rating: payload.Rating,
		Text:   payload.Text,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, feedback)
}

// UpdateFeedback handles PUT /api/feedback/{id}
func (h *FeedbackHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	feedbackID := r.PathValue("id")
	if feedbackID == "" {
		respondWithError(w, http.StatusBadRequest, "feedback ID is required")
		return
	}

	var payload feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	feedback, err := h.service.Update(r.Context(), callerID, feedbackID, services.FeedbackInput{
		Rating: payload.Rating,
		Text:   payload.Text,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, feedback)
}

// DeleteFeedback handles DELETE /api/feedback/{id}
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	feedbackID := r.PathValue("id")
	if feedbackID == "" {
		respondWithError(w, http.StatusBadRequest, "feedback ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), callerID, feedbackID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListMyFeedback handles GET /api/feedback/my
func (h *FeedbackHandler) ListMyFeedback(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	feedback, err := h.service.ListMine(r.Context(), callerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": feedback,
		"count":    len(feedback),
	})
}

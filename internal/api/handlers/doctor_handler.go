package handlers

import (
	"net/http"
	"strconv"

	"github.com/medmarket/backend/internal/api/middleware"
	"github.com/medmarket/backend/internal/application/services"
	"github.com/medmarket/backend/internal/domain/repositories"
)

// DoctorHandler handles doctor discovery HTTP requests
type DoctorHandler struct {
	service *services.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// SearchDoctors handles GET /api/doctors
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.DoctorSearchFilter{}
	if v := query.Get("id"); v != "" {
		filter.ID = &v
	}
	if v := query.Get("first_name"); v != "" {
		filter.FirstName = &v
	}
	if v := query.Get("last_name"); v != "" {
		filter.LastName = &v
	}
	if v := query.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := query.Get("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "rating must be a number")
			return
		}
		filter.Rating = &rating
	}

	doctors, err := h.service.SearchDoctors(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// SuggestDoctors handles GET /api/doctors/suggest
func (h *DoctorHandler) SuggestDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	doctors, err := h.service.SuggestDoctors(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")
	if doctorID == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	doctor, err := h.service.GetDoctorProfile(r.Context(), doctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// GetRecommendedAds handles GET /api/ads/recommendations
func (h *DoctorHandler) GetRecommendedAds(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ads, err := h.service.GetRecommendedAds(r.Context(), callerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ads":   ads,
		"count": len(ads),
	})
}

// GetAd handles GET /api/ads/{id}
func (h *DoctorHandler) GetAd(w http.ResponseWriter, r *http.Request) {
	adID := r.PathValue("id")
	if adID == "" {
		respondWithError(w, http.StatusBadRequest, "ad ID is required")
		return
	}

	ad, err := h.service.GetAdByID(r.Context(), adID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ad)
}

// ListAdsByCategory handles GET /api/categories/{id}/ads
func (h *DoctorHandler) ListAdsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		respondWithError(w, http.StatusBadRequest, "category ID is required")
		return
	}

	ads, err := h.service.ListAdsByCategory(r.Context(), categoryID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ads":   ads,
		"count": len(ads),
	})
}

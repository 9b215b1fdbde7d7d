package handlers

import (
	"net/http"

	"github.com/medmarket/backend/internal/api/middleware"
	"github.com/medmarket/backend/internal/application/services"
)

// FavoriteHandler handles favorite-ad HTTP requests
type FavoriteHandler struct {
	service *services.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// AddFavorite handles POST /api/favorites/{adId}
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	adID := r.PathValue("adId")
	if adID == "" {
		respondWithError(w, http.StatusBadRequest, "ad ID is required")
		return
	}

	favorite, err := h.service.Add(r.Context(), callerID, adID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, favorite)
}

// RemoveFavorite handles DELETE /api/favorites/{adId}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	adID := r.PathValue("adId")
	if adID == "" {
		respondWithError(w, http.StatusBadRequest, "ad ID is required")
		return
	}

	if err := h.service.Remove(r.Context(), callerID, adID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListFavorites handles GET /api/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	favorites, err := h.service.List(r.Context(), callerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

package routes

import (
	"net/http"

	"github.com/medmarket/backend/internal/api/handlers"
	"github.com/medmarket/backend/internal/api/middleware"
	"github.com/medmarket/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	profileHandler     *handlers.ProfileHandler
	doctorHandler      *handlers.DoctorHandler
	feedbackHandler    *handlers.FeedbackHandler
	favoriteHandler    *handlers.FavoriteHandler
	appointmentHandler *handlers.AppointmentHandler
	sseHandler         *handlers.SSEHandler

	auth    *middleware.AuthMiddleware
	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	profileHandler *handlers.ProfileHandler,
	doctorHandler *handlers.DoctorHandler,
	feedbackHandler *handlers.FeedbackHandler,
	favoriteHandler *handlers.FavoriteHandler,
	appointmentHandler *handlers.AppointmentHandler,
	sseHandler *handlers.SSEHandler,
	auth *middleware.AuthMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		profileHandler:     profileHandler,
		doctorHandler:      doctorHandler,
		feedbackHandler:    feedbackHandler,
		favoriteHandler:    favoriteHandler,
		appointmentHandler: appointmentHandler,
		sseHandler:         sseHandler,
		auth:               auth,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Profile endpoints
	r.mux.HandleFunc("GET /api/profile", r.profileHandler.GetProfile)
	r.mux.HandleFunc("PUT /api/profile", r.profileHandler.UpdateProfile)
	r.mux.HandleFunc("PUT /api/profile/city/{id}", r.profileHandler.AssignCity)

	// Doctor discovery endpoints
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.SearchDoctors)
	r.mux.HandleFunc("GET /api/doctors/suggest", r.doctorHandler.SuggestDoctors)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.GetDoctor)

	// Ad endpoints
	r.mux.HandleFunc("GET /api/ads/recommendations", r.doctorHandler.GetRecommendedAds)
	r.mux.HandleFunc("GET /api/ads/{id}", r.doctorHandler.GetAd)
	r.mux.HandleFunc("GET /api/categories/{id}/ads", r.doctorHandler.ListAdsByCategory)

	// Feedback endpoints
	r.mux.HandleFunc("POST /api/ads/{id}/feedback", r.feedbackHandler.AddFeedback)
	r.mux.HandleFunc("GET /api/feedback/my", r.feedbackHandler.ListMyFeedback)
	r.mux.HandleFunc("PUT /api/feedback/{id}", r.feedbackHandler.UpdateFeedback)
	r.mux.HandleFunc("DELETE /api/feedback/{id}", r.feedbackHandler.DeleteFeedback)

	// Favorite endpoints
	r.mux.HandleFunc("GET /api/favorites", r.favoriteHandler.ListFavorites)
	r.mux.HandleFunc("POST /api/favorites/{adId}", r.favoriteHandler.AddFavorite)
	r.mux.HandleFunc("DELETE /api/favorites/{adId}", r.favoriteHandler.RemoveFavorite)

	// Appointment endpoints
	r.mux.HandleFunc("POST /api/ads/{id}/appointments", r.appointmentHandler.CreateAppointment)
	r.mux.HandleFunc("GET /api/appointments/my", r.appointmentHandler.ListMyAppointments)
	r.mux.HandleFunc("PUT /api/appointments/{id}", r.appointmentHandler.UpdateAppointment)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.appointmentHandler.DeleteAppointment)

	// Real-time rating update streams
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/doctors/{id}", r.sseHandler.StreamDoctorUpdates)
		r.mux.HandleFunc("GET /api/stream/ads", r.sseHandler.StreamAdUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.auth != nil {
		handler = r.auth.Handler(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/medmarket/backend/internal/api/middleware"
	"github.com/medmarket/backend/internal/application/services"
	"github.com/medmarket/backend/internal/domain/entities"
)

// AppointmentHandler handles appointment HTTP requests
type AppointmentHandler struct {
	service *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type appointmentRequest struct {
	Message         string     `json:"message"`
	AppointmentTime *time.Time `json:"appointment_time"`
	DesiredPrice    *float64   `json:"desired_price"`
}

func (p appointmentRequest) toInput() services.AppointmentInput {
	return services.AppointmentInput{
		Message:         p.Message,
		AppointmentTime: p.AppointmentTime,
		DesiredPrice:    p.DesiredPrice,
	}
}

// CreateAppointment handles POST /api/ads/{id}/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
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

	var payload appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.Create(r.Context(), callerID, adID, payload.toInput())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// UpdateAppointment handles PUT /api/appointments/{id}
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	appointmentID := r.PathValue("id")
	if appointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	var payload appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.Update(r.Context(), callerID, appointmentID, payload.toInput())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// DeleteAppointment handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	appointmentID := r.PathValue("id")
	if appointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), callerID, appointmentID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListMyAppointments handles GET /api/appointments/my
func (h *AppointmentHandler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())
	if callerID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var appointments []*entities.Appointment
	var err error

	if status := r.URL.Query().Get("status"); status != "" {
		appointments, err = h.service.ListMineByStatus(r.Context(), callerID, entities.AppointmentStatus(status))
	} else {
		appointments, err = h.service.ListMine(r.Context(), callerID)
	}
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

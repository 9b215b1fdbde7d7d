package entities

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment request
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// ValidAppointmentStatus reports whether s is a known lifecycle state.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusApproved, AppointmentStatusRejected,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// Appointment is a client's request to book a doctor through a specific ad.
// New appointments always start in the pending state.
type Appointment struct {
	ID              string            `json:"id" db:"id"`
	ClientID        string            `json:"client_id" db:"client_id"`
	DoctorID        string            `json:"doctor_id" db:"doctor_id"`
	AdID            string            `json:"ad_id" db:"ad_id"`
	Message         string            `json:"message" db:"message"`
	AppointmentTime time.Time         `json:"appointment_time" db:"appointment_time"`
	DesiredPrice    float64           `json:"desired_price" db:"desired_price"`
	Status          AppointmentStatus `json:"status" db:"status"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

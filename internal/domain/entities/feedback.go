package entities

import "time"

// Feedback is a review left by a client about a doctor. The client/doctor
// linkage is immutable after creation; only rating and text may change,
// and only by the authoring client.
type Feedback struct {
	ID        string    `json:"id" db:"id"`
	ClientID  string    `json:"client_id" db:"client_id"`
	DoctorID  string    `json:"doctor_id" db:"doctor_id"`
	Rating    float64   `json:"rating" db:"rating"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

package entities

import (
	"time"
)

// Role identifies what a user can do in the marketplace
type Role string

const (
	RoleClient Role = "client"
	RoleDoctor Role = "doctor"
	RoleAdmin  Role = "admin"
)

// User represents a registered user. Doctors additionally carry an
// aggregate rating derived from the feedback they have received; the value
// is never written directly, only through rating recomputation.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Role         Role      `json:"role" db:"role"`
	Rating       float64   `json:"rating" db:"rating"`
	CityID       *string   `json:"city_id,omitempty" db:"city_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// DoctorSummary is the short doctor representation attached to ad listings.
type DoctorSummary struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Rating    float64 `json:"rating"`
}

// SummaryOf builds a DoctorSummary from a user.
func SummaryOf(u *User) DoctorSummary {
	return DoctorSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Rating:    u.Rating,
	}
}

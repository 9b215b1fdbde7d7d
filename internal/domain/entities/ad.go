package entities

import (
	"time"
)

// Ad is a service listing published by a doctor. The rating field is a
// denormalized copy of the owning doctor's aggregate rating and is fanned
// out on every feedback change.
type Ad struct {
	ID          string    `json:"id" db:"id"`
	DoctorID    string    `json:"doctor_id" db:"doctor_id"`
	CategoryID  string    `json:"category_id" db:"category_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	City        string    `json:"city" db:"city"`
	Rating      float64   `json:"rating" db:"rating"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// AdDetails is an ad enriched with its owning doctor and category name.
type AdDetails struct {
	Ad       Ad            `json:"ad"`
	Doctor   DoctorSummary `json:"doctor"`
	Category string        `json:"category"`
}

// AdShortInfo is the compact ad representation used in favorites listings.
type AdShortInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Rating     float64 `json:"rating"`
	DoctorName string  `json:"doctor_name"`
}

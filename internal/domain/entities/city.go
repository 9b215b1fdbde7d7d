package entities

// City is a reference entity a user may be associated with.
type City struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Category is a reference entity ads are classified under.
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

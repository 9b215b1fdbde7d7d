package entities

import "time"

// FavoriteAd is a client's bookmark of an ad. At most one favorite exists
// per (user, ad) pair.
type FavoriteAd struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	AdID      string    `json:"ad_id" db:"ad_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FavoriteAdDetails is a favorite enriched with the bookmarked ad's short
// info, including the owning doctor's display name.
type FavoriteAdDetails struct {
	ID string      `json:"id"`
	Ad AdShortInfo `json:"ad"`
}

package entities

import "time"

// AdEventType identifies what happened to a doctor's listings
type AdEventType string

const (
	// AdEventRatingUpdated is published after a rating recomputation has
	// fanned out to a doctor's ads.
	AdEventRatingUpdated AdEventType = "rating_updated"
)

// AdEvent is the payload published on the event bus when a doctor's
// listings change. Consumers include the SSE stream and the cache
// invalidation service.
type AdEvent struct {
	ID        string      `json:"id"`
	EventType AdEventType `json:"event_type"`
	DoctorID  string      `json:"doctor_id"`
	Rating    float64     `json:"rating"`
	AdIDs     []string    `json:"ad_ids,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

package providers

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to ad events
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.AdEvent) error

	// Subscribe subscribes to events on a channel; the returned channel is
	// closed when ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.AdEvent, error)

	// Unsubscribe tears down a channel subscription
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelAdUpdates is the channel carrying every ad update
	EventChannelAdUpdates = "ads:updates"

	// EventChannelDoctorPrefix is the prefix for doctor-specific channels
	EventChannelDoctorPrefix = "doctor:"
)

// DoctorChannel returns the channel name for a specific doctor's updates.
func DoctorChannel(doctorID string) string {
	return EventChannelDoctorPrefix + doctorID
}

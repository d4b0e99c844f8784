package providers

import (
	"context"

	"github.com/bebektakip/carefinder/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to search events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.SearchEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel constants
const (
	// EventChannelSearchCompleted carries one event per completed provider search
	EventChannelSearchCompleted = "care:search:completed"
)

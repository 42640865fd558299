// internal/infrastructure/messaging/messaging.go
package messaging

import "context"

// Publisher publishes events to a message broker
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
	Close() error
}

// Noop discards every event. Used when no broker is configured.
type Noop struct{}

// PublishEvent implements Publisher
func (Noop) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	return nil
}

// Close implements Publisher
func (Noop) Close() error { return nil }

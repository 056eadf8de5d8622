// Package eventbus defines the bus contract that decouples the bid,
// registration, and lifecycle flows from their side effects.
package eventbus

import (
	"context"

	"github.com/mazadksa/mazad/pkg/domain/common"
)

// HandlerFunc processes one event.
type HandlerFunc func(ctx context.Context, event common.Event) error

// Bus dispatches events to subscribed handlers. Implementations live in
// infra/eventbus (memory, Redis, Kafka).
type Bus interface {
	// Register subscribes a handler to an event type.
	Register(eventType string, handler HandlerFunc)

	// Publish dispatches an event to all handlers of its type.
	Publish(ctx context.Context, event common.Event) error
}

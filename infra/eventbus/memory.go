// Package eventbus provides the bus implementations: in-memory for a
// single process, Redis Streams and Kafka for distributed deployments.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mazadksa/mazad/pkg/domain/common"
	"github.com/mazadksa/mazad/pkg/eventbus"
)

// MemoryEventBus is a synchronous in-memory bus. Handlers run on the
// publisher's goroutine, so tests observe side effects immediately.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []common.Event
}

// NewWithMemory creates a synchronous in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	return &MemoryEventBus{
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("bus", "memory"),
		published: make([]common.Event, 0),
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish dispatches the event to all registered handlers for its type.
func (b *MemoryEventBus) Publish(ctx context.Context, event common.Event) error {
	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc{}, b.handlers[event.Type()]...)
	b.mu.RUnlock()

	b.mu.Lock()
	b.published = append(b.published, event)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed", "type", event.Type(), "error", err)
		}
	}
	return nil
}

// Published returns the events published so far. Useful in tests.
func (b *MemoryEventBus) Published() []common.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.published
}

// ClearPublished resets the published event record.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = make([]common.Event, 0)
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)

// MemoryAsyncEventBus dispatches events on background goroutines so
// publishers never wait for side effects.
type MemoryAsyncEventBus struct {
	handlers map[string][]eventbus.HandlerFunc
	mu       sync.RWMutex
	eventCh  chan busItem
	logger   *slog.Logger
}

type busItem struct {
	ctx   context.Context
	event common.Event
}

// NewWithMemoryAsync creates an asynchronous in-memory event bus.
func NewWithMemoryAsync(logger *slog.Logger) *MemoryAsyncEventBus {
	b := &MemoryAsyncEventBus{
		handlers: make(map[string][]eventbus.HandlerFunc),
		eventCh:  make(chan busItem, 100),
		logger:   logger.With("bus", "memory-async"),
	}
	go b.process()
	return b
}

func (b *MemoryAsyncEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}

func (b *MemoryAsyncEventBus) Publish(ctx context.Context, event common.Event) error {
	b.eventCh <- busItem{ctx: ctx, event: event}
	return nil
}

func (b *MemoryAsyncEventBus) process() {
	for item := range b.eventCh {
		go func(item busItem) {
			b.mu.RLock()
			handlers := append([]eventbus.HandlerFunc{}, b.handlers[item.event.Type()]...)
			b.mu.RUnlock()
			for _, handler := range handlers {
				func() {
					defer func() {
						if r := recover(); r != nil {
							b.logger.Error("panic recovered in event handler", "type", item.event.Type(), "panic", r)
						}
					}()
					if err := handler(item.ctx, item.event); err != nil {
						b.logger.Error("failed to process event", "type", item.event.Type(), "error", err)
					}
				}()
			}
		}(item)
	}
}

var _ eventbus.Bus = (*MemoryAsyncEventBus)(nil)

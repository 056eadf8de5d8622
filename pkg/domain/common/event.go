package common

// Event is implemented by anything that can travel over the event bus.
type Event interface {
	// Type returns the event type name used for handler dispatch.
	Type() string
}

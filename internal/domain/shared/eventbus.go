package shared

import "context"

// EventHandler reacts to published domain events. EventTypes names the event
// types it wants; an empty list subscribes it to everything.
type EventHandler interface {
	EventTypes() []string
	Handle(ctx context.Context, event DomainEvent) error
}

// EventPublisher is the side of the bus application services depend on
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is the process-wide dispatcher assembled at startup.
// Subscribe with no explicit types falls back to handler.EventTypes().
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
)

// MockEventHandler records every event the bus hands it. It is safe for use
// from concurrent publishers.
type MockEventHandler struct {
	types []string

	mu      sync.Mutex
	handled []shared.DomainEvent
	err     error
}

// NewMockEventHandler subscribes to types, or to everything when none are given
func NewMockEventHandler(types ...string) *MockEventHandler {
	return &MockEventHandler{types: types}
}

func (h *MockEventHandler) EventTypes() []string { return h.types }

// Handle records the event and returns the configured error, if any
func (h *MockEventHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

// Handled returns a copy of the events recorded so far, oldest first
func (h *MockEventHandler) Handled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.handled)
}

func (h *MockEventHandler) HandledCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

// SetError makes later Handle calls fail with err
func (h *MockEventHandler) SetError(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

// TestEvent is a payload-free billing-style event
type TestEvent struct {
	shared.BaseDomainEvent
}

// NewTestEvent raises an event of eventType for userID on a throwaway aggregate
func NewTestEvent(eventType string, userID uuid.UUID) *TestEvent {
	return &TestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "PaymentRequest", uuid.New(), userID),
	}
}

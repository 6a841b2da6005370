package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEventHandler_RecordsInOrder(t *testing.T) {
	h := NewMockEventHandler("billing.payment_request.approved")
	assert.Equal(t, []string{"billing.payment_request.approved"}, h.EventTypes())

	userID := uuid.New()
	first := NewTestEvent("billing.payment_request.approved", userID)
	second := NewTestEvent("billing.payment_request.approved", userID)
	require.NoError(t, h.Handle(context.Background(), first))
	require.NoError(t, h.Handle(context.Background(), second))

	handled := h.Handled()
	require.Len(t, handled, 2)
	assert.Equal(t, first.EventID(), handled[0].EventID())
	assert.Equal(t, second.EventID(), handled[1].EventID())

	handled[0] = nil
	assert.NotNil(t, h.Handled()[0], "Handled returns a copy")
}

func TestMockEventHandler_SetError(t *testing.T) {
	h := NewMockEventHandler()
	h.SetError(errors.New("audit sink down"))

	err := h.Handle(context.Background(), NewTestEvent("billing.subscription.cancelled", uuid.New()))
	assert.EqualError(t, err, "audit sink down")
	assert.Equal(t, 1, h.HandledCount(), "failed events are still recorded")
}

func TestMockEventHandler_ConcurrentPublishers(t *testing.T) {
	h := NewMockEventHandler()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Handle(context.Background(), NewTestEvent("billing.payment_request.submitted", uuid.New()))
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, h.HandledCount())
}

func TestNewTestEvent(t *testing.T) {
	userID := uuid.New()
	evt := NewTestEvent("billing.payment_request.rejected", userID)

	assert.NotEqual(t, uuid.Nil, evt.EventID())
	assert.NotEqual(t, uuid.Nil, evt.AggregateID())
	assert.Equal(t, "billing.payment_request.rejected", evt.EventType())
	assert.Equal(t, "PaymentRequest", evt.AggregateType())
	assert.Equal(t, userID, evt.UserID())
	assert.False(t, evt.OccurredAt().IsZero())
}

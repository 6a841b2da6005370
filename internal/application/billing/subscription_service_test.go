package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSubscriptionService_CurrentWithoutSubscription(t *testing.T) {
	f := newBillingFixture(t)
	user := f.seedUser(t, "fresh@example.com")

	resp, err := f.subscriptions.Current(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Nil(t, resp.Subscription)
	assert.Equal(t, identity.FreePlanName, resp.PlanName)
}

func TestSubscriptionService_CancelResetsPlanTag(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "leaving@example.com")
	pro := f.seedPlan(t, "pro", "29.00", "290.00", true)

	approval, err := f.payments.Approve(ctx, uuid.New(), f.submit(t, user.ID, pro, "monthly").ID, appbilling.ReviewPaymentRequest{})
	require.NoError(t, err)

	cancelled, err := f.subscriptions.Cancel(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.False(t, cancelled.IsActive)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, approval.Subscription.CurrentPeriodEnd.Unix(), cancelled.CurrentPeriodEnd.Unix())

	stored, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.FreePlanName, stored.SubscriptionPlan)

	current, err := f.subscriptions.Current(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, current.Subscription)
	assert.False(t, current.Subscription.IsActive)
	assert.Equal(t, 0, current.Subscription.DaysRemaining)

	history, err := f.payments.History(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	last := f.events.Handled()[f.events.HandledCount()-1]
	assert.Equal(t, billing.EventTypeSubscriptionCancelled, last.EventType())

	t.Run("cancelling again is harmless", func(t *testing.T) {
		before := f.events.HandledCount()
		again, err := f.subscriptions.Cancel(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", again.Status)
		assert.Equal(t, before, f.events.HandledCount())
	})
}

func TestSubscriptionService_CancelWithoutSubscription(t *testing.T) {
	f := newBillingFixture(t)
	user := f.seedUser(t, "nobody@example.com")

	_, err := f.subscriptions.Cancel(context.Background(), user.ID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAuditHandler_LogsBillingEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := appbilling.NewAuditHandler(zap.New(core))

	assert.Len(t, handler.EventTypes(), 4)

	plan, err := billing.NewPlan(billing.PlanDetails{Name: "basic", IsActive: true})
	require.NoError(t, err)
	req, err := billing.NewPaymentRequest(uuid.New(), plan, billing.SubmitDetails{
		BillingCycle:  billing.BillingCycleMonthly,
		PaymentMethod: billing.PaymentMethodNagad,
	})
	require.NoError(t, err)
	require.NoError(t, req.Approve(uuid.New(), "ok", time.Now()))

	for _, e := range req.GetDomainEvents() {
		require.NoError(t, handler.Handle(context.Background(), e))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "billing.audit", entries[0].LoggerName)
	assert.Equal(t, billing.EventTypePaymentRequestSubmitted, entries[0].ContextMap()["event_type"])
	assert.Equal(t, "nagad", entries[0].ContextMap()["payment_method"])
	assert.Equal(t, billing.EventTypePaymentRequestApproved, entries[1].ContextMap()["event_type"])
	assert.Equal(t, "monthly", entries[1].ContextMap()["billing_cycle"])
}

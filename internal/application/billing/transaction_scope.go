package billing

import (
	"context"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
)

// TransactionScope runs billing mutations atomically
type TransactionScope interface {
	// Execute runs fn inside a database transaction. The repositories handed
	// to fn share that transaction; returning an error rolls everything back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories bound to one transaction
type TransactionalRepositories interface {
	PaymentRequests() billing.PaymentRequestRepository
	Subscriptions() billing.SubscriptionRepository
	History() billing.PaymentHistoryRepository
	Users() identity.UserRepository
}

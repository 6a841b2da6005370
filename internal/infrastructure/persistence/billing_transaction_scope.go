package persistence

import (
	"context"

	appbilling "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// PaymentRequests returns the payment request repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PaymentRequests() billing.PaymentRequestRepository {
	return NewGormPaymentRequestRepository(r.tx)
}

// Subscriptions returns the subscription repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Subscriptions() billing.SubscriptionRepository {
	return NewGormSubscriptionRepository(r.tx)
}

// History returns the payment history repository scoped to the current transaction.
func (r *gormTransactionalRepositories) History() billing.PaymentHistoryRepository {
	return NewGormPaymentHistoryRepository(r.tx)
}

// Users returns the user repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appbilling.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appbilling.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

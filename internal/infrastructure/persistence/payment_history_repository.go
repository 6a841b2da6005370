package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentHistoryRepository implements PaymentHistoryRepository using GORM.
// Entries are append-only.
type GormPaymentHistoryRepository struct {
	db *gorm.DB
}

// NewGormPaymentHistoryRepository creates a new GormPaymentHistoryRepository
func NewGormPaymentHistoryRepository(db *gorm.DB) *GormPaymentHistoryRepository {
	return &GormPaymentHistoryRepository{db: db}
}

// Create appends a ledger entry. A second entry for the same payment request
// violates the unique index and surfaces as ALREADY_EXISTS.
func (r *GormPaymentHistoryRepository) Create(ctx context.Context, entry *billing.PaymentHistory) error {
	err := r.db.WithContext(ctx).Create(models.PaymentHistoryModelFromDomain(entry)).Error
	return translateDuplicate(err, "Payment already recorded")
}

// FindByUser returns the user's ledger, newest first
func (r *GormPaymentHistoryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*billing.PaymentHistory, error) {
	var historyModels []models.PaymentHistoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&historyModels).Error; err != nil {
		return nil, err
	}
	entries := make([]*billing.PaymentHistory, len(historyModels))
	for i := range historyModels {
		entries[i] = historyModels[i].ToDomain()
	}
	return entries, nil
}

// CountByPaymentRequest counts ledger entries written for a payment request
func (r *GormPaymentHistoryRepository) CountByPaymentRequest(ctx context.Context, paymentRequestID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentHistoryModel{}).
		Where("payment_request_id = ?", paymentRequestID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPaymentHistoryRepository implements PaymentHistoryRepository
var _ billing.PaymentHistoryRepository = (*GormPaymentHistoryRepository)(nil)

package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reviewColumns are the only columns a review transition writes
var reviewColumns = []string{"status", "admin_notes", "verified_at", "verified_by", "updated_at", "version"}

// GormPaymentRequestRepository implements PaymentRequestRepository using GORM
type GormPaymentRequestRepository struct {
	db *gorm.DB
}

// NewGormPaymentRequestRepository creates a new GormPaymentRequestRepository
func NewGormPaymentRequestRepository(db *gorm.DB) *GormPaymentRequestRepository {
	return &GormPaymentRequestRepository{db: db}
}

// Create inserts a new payment request
func (r *GormPaymentRequestRepository) Create(ctx context.Context, req *billing.PaymentRequest) error {
	return r.db.WithContext(ctx).Create(models.PaymentRequestModelFromDomain(req)).Error
}

// Transition writes the review fields only while the stored status is still from
func (r *GormPaymentRequestRepository) Transition(ctx context.Context, req *billing.PaymentRequest, from billing.PaymentRequestStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentRequestModel{}).
		Where("id = ? AND status = ?", req.ID, from).
		Select(reviewColumns).
		Updates(models.PaymentRequestModelFromDomain(req))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			"Payment request was already processed")
	}
	return nil
}

// FindByID finds a payment request by ID
func (r *GormPaymentRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.PaymentRequest, error) {
	var model models.PaymentRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "Payment request")
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate reads the request with a row lock held until the transaction ends
func (r *GormPaymentRequestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.PaymentRequest, error) {
	var model models.PaymentRequestModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "Payment request")
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's payment requests, newest first
func (r *GormPaymentRequestRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*billing.PaymentRequest, error) {
	var requestModels []models.PaymentRequestModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return paymentRequestsToDomain(requestModels), nil
}

// FindAll returns one page of payment requests across all users
func (r *GormPaymentRequestRepository) FindAll(ctx context.Context, filter billing.PaymentRequestFilter) ([]*billing.PaymentRequest, int64, error) {
	f := filter.Normalize()
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentRequestModel{}), f).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requestModels []models.PaymentRequestModel
	if err := query.
		Order(paymentRequestOrdering.Clause(f)).
		Scopes(Paginate(f)).
		Find(&requestModels).Error; err != nil {
		return nil, 0, err
	}
	return paymentRequestsToDomain(requestModels), total, nil
}

func (r *GormPaymentRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		}
	}
	return query
}

func paymentRequestsToDomain(requestModels []models.PaymentRequestModel) []*billing.PaymentRequest {
	requests := make([]*billing.PaymentRequest, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	return requests
}

// Ensure GormPaymentRequestRepository implements PaymentRequestRepository
var _ billing.PaymentRequestRepository = (*GormPaymentRequestRepository)(nil)

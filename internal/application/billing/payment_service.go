package billing

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrProofStorageUnavailable is returned when no object storage is configured
var ErrProofStorageUnavailable = shared.NewDomainError("SERVICE_UNAVAILABLE", "File uploads are not available")

// PaymentServiceConfig contains configuration for PaymentService
type PaymentServiceConfig struct {
	Periods           billing.Periods
	ProofUploadExpiry time.Duration
}

// DefaultPaymentServiceConfig returns default configuration
func DefaultPaymentServiceConfig() PaymentServiceConfig {
	return PaymentServiceConfig{
		Periods:           billing.DefaultPeriods,
		ProofUploadExpiry: 15 * time.Minute,
	}
}

// PaymentServiceOption configures optional PaymentService collaborators
type PaymentServiceOption func(*PaymentService)

// WithProofStorage enables presigned proof uploads
func WithProofStorage(storage ProofStorage) PaymentServiceOption {
	return func(s *PaymentService) {
		s.storage = storage
	}
}

// WithEventPublisher publishes billing domain events after commit
func WithEventPublisher(publisher shared.EventPublisher) PaymentServiceOption {
	return func(s *PaymentService) {
		s.publisher = publisher
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) PaymentServiceOption {
	return func(s *PaymentService) {
		s.now = now
	}
}

// PaymentService runs the payment request review workflow
type PaymentService struct {
	requests  billing.PaymentRequestRepository
	plans     billing.PlanRepository
	history   billing.PaymentHistoryRepository
	txScope   TransactionScope
	storage   ProofStorage
	publisher shared.EventPublisher
	logger    *zap.Logger
	config    PaymentServiceConfig
	now       func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	requests billing.PaymentRequestRepository,
	plans billing.PlanRepository,
	history billing.PaymentHistoryRepository,
	txScope TransactionScope,
	logger *zap.Logger,
	config PaymentServiceConfig,
	opts ...PaymentServiceOption,
) *PaymentService {
	if config.Periods.Monthly <= 0 || config.Periods.Yearly <= 0 {
		config.Periods = billing.DefaultPeriods
	}
	if config.ProofUploadExpiry <= 0 {
		config.ProofUploadExpiry = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &PaymentService{
		requests: requests,
		plans:    plans,
		history:  history,
		txScope:  txScope,
		logger:   logger,
		config:   config,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records a user's payment claim against a plan
func (s *PaymentService) Submit(ctx context.Context, userID uuid.UUID, req SubmitPaymentRequest) (*PaymentRequestResponse, error) {
	plan, err := s.plans.FindByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	pr, err := billing.NewPaymentRequest(userID, plan, billing.SubmitDetails{
		BillingCycle:  billing.BillingCycle(req.BillingCycle),
		PaymentMethod: billing.PaymentMethod(req.PaymentMethod),
		TransactionID: req.TransactionID,
		PaymentProof:  req.PaymentProof,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, pr); err != nil {
		return nil, err
	}

	s.logger.Info("Payment request submitted",
		zap.String("payment_request_id", pr.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("plan", plan.Name),
		zap.String("amount", pr.Amount.StringFixed(2)))
	s.publish(ctx, pr.GetDomainEvents())

	resp := ToPaymentRequestResponse(pr, plan.Name)
	return &resp, nil
}

// ListMine returns the caller's payment requests, newest first
func (s *PaymentService) ListMine(ctx context.Context, userID uuid.UUID) ([]PaymentRequestResponse, error) {
	requests, err := s.requests.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, requests)
}

// GetMine returns one of the caller's payment requests
func (s *PaymentService) GetMine(ctx context.Context, userID, id uuid.UUID) (*PaymentRequestResponse, error) {
	pr, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr.UserID != userID {
		return nil, shared.NotFound("Payment request")
	}
	out, err := s.toResponses(ctx, []*billing.PaymentRequest{pr})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// AdminList returns one page of payment requests across all users
func (s *PaymentService) AdminList(ctx context.Context, filter PaymentRequestListFilter) (shared.Paginated[PaymentRequestResponse], error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  map[string]any{},
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.UserID != "" {
		if id, err := uuid.Parse(filter.UserID); err == nil {
			f.Filters["user_id"] = id
		}
	}

	f = f.Normalize()

	requests, total, err := s.requests.FindAll(ctx, billing.PaymentRequestFilter{Filter: f})
	if err != nil {
		return shared.Paginated[PaymentRequestResponse]{}, err
	}
	out, err := s.toResponses(ctx, requests)
	if err != nil {
		return shared.Paginated[PaymentRequestResponse]{}, err
	}
	return shared.NewPaginated(out, total, f.Page, f.PageSize), nil
}

// Verify marks a submitted request as checked by staff
func (s *PaymentService) Verify(ctx context.Context, adminID, id uuid.UUID, req ReviewPaymentRequest) (*PaymentRequestResponse, error) {
	pr, err := s.review(ctx, id, func(pr *billing.PaymentRequest, now time.Time) error {
		return pr.Verify(adminID, req.AdminNotes, now)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment request verified",
		zap.String("payment_request_id", id.String()),
		zap.String("admin_id", adminID.String()))
	return s.single(ctx, pr)
}

// Reject declines a request. No subscription or ledger side effects.
func (s *PaymentService) Reject(ctx context.Context, adminID, id uuid.UUID, req ReviewPaymentRequest) (*PaymentRequestResponse, error) {
	pr, err := s.review(ctx, id, func(pr *billing.PaymentRequest, now time.Time) error {
		return pr.Reject(adminID, req.AdminNotes, now)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment request rejected",
		zap.String("payment_request_id", id.String()),
		zap.String("admin_id", adminID.String()))
	s.publish(ctx, pr.GetDomainEvents())
	return s.single(ctx, pr)
}

// review applies a status change that has no side effects beyond the request row
func (s *PaymentService) review(ctx context.Context, id uuid.UUID, apply func(*billing.PaymentRequest, time.Time) error) (*billing.PaymentRequest, error) {
	var reviewed *billing.PaymentRequest
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		pr, err := repos.PaymentRequests().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := pr.Status
		if err := apply(pr, s.now()); err != nil {
			return err
		}
		if err := repos.PaymentRequests().Transition(ctx, pr, from); err != nil {
			return err
		}
		reviewed = pr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

// Approve accepts a payment: the request, the user's subscription, the
// user's plan tag and the ledger entry commit together or not at all.
func (s *PaymentService) Approve(ctx context.Context, adminID, id uuid.UUID, req ReviewPaymentRequest) (*ApprovalResponse, error) {
	// The plan is read outside the transaction; test databases run with a
	// single connection.
	current, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plan, err := s.plans.FindByID(ctx, current.PlanID)
	if err != nil {
		return nil, fmt.Errorf("load plan for payment request %s: %w", id, err)
	}

	var (
		approved *billing.PaymentRequest
		sub      *billing.UserSubscription
	)
	now := s.now()
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		pr, err := repos.PaymentRequests().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := pr.Status
		if err := pr.Approve(adminID, req.AdminNotes, now); err != nil {
			return err
		}
		if err := repos.PaymentRequests().Transition(ctx, pr, from); err != nil {
			return err
		}

		existing, err := repos.Subscriptions().FindByUserID(ctx, pr.UserID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			existing = billing.NewUserSubscription(pr.UserID)
		case err != nil:
			return err
		}
		existing.Activate(pr.PlanID, pr.BillingCycle, now, s.config.Periods.End(pr.BillingCycle, now))
		if err := repos.Subscriptions().Upsert(ctx, existing); err != nil {
			return err
		}

		if err := setActivePlan(ctx, repos.Users(), pr.UserID, plan.Name); err != nil {
			return err
		}
		if err := repos.History().Create(ctx, billing.NewPaymentHistory(pr, existing)); err != nil {
			return err
		}

		approved, sub = pr, existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment request approved",
		zap.String("payment_request_id", id.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("user_id", approved.UserID.String()),
		zap.String("plan", plan.Name),
		zap.Time("period_end", sub.CurrentPeriodEnd))
	s.publish(ctx, approved.GetDomainEvents())

	return &ApprovalResponse{
		PaymentRequest: ToPaymentRequestResponse(approved, plan.Name),
		Subscription:   ToSubscriptionResponse(sub, plan, now),
	}, nil
}

// History returns the caller's payment ledger
func (s *PaymentService) History(ctx context.Context, userID uuid.UUID) ([]PaymentHistoryResponse, error) {
	entries, err := s.history.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.PlanID
	}
	names, err := s.planNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PaymentHistoryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToPaymentHistoryResponse(e, names[e.PlanID])
	}
	return out, nil
}

// ProofUploadURL issues a presigned URL the client uploads a proof file to
func (s *PaymentService) ProofUploadURL(ctx context.Context, userID uuid.UUID, req ProofUploadRequest) (*ProofUploadResponse, error) {
	if s.storage == nil {
		return nil, ErrProofStorageUnavailable
	}

	key := proofKey(userID, req.FileName, uuid.New())
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, s.config.ProofUploadExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign proof upload: %w", err)
	}
	return &ProofUploadResponse{
		UploadURL:  uploadURL,
		FileURL:    s.storage.ObjectURL(key),
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// proofKey builds payment-proofs/<user>/<id>-<slugged name><ext>
func proofKey(userID uuid.UUID, fileName string, id uuid.UUID) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, path.Ext(base)))
	if name == "" {
		name = "proof"
	}
	return fmt.Sprintf("payment-proofs/%s/%s-%s%s", userID, id, name, ext)
}

func (s *PaymentService) single(ctx context.Context, pr *billing.PaymentRequest) (*PaymentRequestResponse, error) {
	out, err := s.toResponses(ctx, []*billing.PaymentRequest{pr})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *PaymentService) toResponses(ctx context.Context, requests []*billing.PaymentRequest) ([]PaymentRequestResponse, error) {
	ids := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.PlanID
	}
	names, err := s.planNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PaymentRequestResponse, len(requests))
	for i, r := range requests {
		out[i] = ToPaymentRequestResponse(r, names[r.PlanID])
	}
	return out, nil
}

// planNames resolves plan IDs to names. Deleted plans resolve to "".
func (s *PaymentService) planNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if _, seen := names[id]; seen {
			continue
		}
		plan, err := s.plans.FindByID(ctx, id)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			names[id] = ""
		case err != nil:
			return nil, err
		default:
			names[id] = plan.Name
		}
	}
	return names, nil
}

// publish hands committed events to the bus. The state change already
// happened, so failures are logged and swallowed.
func (s *PaymentService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish billing events", zap.Error(err))
	}
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"go.uber.org/zap"
)

// PlanService serves the plan catalog
type PlanService struct {
	plans  billing.PlanRepository
	cache  PlanCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewPlanService creates a new PlanService. cache may be nil.
func NewPlanService(plans billing.PlanRepository, cache PlanCache, ttl time.Duration, logger *zap.Logger) *PlanService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{plans: plans, cache: cache, ttl: ttl, logger: logger}
}

// ListActive returns active plans ordered by sort order. Cache failures
// fall through to the database.
func (s *PlanService) ListActive(ctx context.Context) ([]PlanResponse, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Plan cache read failed", zap.Error(err))
		} else if ok {
			return toPlanResponses(cached), nil
		}
	}

	plans, err := s.plans.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, plans, s.ttl); err != nil {
			s.logger.Warn("Plan cache write failed", zap.Error(err))
		}
	}
	return toPlanResponses(plans), nil
}

// GetByID returns a single plan, active or not
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (*PlanResponse, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPlanResponse(plan)
	return &resp, nil
}

// Create adds a plan to the catalog
func (s *PlanService) Create(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	plan, err := billing.NewPlan(req.details())
	if err != nil {
		return nil, err
	}
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info("Plan created", zap.String("plan_id", plan.ID.String()), zap.String("name", plan.Name))
	resp := ToPlanResponse(plan)
	return &resp, nil
}

// Update replaces a plan's writable state
func (s *PlanService) Update(ctx context.Context, id uuid.UUID, req PlanRequest) (*PlanResponse, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Revise(req.details()); err != nil {
		return nil, err
	}
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info("Plan updated", zap.String("plan_id", plan.ID.String()), zap.String("name", plan.Name))
	resp := ToPlanResponse(plan)
	return &resp, nil
}

func (s *PlanService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Plan cache invalidation failed", zap.Error(err))
	}
}

func toPlanResponses(plans []*billing.Plan) []PlanResponse {
	out := make([]PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = ToPlanResponse(p)
	}
	return out
}

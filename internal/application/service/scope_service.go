package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
)

// ScopeService guards scope of work creation: at most one scope per pricing
// plan, immutable once created. Scope revisions require a new pricing plan,
// which keeps a quote from silently drifting after it has gone out.
type ScopeService struct {
	scopeRepo repository.ScopeOfWorkRepository
	itemRepo  repository.ScopeItemRepository
	planRepo  repository.PricingPlanRepository
}

// NewScopeService creates a new scope service
func NewScopeService(
	scopeRepo repository.ScopeOfWorkRepository,
	itemRepo repository.ScopeItemRepository,
	planRepo repository.PricingPlanRepository,
) *ScopeService {
	return &ScopeService{
		scopeRepo: scopeRepo,
		itemRepo:  itemRepo,
		planRepo:  planRepo,
	}
}

// CreateScopeInput represents the input for creating a scope of work
type CreateScopeInput struct {
	UserID        uuid.UUID
	PricingPlanID uuid.UUID
	ScopeItemIDs  []uuid.UUID
}

// CreateScope creates the single scope of work for a pricing plan
func (s *ScopeService) CreateScope(ctx context.Context, input *CreateScopeInput) (*entity.ScopeOfWork, error) {
	if len(input.ScopeItemIDs) == 0 {
		return nil, apperror.NewBadRequestError("At least one scope item is required")
	}

	plan, err := s.planRepo.GetByID(ctx, input.PricingPlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Pricing plan")
	}

	existing, err := s.scopeRepo.GetByPlanID(ctx, input.PricingPlanID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrScopeAlreadyExists
	}

	items, err := s.itemRepo.GetByIDs(ctx, input.ScopeItemIDs)
	if err != nil {
		return nil, err
	}
	if len(items) != len(input.ScopeItemIDs) {
		return nil, apperror.NewNotFoundError("Scope item")
	}

	selections := make([]entity.ScopeSelection, 0, len(input.ScopeItemIDs))
	for i, itemID := range input.ScopeItemIDs {
		selections = append(selections, entity.ScopeSelection{
			ScopeItemID: itemID,
			Position:    i + 1,
		})
	}

	scope := &entity.ScopeOfWork{
		PricingPlanID: input.PricingPlanID,
		CreatedBy:     input.UserID,
		Selections:    selections,
	}

	// The unique index on pricing_plan_id backs up this guard under
	// concurrent creation.
	if err := s.scopeRepo.Create(ctx, scope); err != nil {
		return nil, err
	}

	return s.scopeRepo.GetByID(ctx, scope.ID)
}

// GetScopeByPlan retrieves the scope of work for a pricing plan
func (s *ScopeService) GetScopeByPlan(ctx context.Context, pricingPlanID uuid.UUID) (*entity.ScopeOfWork, error) {
	scope, err := s.scopeRepo.GetByPlanID(ctx, pricingPlanID)
	if err != nil {
		return nil, err
	}
	if scope == nil {
		return nil, apperror.NewNotFoundError("Scope of work")
	}
	return scope, nil
}

// ListCatalog lists the scope item master catalog
func (s *ScopeService) ListCatalog(ctx context.Context) ([]entity.ScopeItem, error) {
	return s.itemRepo.List(ctx)
}

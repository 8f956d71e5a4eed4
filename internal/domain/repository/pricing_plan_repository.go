package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
)

// PricingPlanRepository defines the interface for pricing plan data operations
type PricingPlanRepository interface {
	Create(ctx context.Context, plan *entity.PricingPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PricingPlan, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.PricingPlan, error)
	// UpdateDuration persists a duration change together with the re-derived
	// committed meetings of every row, in one transaction.
	UpdateDuration(ctx context.Context, plan *entity.PricingPlan) error
}

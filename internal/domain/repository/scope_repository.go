package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
)

// ScopeOfWorkRepository defines the interface for scope of work data operations.
// No update or delete: a scope of work is immutable once created.
type ScopeOfWorkRepository interface {
	Create(ctx context.Context, scope *entity.ScopeOfWork) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ScopeOfWork, error)
	GetByPlanID(ctx context.Context, pricingPlanID uuid.UUID) (*entity.ScopeOfWork, error)
}

// ScopeItemRepository provides read-only access to the scope item master catalog
type ScopeItemRepository interface {
	List(ctx context.Context) ([]entity.ScopeItem, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ScopeItem, error)
}

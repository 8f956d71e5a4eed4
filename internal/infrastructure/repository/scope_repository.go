package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	domainRepo "github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type scopeOfWorkRepository struct {
	db *gorm.DB
}

// NewScopeOfWorkRepository creates a new scope of work repository
func NewScopeOfWorkRepository(db *gorm.DB) domainRepo.ScopeOfWorkRepository {
	return &scopeOfWorkRepository{db: db}
}

func (r *scopeOfWorkRepository) Create(ctx context.Context, scope *entity.ScopeOfWork) error {
	// Selections ride along via the association; the unique index on
	// pricing_plan_id rejects a concurrent duplicate at the database.
	return r.db.WithContext(ctx).Create(scope).Error
}

func (r *scopeOfWorkRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ScopeOfWork, error) {
	var scope entity.ScopeOfWork
	err := r.db.WithContext(ctx).
		Preload("Selections", func(db *gorm.DB) *gorm.DB {
			return db.Order("scope_selections.position ASC")
		}).
		Preload("Selections.ScopeItem").
		First(&scope, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &scope, err
}

func (r *scopeOfWorkRepository) GetByPlanID(ctx context.Context, pricingPlanID uuid.UUID) (*entity.ScopeOfWork, error) {
	var scope entity.ScopeOfWork
	err := r.db.WithContext(ctx).
		Preload("Selections", func(db *gorm.DB) *gorm.DB {
			return db.Order("scope_selections.position ASC")
		}).
		Preload("Selections.ScopeItem").
		First(&scope, "pricing_plan_id = ?", pricingPlanID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &scope, err
}

type scopeItemRepository struct {
	db *gorm.DB
}

// NewScopeItemRepository creates a new scope item repository
func NewScopeItemRepository(db *gorm.DB) domainRepo.ScopeItemRepository {
	return &scopeItemRepository{db: db}
}

func (r *scopeItemRepository) List(ctx context.Context) ([]entity.ScopeItem, error) {
	var items []entity.ScopeItem
	err := r.db.WithContext(ctx).
		Order("category ASC, name ASC").
		Find(&items).Error
	return items, err
}

func (r *scopeItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ScopeItem, error) {
	var items []entity.ScopeItem
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

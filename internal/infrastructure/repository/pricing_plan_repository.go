package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	domainRepo "github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type pricingPlanRepository struct {
	db *gorm.DB
}

// NewPricingPlanRepository creates a new pricing plan repository
func NewPricingPlanRepository(db *gorm.DB) domainRepo.PricingPlanRepository {
	return &pricingPlanRepository{db: db}
}

func (r *pricingPlanRepository) Create(ctx context.Context, plan *entity.PricingPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *pricingPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PricingPlan, error) {
	var plan entity.PricingPlan
	err := r.db.WithContext(ctx).
		Preload("Rows").
		First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *pricingPlanRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.PricingPlan, error) {
	var plans []entity.PricingPlan
	err := r.db.WithContext(ctx).
		Preload("Rows").
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

// UpdateDuration writes the new duration and the re-derived committed
// meetings of every row in one transaction, so readers never see a plan
// whose rows disagree with its duration.
func (r *pricingPlanRepository) UpdateDuration(ctx context.Context, plan *entity.PricingPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.PricingPlan{}).
			Where("id = ?", plan.ID).
			Update("duration_months", plan.DurationMonths).Error; err != nil {
			return err
		}

		for _, row := range plan.Rows {
			if err := tx.Model(&entity.TeamRow{}).
				Where("id = ?", row.ID).
				Update("committed_meetings", row.CommittedMeetings).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	domainRepo "github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type agreementRepository struct {
	db *gorm.DB
}

// NewAgreementRepository creates a new agreement repository
func NewAgreementRepository(db *gorm.DB) domainRepo.AgreementRepository {
	return &agreementRepository{db: db}
}

func (r *agreementRepository) Create(ctx context.Context, agreement *entity.Agreement) error {
	return r.db.WithContext(ctx).Create(agreement).Error
}

func (r *agreementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agreement, error) {
	var agreement entity.Agreement
	err := r.db.WithContext(ctx).First(&agreement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &agreement, err
}

func (r *agreementRepository) GetWithMilestones(ctx context.Context, id uuid.UUID) (*entity.Agreement, error) {
	var agreement entity.Agreement
	err := r.db.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("milestones.position ASC")
		}).
		First(&agreement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &agreement, err
}

func (r *agreementRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Agreement, error) {
	var agreements []entity.Agreement
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&agreements).Error
	return agreements, err
}

// UpdateStatusIf performs the status transition as a conditional update.
// Losing the race leaves the row untouched and returns false.
func (r *agreementRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, target enum.AgreementStatus, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = target

	result := r.db.WithContext(ctx).Model(&entity.Agreement{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *agreementRepository) GetNextReferenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Agreement{}).Count(&count).Error
	return int(count) + 1, err
}

type milestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new milestone repository
func NewMilestoneRepository(db *gorm.DB) domainRepo.MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) Create(ctx context.Context, milestone *entity.Milestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

func (r *milestoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error) {
	var milestone entity.Milestone
	err := r.db.WithContext(ctx).First(&milestone, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &milestone, err
}

func (r *milestoneRepository) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.Milestone, error) {
	var milestones []entity.Milestone
	err := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		Order("position ASC").
		Find(&milestones).Error
	return milestones, err
}

func (r *milestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Milestone{}, "id = ?", id).Error
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	domainRepo "github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type proformaInvoiceRepository struct {
	db *gorm.DB
}

// NewProformaInvoiceRepository creates a new proforma invoice repository
func NewProformaInvoiceRepository(db *gorm.DB) domainRepo.ProformaInvoiceRepository {
	return &proformaInvoiceRepository{db: db}
}

func (r *proformaInvoiceRepository) Create(ctx context.Context, invoice *entity.ProformaInvoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *proformaInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProformaInvoice, error) {
	var invoice entity.ProformaInvoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *proformaInvoiceRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.ProformaInvoice, error) {
	var invoices []entity.ProformaInvoice
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *proformaInvoiceRepository) ListByPlan(ctx context.Context, pricingPlanID uuid.UUID) ([]entity.ProformaInvoice, error) {
	var invoices []entity.ProformaInvoice
	err := r.db.WithContext(ctx).
		Where("pricing_plan_id = ?", pricingPlanID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// Finalize flips is_final with the draft state as a write condition. The
// RowsAffected check is what makes the draft-to-final edge one way under
// concurrent finalize calls.
func (r *proformaInvoiceRepository) Finalize(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entity.ProformaInvoice{}).
		Where("id = ? AND is_final = ?", id, false).
		Updates(map[string]interface{}{
			"is_final":     true,
			"finalized_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *proformaInvoiceRepository) GetNextReferenceNumber(ctx context.Context) (int, error) {
	var count int64
	// Soft-deleted invoices keep their reference, so they stay in the count.
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.ProformaInvoice{}).Count(&count).Error
	return int(count) + 1, err
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
)

// ProformaInvoiceRepository defines the interface for proforma invoice data operations
type ProformaInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.ProformaInvoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProformaInvoice, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.ProformaInvoice, error)
	ListByPlan(ctx context.Context, pricingPlanID uuid.UUID) ([]entity.ProformaInvoice, error)
	// Finalize flips is_final conditioned on it still being false and returns
	// whether the write won. A false result on an existing invoice means it
	// was already final.
	Finalize(ctx context.Context, id uuid.UUID) (bool, error)
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
	"github.com/niteshkumar/dealdesk-api/pkg/pricing"
	"github.com/niteshkumar/dealdesk-api/pkg/utils"
)

// ProformaService tracks proforma invoices per plan and enforces the
// one-way draft to final transition.
type ProformaService struct {
	invoiceRepo repository.ProformaInvoiceRepository
	planRepo    repository.PricingPlanRepository
}

// NewProformaService creates a new proforma service
func NewProformaService(
	invoiceRepo repository.ProformaInvoiceRepository,
	planRepo repository.PricingPlanRepository,
) *ProformaService {
	return &ProformaService{
		invoiceRepo: invoiceRepo,
		planRepo:    planRepo,
	}
}

// CreateDraft computes totals from the pricing plan and stores a draft
// invoice. An existing final invoice is superseded only by a new draft,
// never edited.
func (s *ProformaService) CreateDraft(ctx context.Context, userID, pricingPlanID uuid.UUID) (*entity.ProformaInvoice, error) {
	plan, err := s.planRepo.GetByID(ctx, pricingPlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Pricing plan")
	}

	rows := make([]pricing.Row, 0, len(plan.Rows))
	for _, row := range plan.Rows {
		rows = append(rows, pricing.Row{
			CommittedMeetings: row.CommittedMeetings,
			Count:             row.Count,
			RatePerMeeting:    row.RatePerMeeting,
		})
	}
	totals := pricing.Aggregate(rows, plan.DiscountPercentage)

	nextNum, err := s.invoiceRepo.GetNextReferenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &entity.ProformaInvoice{
		Reference:      utils.GenerateReference("PI", nextNum),
		PricingPlanID:  plan.ID,
		LeadID:         plan.LeadID,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		GSTAmount:      totals.GSTAmount,
		GrandTotal:     totals.GrandTotal,
		IsFinal:        false,
		CreatedBy:      userID,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// Finalize irreversibly freezes the invoice. A second call fails with
// AlreadyFinal and the flag never flips back.
func (s *ProformaService) Finalize(ctx context.Context, id uuid.UUID) (*entity.ProformaInvoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Proforma invoice")
	}

	won, err := s.invoiceRepo.Finalize(ctx, id)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.ErrAlreadyFinal
	}

	return s.invoiceRepo.GetByID(ctx, id)
}

// GetInvoice retrieves a proforma invoice by ID
func (s *ProformaService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.ProformaInvoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Proforma invoice")
	}
	return invoice, nil
}

// ListByLead lists the proforma invoices for a lead
func (s *ProformaService) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.ProformaInvoice, error) {
	return s.invoiceRepo.ListByLead(ctx, leadID)
}

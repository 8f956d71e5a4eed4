package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
	"github.com/niteshkumar/dealdesk-api/pkg/render"
)

// DocumentService produces printable representations of finalized invoices
// and signed agreements. Drafts never leave the building.
type DocumentService struct {
	invoiceRepo   repository.ProformaInvoiceRepository
	agreementRepo repository.AgreementRepository
	leadRepo      repository.LeadRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(
	invoiceRepo repository.ProformaInvoiceRepository,
	agreementRepo repository.AgreementRepository,
	leadRepo repository.LeadRepository,
) *DocumentService {
	return &DocumentService{
		invoiceRepo:   invoiceRepo,
		agreementRepo: agreementRepo,
		leadRepo:      leadRepo,
	}
}

// ProformaDocument renders a finalized proforma invoice
func (s *DocumentService) ProformaDocument(ctx context.Context, id uuid.UUID) ([]byte, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Proforma invoice")
	}
	if !invoice.IsFinal {
		return nil, apperror.ErrInvoiceNotFinal
	}

	lead, err := s.leadRepo.GetByID(ctx, invoice.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	return render.ProformaInvoice(invoice, lead)
}

// AgreementDocument renders a signed agreement
func (s *DocumentService) AgreementDocument(ctx context.Context, id uuid.UUID) ([]byte, error) {
	agreement, err := s.agreementRepo.GetWithMilestones(ctx, id)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}
	if agreement.Status != enum.AgreementStatusSigned {
		return nil, apperror.ErrAgreementNotSigned
	}

	lead, err := s.leadRepo.GetByID(ctx, agreement.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	return render.Agreement(agreement, lead)
}

package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
	"github.com/niteshkumar/dealdesk-api/pkg/utils"
)

// milestoneTolerance is the largest milestone-vs-value variance that is not
// worth warning about (rounding noise on currency amounts).
const milestoneTolerance = 1.0

// AgreementService governs the agreement lifecycle: draft -> sent -> signed,
// e-signature capture, and the milestone list. Signing is the single event
// that unlocks payments and kickoff for the agreement.
type AgreementService struct {
	agreementRepo repository.AgreementRepository
	milestoneRepo repository.MilestoneRepository
	invoiceRepo   repository.ProformaInvoiceRepository
	leadRepo      repository.LeadRepository
	notifier      Notifier
}

// NewAgreementService creates a new agreement service
func NewAgreementService(
	agreementRepo repository.AgreementRepository,
	milestoneRepo repository.MilestoneRepository,
	invoiceRepo repository.ProformaInvoiceRepository,
	leadRepo repository.LeadRepository,
	notifier Notifier,
) *AgreementService {
	return &AgreementService{
		agreementRepo: agreementRepo,
		milestoneRepo: milestoneRepo,
		invoiceRepo:   invoiceRepo,
		leadRepo:      leadRepo,
		notifier:      notifier,
	}
}

// AgreementView pairs an agreement with its milestone reconciliation state.
// A variance is a warning, never a block: milestones may legitimately
// restructure payment timing.
type AgreementView struct {
	Agreement         *entity.Agreement `json:"agreement"`
	MilestoneTotal    float64           `json:"milestone_total"`
	MilestoneVariance float64           `json:"milestone_variance"`
}

// CreateAgreement creates a draft agreement from a finalized proforma invoice
func (s *AgreementService) CreateAgreement(ctx context.Context, userID, invoiceID uuid.UUID, clientEmail string) (*entity.Agreement, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Proforma invoice")
	}
	if !invoice.IsFinal {
		return nil, apperror.ErrInvoiceNotFinal
	}

	nextNum, err := s.agreementRepo.GetNextReferenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	agreement := &entity.Agreement{
		Reference:         utils.GenerateReference("AGR", nextNum),
		ProformaInvoiceID: invoice.ID,
		LeadID:            invoice.LeadID,
		Status:            enum.AgreementStatusDraft,
		Value:             invoice.GrandTotal,
		ClientEmail:       clientEmail,
		CreatedBy:         userID,
	}

	if err := s.agreementRepo.Create(ctx, agreement); err != nil {
		return nil, err
	}

	return agreement, nil
}

// GetAgreement retrieves an agreement with milestones and reconciliation state
func (s *AgreementService) GetAgreement(ctx context.Context, id uuid.UUID) (*AgreementView, error) {
	agreement, err := s.agreementRepo.GetWithMilestones(ctx, id)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}
	return s.view(agreement), nil
}

// SendAgreement moves the agreement from draft to sent and emails the client.
// A notification failure is logged and does not roll back the transition.
func (s *AgreementService) SendAgreement(ctx context.Context, id uuid.UUID, clientEmail string) (*AgreementView, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}
	if agreement.Status != enum.AgreementStatusDraft {
		return nil, apperror.ErrInvalidTransition
	}

	if clientEmail == "" {
		clientEmail = agreement.ClientEmail
	}
	if clientEmail == "" {
		return nil, apperror.NewBadRequestError("Client email is required")
	}

	now := time.Now()
	won, err := s.agreementRepo.UpdateStatusIf(ctx, id, enum.AgreementStatusDraft, enum.AgreementStatusSent, map[string]interface{}{
		"client_email": clientEmail,
		"sent_at":      now,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.ErrInvalidTransition
	}

	go func() {
		lead, err := s.leadRepo.GetByID(context.Background(), agreement.LeadID)
		if err != nil || lead == nil {
			log.Printf("Warning: could not load lead for agreement email: %v", err)
			return
		}
		if err := s.notifier.SendAgreementEmail(clientEmail, lead.Name, agreement.Reference); err != nil {
			log.Printf("Warning: failed to send agreement email: %v", err)
		}
	}()

	return s.GetAgreement(ctx, id)
}

// SignAgreementInput represents the input for signing an agreement
type SignAgreementInput struct {
	AgreementID    uuid.UUID
	SignerName     string
	SignerEmail    string
	SignatureImage string
}

// SignAgreement captures the e-signature and moves the agreement to signed.
// Allowed from draft or sent; an already-signed agreement rejects the call.
func (s *AgreementService) SignAgreement(ctx context.Context, input *SignAgreementInput) (*AgreementView, error) {
	if input.SignerName == "" || input.SignerEmail == "" {
		return nil, apperror.NewBadRequestError("Signer name and email are required")
	}
	if input.SignatureImage == "" {
		return nil, apperror.NewBadRequestError("Signature image is required")
	}

	agreement, err := s.agreementRepo.GetByID(ctx, input.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}
	if !agreement.Status.CanTransitionTo(enum.AgreementStatusSigned) {
		return nil, apperror.ErrInvalidTransition
	}

	now := time.Now()
	won, err := s.agreementRepo.UpdateStatusIf(ctx, input.AgreementID, agreement.Status, enum.AgreementStatusSigned, map[string]interface{}{
		"signer_name":     input.SignerName,
		"signer_email":    input.SignerEmail,
		"signature_image": input.SignatureImage,
		"signed_at":       now,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.ErrInvalidTransition
	}

	return s.GetAgreement(ctx, input.AgreementID)
}

// AddMilestoneInput represents the input for adding a milestone
type AddMilestoneInput struct {
	AgreementID uuid.UUID
	Description string
	Amount      float64
	DueDate     time.Time
}

// AddMilestone appends a milestone to an unsigned agreement
func (s *AgreementService) AddMilestone(ctx context.Context, input *AddMilestoneInput) (*AgreementView, error) {
	if input.Description == "" {
		return nil, apperror.NewBadRequestError("Milestone description is required")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Milestone amount must be positive")
	}

	agreement, err := s.agreementRepo.GetWithMilestones(ctx, input.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}
	if agreement.Status == enum.AgreementStatusSigned {
		return nil, apperror.ErrAgreementLocked
	}

	milestone := &entity.Milestone{
		AgreementID: agreement.ID,
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
		Position:    len(agreement.Milestones) + 1,
	}

	if err := s.milestoneRepo.Create(ctx, milestone); err != nil {
		return nil, err
	}

	return s.GetAgreement(ctx, input.AgreementID)
}

// RemoveMilestone deletes a milestone from an unsigned agreement
func (s *AgreementService) RemoveMilestone(ctx context.Context, agreementID, milestoneID uuid.UUID) (*AgreementView, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}
	if agreement.Status == enum.AgreementStatusSigned {
		return nil, apperror.ErrAgreementLocked
	}

	milestone, err := s.milestoneRepo.GetByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if milestone == nil || milestone.AgreementID != agreementID {
		return nil, apperror.NewNotFoundError("Milestone")
	}

	if err := s.milestoneRepo.Delete(ctx, milestoneID); err != nil {
		return nil, err
	}

	return s.GetAgreement(ctx, agreementID)
}

func (s *AgreementService) view(agreement *entity.Agreement) *AgreementView {
	total := agreement.MilestoneTotal()
	variance := total - agreement.Value
	if len(agreement.Milestones) > 0 && math.Abs(variance) > milestoneTolerance {
		log.Printf("Warning: agreement %s milestones sum to %.2f against value %.2f", agreement.Reference, total, agreement.Value)
	}
	return &AgreementView{
		Agreement:         agreement,
		MilestoneTotal:    total,
		MilestoneVariance: variance,
	}
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
)

// PipelineService answers "which stage is reachable" for a lead from a
// read-only snapshot of its plan, scope, invoices and agreements. The gate
// is advisory for progress indicators; authoritative enforcement stays in
// each component's own guards, so a well-formed API call can never bypass
// the rules by skipping this service.
type PipelineService struct {
	leadRepo      repository.LeadRepository
	planRepo      repository.PricingPlanRepository
	scopeRepo     repository.ScopeOfWorkRepository
	invoiceRepo   repository.ProformaInvoiceRepository
	agreementRepo repository.AgreementRepository
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	leadRepo repository.LeadRepository,
	planRepo repository.PricingPlanRepository,
	scopeRepo repository.ScopeOfWorkRepository,
	invoiceRepo repository.ProformaInvoiceRepository,
	agreementRepo repository.AgreementRepository,
) *PipelineService {
	return &PipelineService{
		leadRepo:      leadRepo,
		planRepo:      planRepo,
		scopeRepo:     scopeRepo,
		invoiceRepo:   invoiceRepo,
		agreementRepo: agreementRepo,
	}
}

// StageStatus reports reachability of one pipeline stage
type StageStatus struct {
	Stage     enum.PipelineStage `json:"stage"`
	Reachable bool               `json:"reachable"`
}

// PipelineSnapshot is the per-lead stage reachability report
type PipelineSnapshot struct {
	LeadID uuid.UUID     `json:"lead_id"`
	Stages []StageStatus `json:"stages"`
}

// Snapshot computes stage reachability for a lead:
// pricing is always reachable; scope needs a plan; proforma needs a scope
// or a pre-existing (possibly draft) invoice; agreement needs a finalized
// invoice; payment and kickoff need a signed agreement.
func (s *PipelineService) Snapshot(ctx context.Context, leadID uuid.UUID) (*PipelineSnapshot, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	plans, err := s.planRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	hasPlan := len(plans) > 0
	hasScope := false
	for _, plan := range plans {
		scope, err := s.scopeRepo.GetByPlanID(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		if scope != nil {
			hasScope = true
			break
		}
	}

	invoices, err := s.invoiceRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	hasInvoice := len(invoices) > 0
	hasFinalInvoice := false
	for _, invoice := range invoices {
		if invoice.IsFinal {
			hasFinalInvoice = true
			break
		}
	}

	agreements, err := s.agreementRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	hasSignedAgreement := false
	for _, agreement := range agreements {
		if agreement.Status == enum.AgreementStatusSigned {
			hasSignedAgreement = true
			break
		}
	}

	reachable := map[enum.PipelineStage]bool{
		enum.PipelineStagePricing:   true,
		enum.PipelineStageScope:     hasPlan,
		enum.PipelineStageProforma:  hasScope || hasInvoice,
		enum.PipelineStageAgreement: hasFinalInvoice,
		enum.PipelineStagePayment:   hasSignedAgreement,
		enum.PipelineStageKickoff:   hasSignedAgreement,
	}

	stages := make([]StageStatus, 0, len(enum.Stages()))
	for _, stage := range enum.Stages() {
		stages = append(stages, StageStatus{Stage: stage, Reachable: reachable[stage]})
	}

	return &PipelineSnapshot{LeadID: leadID, Stages: stages}, nil
}

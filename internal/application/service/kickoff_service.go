package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
	"github.com/niteshkumar/dealdesk-api/pkg/utils"
)

// KickoffService is the handoff state machine between sales and delivery.
// Every terminal transition is a conditional write keyed on the expected
// status; a losing concurrent caller observes InvalidTransition rather than
// a silent no-op or a duplicate project.
type KickoffService struct {
	kickoffRepo    repository.KickoffRequestRepository
	projectRepo    repository.ProjectRepository
	agreementRepo  repository.AgreementRepository
	consultantRepo repository.ConsultantRepository
	leadRepo       repository.LeadRepository
	notifier       Notifier
}

// NewKickoffService creates a new kickoff service
func NewKickoffService(
	kickoffRepo repository.KickoffRequestRepository,
	projectRepo repository.ProjectRepository,
	agreementRepo repository.AgreementRepository,
	consultantRepo repository.ConsultantRepository,
	leadRepo repository.LeadRepository,
	notifier Notifier,
) *KickoffService {
	return &KickoffService{
		kickoffRepo:    kickoffRepo,
		projectRepo:    projectRepo,
		agreementRepo:  agreementRepo,
		consultantRepo: consultantRepo,
		leadRepo:       leadRepo,
		notifier:       notifier,
	}
}

// CreateKickoffInput represents the input for creating a kickoff request
type CreateKickoffInput struct {
	UserID            uuid.UUID
	AgreementID       uuid.UUID
	AssignedPMID      uuid.UUID
	ExpectedStartDate time.Time
	Notes             *string
}

// CreateKickoff creates a pending kickoff request for a signed agreement.
// At most one live (pending or returned) request may exist per agreement.
func (s *KickoffService) CreateKickoff(ctx context.Context, input *CreateKickoffInput) (*entity.KickoffRequest, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, input.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}
	if agreement.Status != enum.AgreementStatusSigned {
		return nil, apperror.ErrAgreementNotSigned
	}

	pm, err := s.consultantRepo.GetByID(ctx, input.AssignedPMID)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		return nil, apperror.NewNotFoundError("Assigned PM")
	}
	if !pm.EligiblePM() {
		return nil, apperror.NewBadRequestError("Assigned consultant is not an eligible project manager")
	}

	live, err := s.kickoffRepo.HasLiveRequest(ctx, input.AgreementID)
	if err != nil {
		return nil, err
	}
	if live {
		return nil, apperror.ErrConflictingLiveRequest
	}

	request := &entity.KickoffRequest{
		AgreementID:       input.AgreementID,
		Status:            enum.KickoffStatusPending,
		AssignedPMID:      input.AssignedPMID,
		ExpectedStartDate: input.ExpectedStartDate,
		Notes:             input.Notes,
		CreatedBy:         input.UserID,
	}

	if err := s.kickoffRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	go s.notifyAssigned(pm, agreement.LeadID, input.ExpectedStartDate)

	return request, nil
}

// GetKickoff retrieves a kickoff request by ID
func (s *KickoffService) GetKickoff(ctx context.Context, id uuid.UUID) (*entity.KickoffRequest, error) {
	request, err := s.kickoffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Kickoff request")
	}
	return request, nil
}

// ListByAgreement lists all kickoff requests for an agreement
func (s *KickoffService) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.KickoffRequest, error) {
	return s.kickoffRepo.ListByAgreement(ctx, agreementID)
}

// ListConsultants lists the employee directory used for PM assignment
func (s *KickoffService) ListConsultants(ctx context.Context) ([]entity.Consultant, error) {
	return s.consultantRepo.List(ctx)
}

// GetProject retrieves a project by ID
func (s *KickoffService) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	return project, nil
}

// ListProjectsByLead lists the projects created from a lead's accepted kickoffs
func (s *KickoffService) ListProjectsByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Project, error) {
	return s.projectRepo.ListByLead(ctx, leadID)
}

// Accept accepts a pending request and materializes its project in the same
// transaction. There is no externally observable accepted-without-converted
// state, and exactly one project ever exists per request.
func (s *KickoffService) Accept(ctx context.Context, requestID, actorID uuid.UUID) (*entity.KickoffRequest, error) {
	request, err := s.kickoffRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Kickoff request")
	}
	if request.Status != enum.KickoffStatusPending {
		return nil, apperror.ErrInvalidTransition
	}

	agreement, err := s.agreementRepo.GetByID(ctx, request.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}

	lead, err := s.leadRepo.GetByID(ctx, agreement.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	nextNum, err := s.projectRepo.GetNextReferenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	project := &entity.Project{
		Reference:        utils.GenerateReference("PRJ", nextNum),
		Name:             fmt.Sprintf("%s Engagement", lead.Name),
		KickoffRequestID: request.ID,
		AgreementID:      request.AgreementID,
		LeadID:           agreement.LeadID,
		PMID:             request.AssignedPMID,
		StartDate:        request.ExpectedStartDate,
	}

	won, err := s.kickoffRepo.Convert(ctx, requestID, project)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.ErrInvalidTransition
	}

	go s.notifyConverted(request.AssignedPMID, project.Reference)

	return s.kickoffRepo.GetByID(ctx, requestID)
}

// Reject rejects a pending request. Terminal, no side effects beyond the flip.
func (s *KickoffService) Reject(ctx context.Context, requestID, actorID uuid.UUID) (*entity.KickoffRequest, error) {
	request, err := s.kickoffRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Kickoff request")
	}

	won, err := s.kickoffRepo.UpdateStatusIf(ctx, requestID, enum.KickoffStatusPending, enum.KickoffStatusRejected, nil)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.ErrInvalidTransition
	}

	return s.kickoffRepo.GetByID(ctx, requestID)
}

// ReturnKickoffInput represents the input for returning a request for revision
type ReturnKickoffInput struct {
	RequestID uuid.UUID
	ActorID   uuid.UUID
	Reason    string
	Notes     *string
}

// Return bounces a pending request back to sales for revision.
// Return/resubmit cycles are unbounded.
func (s *KickoffService) Return(ctx context.Context, input *ReturnKickoffInput) (*entity.KickoffRequest, error) {
	if input.Reason == "" {
		return nil, apperror.NewBadRequestError("Return reason is required")
	}

	request, err := s.kickoffRepo.GetByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Kickoff request")
	}

	now := time.Now()
	won, err := s.kickoffRepo.UpdateStatusIf(ctx, input.RequestID, enum.KickoffStatusPending, enum.KickoffStatusReturned, map[string]interface{}{
		"return_reason": input.Reason,
		"return_notes":  input.Notes,
		"returned_by":   input.ActorID,
		"returned_at":   now,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.ErrInvalidTransition
	}

	return s.kickoffRepo.GetByID(ctx, input.RequestID)
}

// Resubmit moves a returned request back to pending, clearing the return
// fields. The same request id is reused, preserving audit history and the
// one-live-request invariant.
func (s *KickoffService) Resubmit(ctx context.Context, requestID, actorID uuid.UUID) (*entity.KickoffRequest, error) {
	request, err := s.kickoffRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Kickoff request")
	}

	won, err := s.kickoffRepo.UpdateStatusIf(ctx, requestID, enum.KickoffStatusReturned, enum.KickoffStatusPending, map[string]interface{}{
		"return_reason": nil,
		"return_notes":  nil,
		"returned_by":   nil,
		"returned_at":   nil,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.ErrInvalidTransition
	}

	return s.kickoffRepo.GetByID(ctx, requestID)
}

// UpdateExpectedDate changes the expected start date of a pending request
func (s *KickoffService) UpdateExpectedDate(ctx context.Context, requestID uuid.UUID, newDate time.Time) (*entity.KickoffRequest, error) {
	request, err := s.kickoffRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Kickoff request")
	}

	won, err := s.kickoffRepo.UpdateStatusIf(ctx, requestID, enum.KickoffStatusPending, enum.KickoffStatusPending, map[string]interface{}{
		"expected_start_date": newDate,
	})
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.ErrInvalidTransition
	}

	return s.kickoffRepo.GetByID(ctx, requestID)
}

func (s *KickoffService) notifyAssigned(pm *entity.Consultant, leadID uuid.UUID, expectedStart time.Time) {
	lead, err := s.leadRepo.GetByID(context.Background(), leadID)
	if err != nil || lead == nil {
		log.Printf("Warning: could not load lead for kickoff notification: %v", err)
		return
	}
	if err := s.notifier.SendKickoffAssignedEmail(pm.Email, pm.Name, lead.Name, expectedStart); err != nil {
		log.Printf("Warning: failed to notify assigned PM: %v", err)
	}
}

func (s *KickoffService) notifyConverted(pmID uuid.UUID, projectRef string) {
	pm, err := s.consultantRepo.GetByID(context.Background(), pmID)
	if err != nil || pm == nil {
		log.Printf("Warning: could not load PM for project notification: %v", err)
		return
	}
	if err := s.notifier.SendProjectCreatedEmail(pm.Email, pm.Name, projectRef); err != nil {
		log.Printf("Warning: failed to send project created email: %v", err)
	}
}

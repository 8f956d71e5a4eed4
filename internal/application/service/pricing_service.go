package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
	"github.com/niteshkumar/dealdesk-api/pkg/pricing"
)

// PricingService handles pricing plan operations and owns the derivation of
// committed meetings and plan totals.
type PricingService struct {
	planRepo  repository.PricingPlanRepository
	leadRepo  repository.LeadRepository
	scopeRepo repository.ScopeOfWorkRepository
}

// NewPricingService creates a new pricing service
func NewPricingService(
	planRepo repository.PricingPlanRepository,
	leadRepo repository.LeadRepository,
	scopeRepo repository.ScopeOfWorkRepository,
) *PricingService {
	return &PricingService{
		planRepo:  planRepo,
		leadRepo:  leadRepo,
		scopeRepo: scopeRepo,
	}
}

// TeamRowInput represents one team deployment line in the input
type TeamRowInput struct {
	RoleName       string
	MeetingType    string
	Frequency      string
	Mode           string
	RatePerMeeting float64
	Count          int
}

// CreatePlanInput represents the input for creating a pricing plan
type CreatePlanInput struct {
	UserID             uuid.UUID
	LeadID             uuid.UUID
	DurationMonths     int
	DiscountPercentage float64
	Rows               []TeamRowInput
}

// PlanWithTotals pairs a pricing plan with its computed price breakdown.
// Totals are recomputed on read from the rows, never stored on the plan.
type PlanWithTotals struct {
	Plan   *entity.PricingPlan `json:"plan"`
	Totals pricing.Totals      `json:"totals"`
}

// CreatePlan creates a pricing plan, deriving committed meetings per row
func (s *PricingService) CreatePlan(ctx context.Context, input *CreatePlanInput) (*PlanWithTotals, error) {
	if input.DurationMonths < 1 || input.DurationMonths > 60 {
		return nil, apperror.NewBadRequestError("Duration must be between 1 and 60 months")
	}
	if input.DiscountPercentage < 0 || input.DiscountPercentage > 100 {
		return nil, apperror.NewBadRequestError("Discount percentage must be between 0 and 100")
	}
	if len(input.Rows) == 0 {
		return nil, apperror.NewBadRequestError("At least one team row is required")
	}

	lead, err := s.leadRepo.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	rows := make([]entity.TeamRow, 0, len(input.Rows))
	for _, row := range input.Rows {
		if row.Count < 1 {
			return nil, apperror.NewBadRequestError("Row count must be at least 1")
		}
		if row.RatePerMeeting < 0 {
			return nil, apperror.NewBadRequestError("Rate per meeting cannot be negative")
		}

		committed, err := pricing.CommittedMeetings(row.Frequency, input.DurationMonths)
		if err != nil {
			return nil, err
		}

		rows = append(rows, entity.TeamRow{
			RoleName:          row.RoleName,
			MeetingType:       row.MeetingType,
			Frequency:         row.Frequency,
			Mode:              row.Mode,
			RatePerMeeting:    row.RatePerMeeting,
			Count:             row.Count,
			CommittedMeetings: committed,
		})
	}

	plan := &entity.PricingPlan{
		LeadID:             input.LeadID,
		DurationMonths:     input.DurationMonths,
		DiscountPercentage: input.DiscountPercentage,
		CreatedBy:          input.UserID,
		Rows:               rows,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	return &PlanWithTotals{Plan: plan, Totals: s.totals(plan)}, nil
}

// GetPlan retrieves a pricing plan with recomputed totals
func (s *PricingService) GetPlan(ctx context.Context, id uuid.UUID) (*PlanWithTotals, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Pricing plan")
	}
	return &PlanWithTotals{Plan: plan, Totals: s.totals(plan)}, nil
}

// ListPlans lists pricing plans for a lead
func (s *PricingService) ListPlans(ctx context.Context, leadID uuid.UUID) ([]PlanWithTotals, error) {
	plans, err := s.planRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	result := make([]PlanWithTotals, 0, len(plans))
	for i := range plans {
		result = append(result, PlanWithTotals{Plan: &plans[i], Totals: s.totals(&plans[i])})
	}
	return result, nil
}

// UpdateDuration changes the plan duration and re-derives committed meetings
// across every row. Rejected once a scope of work references the plan.
func (s *PricingService) UpdateDuration(ctx context.Context, id uuid.UUID, durationMonths int) (*PlanWithTotals, error) {
	if durationMonths < 1 || durationMonths > 60 {
		return nil, apperror.NewBadRequestError("Duration must be between 1 and 60 months")
	}

	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Pricing plan")
	}

	scope, err := s.scopeRepo.GetByPlanID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope != nil {
		return nil, apperror.ErrPlanLocked
	}

	plan.DurationMonths = durationMonths
	for i := range plan.Rows {
		committed, err := pricing.CommittedMeetings(plan.Rows[i].Frequency, durationMonths)
		if err != nil {
			return nil, err
		}
		plan.Rows[i].CommittedMeetings = committed
	}

	if err := s.planRepo.UpdateDuration(ctx, plan); err != nil {
		return nil, err
	}

	return &PlanWithTotals{Plan: plan, Totals: s.totals(plan)}, nil
}

func (s *PricingService) totals(plan *entity.PricingPlan) pricing.Totals {
	rows := make([]pricing.Row, 0, len(plan.Rows))
	for _, row := range plan.Rows {
		rows = append(rows, pricing.Row{
			CommittedMeetings: row.CommittedMeetings,
			Count:             row.Count,
			RatePerMeeting:    row.RatePerMeeting,
		})
	}
	return pricing.Aggregate(rows, plan.DiscountPercentage)
}

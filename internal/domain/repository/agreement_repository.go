package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
)

// AgreementRepository defines the interface for agreement data operations
type AgreementRepository interface {
	Create(ctx context.Context, agreement *entity.Agreement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Agreement, error)
	GetWithMilestones(ctx context.Context, id uuid.UUID) (*entity.Agreement, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Agreement, error)
	// UpdateStatusIf advances status from expected to target together with the
	// given column updates, conditioned on the current status still being
	// expected. Returns whether the write won; a false result on an existing
	// agreement means a concurrent caller got there first.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, target enum.AgreementStatus, updates map[string]interface{}) (bool, error)
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

// MilestoneRepository defines the interface for milestone data operations
type MilestoneRepository interface {
	Create(ctx context.Context, milestone *entity.Milestone) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error)
	ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.Milestone, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

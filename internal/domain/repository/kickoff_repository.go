package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
)

// KickoffRequestRepository defines the interface for kickoff request data operations
type KickoffRequestRepository interface {
	Create(ctx context.Context, request *entity.KickoffRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.KickoffRequest, error)
	ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.KickoffRequest, error)
	// HasLiveRequest reports whether a pending or returned request exists for
	// the agreement.
	HasLiveRequest(ctx context.Context, agreementID uuid.UUID) (bool, error)
	// UpdateStatusIf moves status from expected to target together with the
	// given column updates, conditioned on the current status still being
	// expected. Returns whether the write won; a losing concurrent caller
	// must be reported as an invalid transition, never a silent no-op.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, target enum.KickoffStatus, updates map[string]interface{}) (bool, error)
	// Convert inserts the project and flips the request from pending to
	// converted in a single transaction, so acceptance and conversion are
	// never observable apart and a double-accept can never create two
	// projects. Returns whether the transition won.
	Convert(ctx context.Context, requestID uuid.UUID, project *entity.Project) (bool, error)
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Project, error)
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

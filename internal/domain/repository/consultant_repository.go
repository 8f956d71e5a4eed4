package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
)

// ConsultantRepository provides read-only access to the employee directory
type ConsultantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Consultant, error)
	List(ctx context.Context) ([]entity.Consultant, error)
}

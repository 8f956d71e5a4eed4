package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
)

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only: no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.Payment, error)
	SumByAgreement(ctx context.Context, agreementID uuid.UUID) (float64, error)
}

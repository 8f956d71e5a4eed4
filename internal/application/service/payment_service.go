package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	"github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
)

// PaymentService is the append-only ledger of payments against signed
// agreements. Paid and remaining totals are derived by summation on read,
// never stored, so they cannot drift.
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	agreementRepo repository.AgreementRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	agreementRepo repository.AgreementRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		agreementRepo: agreementRepo,
	}
}

// RecordPaymentInput represents the input for recording a payment
type RecordPaymentInput struct {
	UserID       uuid.UUID
	AgreementID  uuid.UUID
	Amount       float64
	PaymentDate  time.Time
	Mode         enum.PaymentMode
	ChequeNumber *string
	UTRNumber    *string
	Notes        *string
}

// RecordPayment appends a payment row. The agreement must be signed and the
// mode-conditional reference must be present.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}
	if !input.Mode.IsValid() {
		return nil, apperror.NewBadRequestError("Unsupported payment mode")
	}
	if input.Mode.RequiresChequeNumber() && (input.ChequeNumber == nil || *input.ChequeNumber == "") {
		return nil, apperror.ErrMissingReference
	}
	if input.Mode.RequiresUTRNumber() && (input.UTRNumber == nil || *input.UTRNumber == "") {
		return nil, apperror.ErrMissingReference
	}

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

	payment := &entity.Payment{
		AgreementID: input.AgreementID,
		Amount:      input.Amount,
		PaymentDate: input.PaymentDate,
		Mode:        input.Mode,
		RecordedBy:  input.UserID,
		Notes:       input.Notes,
	}
	if input.Mode.RequiresChequeNumber() {
		payment.ChequeNumber = input.ChequeNumber
	}
	if input.Mode.RequiresUTRNumber() {
		payment.UTRNumber = input.UTRNumber
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// ListPayments lists the payments recorded against an agreement
func (s *PaymentService) ListPayments(ctx context.Context, agreementID uuid.UUID) ([]entity.Payment, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}
	return s.paymentRepo.ListByAgreement(ctx, agreementID)
}

// PaymentTotals is the derived paid/remaining breakdown for an agreement
type PaymentTotals struct {
	AgreementValue float64 `json:"agreement_value"`
	Paid           float64 `json:"paid"`
	Remaining      float64 `json:"remaining"`
}

// Totals computes paid and remaining by summation over the ledger
func (s *PaymentService) Totals(ctx context.Context, agreementID uuid.UUID) (*PaymentTotals, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NewNotFoundError("Agreement")
	}

	paid, err := s.paymentRepo.SumByAgreement(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	return &PaymentTotals{
		AgreementValue: agreement.Value,
		Paid:           paid,
		Remaining:      agreement.Value - paid,
	}, nil
}

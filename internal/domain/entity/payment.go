package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
)

// Payment is one append-only payment row against a signed agreement.
// Payments are never mutated or deleted; paid and remaining totals are
// always derived by summation.
type Payment struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	AgreementID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"agreement_id"`
	Amount       float64          `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate  time.Time        `gorm:"type:date;not null" json:"payment_date"`
	Mode         enum.PaymentMode `gorm:"not null" json:"mode"`
	ChequeNumber *string          `gorm:"size:100" json:"cheque_number,omitempty"`
	UTRNumber    *string          `gorm:"size:100" json:"utr_number,omitempty"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	RecordedBy   uuid.UUID        `gorm:"type:uuid;not null" json:"recorded_by"`
	CreatedAt    time.Time        `json:"created_at"`

	// Relationships
	Agreement Agreement `gorm:"foreignKey:AgreementID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

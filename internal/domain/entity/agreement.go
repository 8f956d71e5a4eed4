package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
)

// Agreement is the contractual document built from a finalized proforma
// invoice. Status advances draft -> sent -> signed and never regresses.
// Milestones are editable only while the agreement is unsigned.
type Agreement struct {
	ID                uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Reference         string               `gorm:"size:100;unique;not null" json:"reference"`
	ProformaInvoiceID uuid.UUID            `gorm:"type:uuid;not null;index" json:"proforma_invoice_id"`
	LeadID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"lead_id"`
	Status            enum.AgreementStatus `gorm:"default:0" json:"status"`
	Value             float64              `gorm:"type:decimal(15,2);not null" json:"value"`
	ClientEmail       string               `gorm:"size:255" json:"client_email"`
	SentAt            *time.Time           `json:"sent_at,omitempty"`
	SignerName        *string              `gorm:"size:255" json:"signer_name,omitempty"`
	SignerEmail       *string              `gorm:"size:255" json:"signer_email,omitempty"`
	SignatureImage    *string              `gorm:"type:text" json:"signature_image,omitempty"`
	SignedAt          *time.Time           `json:"signed_at,omitempty"`
	CreatedBy         uuid.UUID            `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	DeletedAt         gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	ProformaInvoice ProformaInvoice `gorm:"foreignKey:ProformaInvoiceID" json:"-"`
	Lead            Lead            `gorm:"foreignKey:LeadID" json:"-"`
	Milestones      []Milestone     `gorm:"foreignKey:AgreementID" json:"milestones,omitempty"`
}

// BeforeCreate generates a UUID before creating a new agreement
func (a *Agreement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Agreement model
func (Agreement) TableName() string {
	return "agreements"
}

// MilestoneTotal sums the milestone amounts. Expected to reconcile with
// Value, but a mismatch is a warning, not a block: milestones may
// legitimately restructure payment timing.
func (a *Agreement) MilestoneTotal() float64 {
	var total float64
	for _, m := range a.Milestones {
		total += m.Amount
	}
	return total
}

// Milestone is a named payment tranche attached to an agreement
type Milestone struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AgreementID uuid.UUID      `gorm:"type:uuid;not null;index" json:"agreement_id"`
	Description string         `gorm:"size:255;not null" json:"description"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate     time.Time      `gorm:"type:date;not null" json:"due_date"`
	Position    int            `gorm:"not null" json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Agreement Agreement `gorm:"foreignKey:AgreementID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new milestone
func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Milestone model
func (Milestone) TableName() string {
	return "milestones"
}

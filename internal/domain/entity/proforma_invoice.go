package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProformaInvoice is a pre-contractual invoice with computed totals.
// Created as a draft; once IsFinal flips to true all monetary fields are
// frozen and the flag never flips back. A superseding invoice is a new draft.
type ProformaInvoice struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Reference      string         `gorm:"size:100;unique;not null" json:"reference"`
	PricingPlanID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"pricing_plan_id"`
	LeadID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"lead_id"`
	Subtotal       float64        `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	DiscountAmount float64        `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	GSTAmount      float64        `gorm:"type:decimal(15,2);not null" json:"gst_amount"`
	GrandTotal     float64        `gorm:"type:decimal(15,2);not null" json:"grand_total"`
	IsFinal        bool           `gorm:"not null;default:false" json:"is_final"`
	FinalizedAt    *time.Time     `json:"finalized_at,omitempty"`
	CreatedBy      uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PricingPlan PricingPlan `gorm:"foreignKey:PricingPlanID" json:"-"`
	Lead        Lead        `gorm:"foreignKey:LeadID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new proforma invoice
func (p *ProformaInvoice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProformaInvoice model
func (ProformaInvoice) TableName() string {
	return "proforma_invoices"
}
